package database

import (
	"log"
)

// RunMigrations ejecuta las migraciones necesarias para actualizar el esquema de la base de datos
func RunMigrations() error {
	log.Println("Ejecutando migraciones de la base de datos...")

	// Migración para añadir broker y swap_pair_id a crypto_transactions
	addCryptoColumnsSQL := `
	ALTER TABLE crypto_transactions ADD COLUMN broker TEXT;
	ALTER TABLE crypto_transactions ADD COLUMN swap_pair_id TEXT;
	`

	if _, err := DB.Exec(addCryptoColumnsSQL); err != nil {
		// No retornamos error porque SQLite puede dar error si la columna ya existe
		// y queremos que la migración continúe
		log.Printf("Migración broker/swap_pair_id omitida: %v", err)
	}

	// Migración para añadir tipo a dca_transactions (antes solo había compras)
	addDCATypeColumnSQL := `
	ALTER TABLE dca_transactions ADD COLUMN type TEXT DEFAULT 'buy';
	`

	if _, err := DB.Exec(addDCATypeColumnSQL); err != nil {
		log.Printf("Migración dca_transactions.type omitida: %v", err)
	}

	// Migración para añadir is_automatic a holdings_snapshots
	addSnapshotColumnSQL := `
	ALTER TABLE holdings_snapshots ADD COLUMN is_automatic INTEGER DEFAULT 0;
	`

	if _, err := DB.Exec(addSnapshotColumnSQL); err != nil {
		log.Printf("Migración holdings_snapshots.is_automatic omitida: %v", err)
	}

	return nil
}
