package database

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

func InitDB() error {
	// Crear el directorio database si no existe
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		if err := os.MkdirAll("database", 0755); err != nil {
			return err
		}
		dbPath = filepath.Join("database", "finance.db")
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return err
	}

	// Crear tabla de usuarios si no existe
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		name TEXT NOT NULL,
		currency TEXT DEFAULT 'EUR',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err = DB.Exec(createTableSQL); err != nil {
		return err
	}

	// Crear tabla de cuentas
	createAccountsTableSQL := `
	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'bank',
		balance REAL NOT NULL DEFAULT 0,
		is_default INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createAccountsTableSQL); err != nil {
		return err
	}

	// Crear tabla de transferencias entre cuentas
	createTransfersTableSQL := `
	CREATE TABLE IF NOT EXISTS transfers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount REAL NOT NULL,
		description TEXT,
		date DATETIME NOT NULL,
		from_account_id TEXT NOT NULL,
		to_account_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(from_account_id) REFERENCES accounts(id),
		FOREIGN KEY(to_account_id) REFERENCES accounts(id)
	);`

	if _, err = DB.Exec(createTransfersTableSQL); err != nil {
		return err
	}

	// Crear tablas de portafolios DCA
	createDCAPortfoliosTableSQL := `
	CREATE TABLE IF NOT EXISTS dca_portfolios (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT DEFAULT 'dca_bitcoin',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(account_id) REFERENCES accounts(id)
	);`

	if _, err = DB.Exec(createDCAPortfoliosTableSQL); err != nil {
		return err
	}

	createDCATransactionsTableSQL := `
	CREATE TABLE IF NOT EXISTS dca_transactions (
		id TEXT PRIMARY KEY,
		portfolio_id TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'buy',
		btc_quantity REAL NOT NULL,
		eur_paid REAL NOT NULL,
		date DATETIME NOT NULL,
		broker TEXT,
		notes TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(portfolio_id) REFERENCES dca_portfolios(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createDCATransactionsTableSQL); err != nil {
		return err
	}

	createNetworkFeesTableSQL := `
	CREATE TABLE IF NOT EXISTS network_fees (
		id TEXT PRIMARY KEY,
		portfolio_id TEXT NOT NULL,
		sats INTEGER NOT NULL,
		date DATETIME NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(portfolio_id) REFERENCES dca_portfolios(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createNetworkFeesTableSQL); err != nil {
		return err
	}

	// Crear tablas de portafolios crypto multi-activo
	createCryptoPortfoliosTableSQL := `
	CREATE TABLE IF NOT EXISTS crypto_portfolios (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(account_id) REFERENCES accounts(id)
	);`

	if _, err = DB.Exec(createCryptoPortfoliosTableSQL); err != nil {
		return err
	}

	createCryptoAssetsTableSQL := `
	CREATE TABLE IF NOT EXISTS crypto_assets (
		id TEXT PRIMARY KEY,
		symbol TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		decimals INTEGER DEFAULT 6,
		is_active INTEGER DEFAULT 1
	);`

	if _, err = DB.Exec(createCryptoAssetsTableSQL); err != nil {
		return err
	}

	createCryptoTransactionsTableSQL := `
	CREATE TABLE IF NOT EXISTS crypto_transactions (
		id TEXT PRIMARY KEY,
		portfolio_id TEXT NOT NULL,
		asset_id TEXT NOT NULL,
		type TEXT NOT NULL,
		quantity REAL NOT NULL,
		eur_value REAL NOT NULL,
		price_per_unit REAL NOT NULL,
		swap_pair_id TEXT,
		broker TEXT,
		notes TEXT,
		date DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(portfolio_id) REFERENCES crypto_portfolios(id) ON DELETE CASCADE,
		FOREIGN KEY(asset_id) REFERENCES crypto_assets(id)
	);`

	if _, err = DB.Exec(createCryptoTransactionsTableSQL); err != nil {
		return err
	}

	createCryptoHoldingsTableSQL := `
	CREATE TABLE IF NOT EXISTS crypto_holdings (
		id TEXT PRIMARY KEY,
		portfolio_id TEXT NOT NULL,
		asset_id TEXT NOT NULL,
		quantity REAL NOT NULL,
		avg_price REAL NOT NULL,
		total_invested REAL NOT NULL,
		realized_gains REAL NOT NULL DEFAULT 0,
		last_updated DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(portfolio_id, asset_id),
		FOREIGN KEY(portfolio_id) REFERENCES crypto_portfolios(id) ON DELETE CASCADE,
		FOREIGN KEY(asset_id) REFERENCES crypto_assets(id)
	);`

	if _, err = DB.Exec(createCryptoHoldingsTableSQL); err != nil {
		return err
	}

	// Crear tabla para el historial de snapshots de tenencias
	createSnapshotsTableSQL := `
	CREATE TABLE IF NOT EXISTS holdings_snapshots (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATETIME NOT NULL,
		btc_usd REAL NOT NULL,
		dirty_dollars REAL NOT NULL,
		dirty_euro REAL NOT NULL,
		btc REAL NOT NULL,
		is_automatic INTEGER DEFAULT 0,
		note TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createSnapshotsTableSQL); err != nil {
		return err
	}

	// Crear índice para búsqueda rápida por usuario y fecha
	createSnapshotsIndexSQL := `
	CREATE INDEX IF NOT EXISTS idx_holdings_snapshots_user_date
	ON holdings_snapshots(user_id, date);`

	if _, err = DB.Exec(createSnapshotsIndexSQL); err != nil {
		return err
	}

	createSnapshotSettingsTableSQL := `
	CREATE TABLE IF NOT EXISTS snapshot_settings (
		user_id TEXT PRIMARY KEY,
		auto_snapshot_enabled INTEGER DEFAULT 0,
		frequency TEXT DEFAULT 'daily',
		preferred_hour INTEGER DEFAULT 12,
		last_snapshot DATETIME,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createSnapshotSettingsTableSQL); err != nil {
		return err
	}

	// Crear tabla de budgets
	createBudgetsTableSQL := `
	CREATE TABLE IF NOT EXISTS budgets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount REAL NOT NULL DEFAULT 0,
		type TEXT NOT NULL DEFAULT 'fixed',
		priority INTEGER NOT NULL,
		color TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createBudgetsTableSQL); err != nil {
		return err
	}

	// Crear tablas de Partita IVA
	createPIVAConfigTableSQL := `
	CREATE TABLE IF NOT EXISTS partita_iva_configs (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		anno INTEGER NOT NULL,
		percentuale_imponibile REAL NOT NULL DEFAULT 78,
		percentuale_imposta REAL NOT NULL DEFAULT 5,
		percentuale_contributi REAL NOT NULL DEFAULT 26.23,
		UNIQUE(anno, user_id),
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createPIVAConfigTableSQL); err != nil {
		return err
	}

	createPIVAIncomesTableSQL := `
	CREATE TABLE IF NOT EXISTS partita_iva_incomes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		config_id TEXT NOT NULL,
		account_id TEXT,
		data_incasso DATETIME NOT NULL,
		data_emissione DATETIME NOT NULL,
		riferimento TEXT NOT NULL,
		entrata REAL NOT NULL,
		imponibile REAL NOT NULL,
		imposta REAL NOT NULL,
		contributi REAL NOT NULL,
		totale_tasse REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(config_id) REFERENCES partita_iva_configs(id)
	);`

	if _, err = DB.Exec(createPIVAIncomesTableSQL); err != nil {
		return err
	}

	createPIVAPaymentsTableSQL := `
	CREATE TABLE IF NOT EXISTS partita_iva_tax_payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		data DATETIME NOT NULL,
		descrizione TEXT,
		importo REAL NOT NULL,
		tipo TEXT,
		anno_riferimento INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	if _, err = DB.Exec(createPIVAPaymentsTableSQL); err != nil {
		return err
	}

	// Ejecutar migraciones para actualizar el esquema
	err = RunMigrations()
	return err
}
