package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
	"github.com/google/uuid"
)

// Los importadores CSV trabajan en lotes: cada lote va en su propia
// transacción, así un lote fallido no revierte los ya confirmados
const importBatchSize = 50

// ImportResult resume una importación: filas confirmadas y errores por fila
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

type ImportRepository struct {
	db         *sql.DB
	crypto     *CryptoRepository
	partitaIVA *PartitaIVARepository
	snapshots  *SnapshotRepository
}

func NewImportRepository() *ImportRepository {
	return &ImportRepository{
		db:         database.DB,
		crypto:     NewCryptoRepository(),
		partitaIVA: NewPartitaIVARepository(),
		snapshots:  NewSnapshotRepository(),
	}
}

func rowError(result *ImportResult, row int, format string, args ...interface{}) {
	result.Errors = append(result.Errors, fmt.Sprintf("Riga %d: %s", row, fmt.Sprintf(format, args...)))
}

// heldQuantityTx suma la cantidad en cartera de un activo dentro de la
// transacción en curso, incluyendo las filas ya insertadas en este lote
func heldQuantityTx(tx *sql.Tx, portfolioID, assetID string) (float64, error) {
	var held float64
	err := tx.QueryRow(`
		SELECT COALESCE(SUM(CASE
			WHEN type IN ('buy', 'swap_in', 'stake_reward') THEN quantity
			WHEN type IN ('sell', 'swap_out') THEN -quantity
		END), 0)
		FROM crypto_transactions
		WHERE portfolio_id = ? AND asset_id = ?`, portfolioID, assetID).Scan(&held)
	return held, err
}

// ImportCryptoTransactions importa movimientos crypto desde filas CSV con el
// esquema data,tipo,asset,asset_to?,quantita,quantita_to?,valore_eur?,
// prezzo_unitario?,broker,note. Las filas swap generan el par
// swap_out/swap_in enlazado por swap_pair_id. Una fila mala se salta y se
// reporta, nunca aborta el lote.
func (r *ImportRepository) ImportCryptoTransactions(userID, portfolioID string, rows []map[string]string) (*ImportResult, error) {
	portfolio, err := r.crypto.GetPortfolioById(portfolioID, userID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: []string{}}

	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		tx, err := r.db.Begin()
		if err != nil {
			return nil, err
		}

		batchImported := 0
		batchAssets := map[string]bool{}

		for i := start; i < end; i++ {
			rowNum := i + 1
			row := rows[i]

			date := services.ParseFlexibleDate(row["data"])
			if date == nil {
				rowError(result, rowNum, "data non valida: %q", row["data"])
				continue
			}

			tipo := strings.ToLower(strings.TrimSpace(row["tipo"]))
			quantity, ok := services.ParseFlexibleNumber(row["quantita"])
			if !ok || quantity <= 0 {
				rowError(result, rowNum, "quantita non valida: %q", row["quantita"])
				continue
			}

			asset, err := r.crypto.FindOrCreateAsset(row["asset"])
			if err != nil {
				rowError(result, rowNum, "asset non valido: %q", row["asset"])
				continue
			}

			eurValue, hasEur := services.ParseFlexibleNumber(row["valore_eur"])
			pricePerUnit, hasPrice := services.ParseFlexibleNumber(row["prezzo_unitario"])
			if !hasEur && hasPrice {
				eurValue = quantity * pricePerUnit
				hasEur = true
			}
			if !hasPrice && hasEur && quantity > 0 {
				pricePerUnit = eurValue / quantity
			}
			if !hasEur {
				rowError(result, rowNum, "manca valore_eur o prezzo_unitario")
				continue
			}

			switch tipo {
			case "swap":
				toAsset, err := r.crypto.FindOrCreateAsset(row["asset_to"])
				if err != nil {
					rowError(result, rowNum, "asset_to non valido: %q", row["asset_to"])
					continue
				}
				toQuantity, ok := services.ParseFlexibleNumber(row["quantita_to"])
				if !ok || toQuantity <= 0 {
					rowError(result, rowNum, "quantita_to non valida: %q", row["quantita_to"])
					continue
				}

				held, err := heldQuantityTx(tx, portfolioID, asset.ID)
				if err != nil {
					rowError(result, rowNum, "errore di lettura: %v", err)
					continue
				}
				if held < quantity {
					rowError(result, rowNum, "quantita insufficiente di %s: ha %f, serve %f",
						asset.Symbol, held, quantity)
					continue
				}

				swapPairID := uuid.New().String()
				now := time.Now()
				insertSQL := `
					INSERT INTO crypto_transactions (id, portfolio_id, asset_id, type, quantity, eur_value, price_per_unit, swap_pair_id, broker, notes, date, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

				_, err = tx.Exec(insertSQL, uuid.New().String(), portfolioID, asset.ID,
					models.TransactionTypeSwapOut, quantity, eurValue, eurValue/quantity,
					swapPairID, row["broker"], row["note"], *date, now)
				if err != nil {
					rowError(result, rowNum, "errore di scrittura: %v", err)
					continue
				}
				_, err = tx.Exec(insertSQL, uuid.New().String(), portfolioID, toAsset.ID,
					models.TransactionTypeSwapIn, toQuantity, eurValue, eurValue/toQuantity,
					swapPairID, row["broker"], row["note"], *date, now)
				if err != nil {
					rowError(result, rowNum, "errore di scrittura: %v", err)
					continue
				}

				batchAssets[asset.ID] = true
				batchAssets[toAsset.ID] = true
				batchImported++

			case models.TransactionTypeBuy, models.TransactionTypeSell, models.TransactionTypeStakeReward:
				if tipo == models.TransactionTypeBuy {
					var balance float64
					if err := tx.QueryRow(`SELECT balance FROM accounts WHERE id = ?`, portfolio.AccountID).Scan(&balance); err != nil {
						rowError(result, rowNum, "errore di lettura: %v", err)
						continue
					}
					if balance < eurValue {
						rowError(result, rowNum, "saldo insufficiente: ha %.2f, serve %.2f", balance, eurValue)
						continue
					}
				}

				_, err = tx.Exec(`
					INSERT INTO crypto_transactions (id, portfolio_id, asset_id, type, quantity, eur_value, price_per_unit, swap_pair_id, broker, notes, date, created_at)
					VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?, ?, ?)`,
					uuid.New().String(), portfolioID, asset.ID, tipo, quantity, eurValue,
					pricePerUnit, row["broker"], row["note"], *date, time.Now())
				if err != nil {
					rowError(result, rowNum, "errore di scrittura: %v", err)
					continue
				}

				switch tipo {
				case models.TransactionTypeBuy:
					_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
						eurValue, portfolio.AccountID)
				case models.TransactionTypeSell:
					_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
						eurValue, portfolio.AccountID)
				}
				if err != nil {
					rowError(result, rowNum, "errore di scrittura: %v", err)
					continue
				}

				batchAssets[asset.ID] = true
				batchImported++

			default:
				rowError(result, rowNum, "tipo non valido: %q", row["tipo"])
			}
		}

		for assetID := range batchAssets {
			if err := r.crypto.refoldHoldingTx(tx, portfolioID, assetID); err != nil {
				tx.Rollback()
				rowError(result, start+1, "lotto scartato: %v", err)
				batchImported = 0
				batchAssets = nil
				break
			}
		}
		if batchAssets == nil {
			continue
		}

		if err := tx.Commit(); err != nil {
			rowError(result, start+1, "lotto scartato: %v", err)
			continue
		}

		result.Imported += batchImported
	}

	return result, nil
}

// ImportPartitaIVAIncomes importa entradas P.IVA desde filas con el esquema
// dataIncasso,dataEmissione,riferimento,entrata,anno,conto?,descrizione?.
// Los importes fiscales se congelan con la config del año de cada fila.
func (r *ImportRepository) ImportPartitaIVAIncomes(userID string, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		tx, err := r.db.Begin()
		if err != nil {
			return nil, err
		}

		batchImported := 0

		for i := start; i < end; i++ {
			rowNum := i + 1
			row := rows[i]

			dataIncasso := services.ParseFlexibleDate(row["dataIncasso"])
			if dataIncasso == nil {
				rowError(result, rowNum, "dataIncasso non valida: %q", row["dataIncasso"])
				continue
			}
			dataEmissione := services.ParseFlexibleDate(row["dataEmissione"])
			if dataEmissione == nil {
				dataEmissione = dataIncasso
			}

			entrata, ok := services.ParseFlexibleNumber(row["entrata"])
			if !ok || entrata <= 0 {
				rowError(result, rowNum, "entrata non valida: %q", row["entrata"])
				continue
			}

			anno := dataIncasso.Year()
			if annoRaw, ok := services.ParseFlexibleNumber(row["anno"]); ok && annoRaw > 0 {
				anno = int(annoRaw)
			}

			// La config se auto-crea con los porcentajes por defecto
			config, err := r.partitaIVA.GetConfig(userID, anno)
			if err != nil {
				rowError(result, rowNum, "errore di configurazione: %v", err)
				continue
			}

			income := &models.PartitaIVAIncome{
				ID:            uuid.New().String(),
				UserID:        userID,
				ConfigID:      config.ID,
				DataIncasso:   *dataIncasso,
				DataEmissione: *dataEmissione,
				Riferimento:   strings.TrimSpace(row["riferimento"]),
				Entrata:       entrata,
				CreatedAt:     time.Now(),
			}
			deriveTaxes(income, config)

			accountID := strings.TrimSpace(row["conto"])
			if accountID != "" {
				var count int
				if err := tx.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id = ? AND user_id = ?`,
					accountID, userID).Scan(&count); err != nil {
					rowError(result, rowNum, "errore di lettura: %v", err)
					continue
				}
				if count == 0 {
					rowError(result, rowNum, "conto non trovato: %q", accountID)
					continue
				}
				income.AccountID = accountID
			}

			_, err = tx.Exec(`
				INSERT INTO partita_iva_incomes (id, user_id, config_id, account_id, data_incasso, data_emissione, riferimento, entrata, imponibile, imposta, contributi, totale_tasse, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				income.ID, income.UserID, income.ConfigID, income.AccountID,
				income.DataIncasso, income.DataEmissione, income.Riferimento,
				income.Entrata, income.Imponibile, income.Imposta, income.Contributi,
				income.TotaleTasse, income.CreatedAt)
			if err != nil {
				rowError(result, rowNum, "errore di scrittura: %v", err)
				continue
			}

			if income.AccountID != "" {
				_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
					income.Entrata, income.AccountID)
				if err != nil {
					rowError(result, rowNum, "errore di scrittura: %v", err)
					continue
				}
			}

			batchImported++
		}

		if err := tx.Commit(); err != nil {
			rowError(result, start+1, "lotto scartato: %v", err)
			continue
		}

		result.Imported += batchImported
	}

	if result.Imported > 0 {
		if err := r.partitaIVA.syncRiservaTasse(userID); err != nil {
			return result, err
		}
	}

	return result, nil
}

// ImportSnapshots importa snapshots históricos desde el mismo esquema que
// produce la exportación: Date,Time,BTCUSD,Dirty Dollars,Dirty Euro,BTC
func (r *ImportRepository) ImportSnapshots(userID string, rows []map[string]string) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		tx, err := r.db.Begin()
		if err != nil {
			return nil, err
		}

		batchImported := 0

		for i := start; i < end; i++ {
			rowNum := i + 1
			row := rows[i]

			date := services.ParseFlexibleDate(row["Date"])
			if date == nil {
				rowError(result, rowNum, "Date non valida: %q", row["Date"])
				continue
			}
			at := *date
			if hhmm := strings.TrimSpace(row["Time"]); hhmm != "" {
				if parsed, err := time.Parse("15:04", hhmm); err == nil {
					at = time.Date(at.Year(), at.Month(), at.Day(),
						parsed.Hour(), parsed.Minute(), 0, 0, at.Location())
				}
			}

			btcUsd, okBTCUSD := services.ParseFlexibleNumber(row["BTCUSD"])
			dollars, okDollars := services.ParseFlexibleNumber(row["Dirty Dollars"])
			euros, okEuros := services.ParseFlexibleNumber(row["Dirty Euro"])
			btc, okBTC := services.ParseFlexibleNumber(row["BTC"])
			if !okBTCUSD || !okDollars || !okEuros || !okBTC {
				rowError(result, rowNum, "valori numerici non validi")
				continue
			}

			_, err = tx.Exec(`
				INSERT INTO holdings_snapshots (id, user_id, date, btc_usd, dirty_dollars, dirty_euro, btc, is_automatic, note, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, 0, '', ?)`,
				uuid.New().String(), userID, at,
				utils.RoundBitcoinPrice(btcUsd),
				utils.RoundCurrency(dollars),
				utils.RoundCurrency(euros),
				utils.RoundBitcoin(btc),
				time.Now())
			if err != nil {
				rowError(result, rowNum, "errore di scrittura: %v", err)
				continue
			}

			batchImported++
		}

		if err := tx.Commit(); err != nil {
			rowError(result, start+1, "lotto scartato: %v", err)
			continue
		}

		result.Imported += batchImported
	}

	return result, nil
}
