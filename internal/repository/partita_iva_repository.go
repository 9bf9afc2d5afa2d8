package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
	"github.com/google/uuid"
)

// Porcentajes por defecto del régimen forfettario
const (
	DefaultPercentualeImponibile = 78.0
	DefaultPercentualeImposta    = 5.0
	DefaultPercentualeContributi = 26.23
)

type PartitaIVARepository struct {
	db      *sql.DB
	budgets *BudgetRepository
}

func NewPartitaIVARepository() *PartitaIVARepository {
	return &PartitaIVARepository{
		db:      database.DB,
		budgets: NewBudgetRepository(),
	}
}

// GetConfig lee la configuración fiscal del año; si no existe la crea con los
// porcentajes por defecto
func (r *PartitaIVARepository) GetConfig(userID string, anno int) (*models.PartitaIVAConfig, error) {
	config := &models.PartitaIVAConfig{}
	query := `
		SELECT id, user_id, anno, percentuale_imponibile, percentuale_imposta, percentuale_contributi
		FROM partita_iva_configs
		WHERE user_id = ? AND anno = ?`

	err := r.db.QueryRow(query, userID, anno).Scan(
		&config.ID,
		&config.UserID,
		&config.Anno,
		&config.PercentualeImponibile,
		&config.PercentualeImposta,
		&config.PercentualeContributi,
	)

	if err == sql.ErrNoRows {
		config = &models.PartitaIVAConfig{
			ID:                    uuid.New().String(),
			UserID:                userID,
			Anno:                  anno,
			PercentualeImponibile: DefaultPercentualeImponibile,
			PercentualeImposta:    DefaultPercentualeImposta,
			PercentualeContributi: DefaultPercentualeContributi,
		}
		_, err = r.db.Exec(`
			INSERT INTO partita_iva_configs (id, user_id, anno, percentuale_imponibile, percentuale_imposta, percentuale_contributi)
			VALUES (?, ?, ?, ?, ?, ?)`,
			config.ID, config.UserID, config.Anno,
			config.PercentualeImponibile, config.PercentualeImposta, config.PercentualeContributi)
		return config, err
	}

	return config, err
}

// UpdateConfig cambia los porcentajes del año. Las entradas ya registradas no
// se recalculan: sus importes quedaron congelados al crearlas.
func (r *PartitaIVARepository) UpdateConfig(config *models.PartitaIVAConfig) error {
	if config.PercentualeImponibile <= 0 || config.PercentualeImponibile > 100 {
		return errors.New("percentuale imponibile inválida")
	}

	existing, err := r.GetConfig(config.UserID, config.Anno)
	if err != nil {
		return err
	}

	query := `
		UPDATE partita_iva_configs
		SET percentuale_imponibile = ?, percentuale_imposta = ?, percentuale_contributi = ?
		WHERE id = ?`

	_, err = r.db.Exec(query, config.PercentualeImponibile, config.PercentualeImposta,
		config.PercentualeContributi, existing.ID)
	config.ID = existing.ID
	return err
}

// deriveTaxes congela los importes fiscales de una entrada con la config
// vigente al momento de crearla
func deriveTaxes(income *models.PartitaIVAIncome, config *models.PartitaIVAConfig) {
	income.Imponibile = utils.RoundCurrency(income.Entrata * config.PercentualeImponibile / 100)
	income.Imposta = utils.RoundCurrency(income.Imponibile * config.PercentualeImposta / 100)
	income.Contributi = utils.RoundCurrency(income.Imponibile * config.PercentualeContributi / 100)
	income.TotaleTasse = utils.RoundCurrency(income.Imposta + income.Contributi)
}

// CreateIncome registra la entrada con sus importes fiscales congelados y,
// si trae cuenta, acredita el importe en la misma transacción
func (r *PartitaIVARepository) CreateIncome(income *models.PartitaIVAIncome) error {
	if income.Entrata <= 0 {
		return errors.New("l'entrata debe ser mayor que cero")
	}
	if income.DataIncasso.IsZero() {
		income.DataIncasso = time.Now()
	}
	if income.DataEmissione.IsZero() {
		income.DataEmissione = income.DataIncasso
	}

	config, err := r.GetConfig(income.UserID, income.DataIncasso.Year())
	if err != nil {
		return err
	}
	income.ConfigID = config.ID
	deriveTaxes(income, config)

	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	income.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO partita_iva_incomes (id, user_id, config_id, account_id, data_incasso, data_emissione, riferimento, entrata, imponibile, imposta, contributi, totale_tasse, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		income.ID, income.UserID, income.ConfigID, income.AccountID,
		income.DataIncasso, income.DataEmissione, income.Riferimento,
		income.Entrata, income.Imponibile, income.Imposta, income.Contributi,
		income.TotaleTasse, income.CreatedAt)
	if err != nil {
		return err
	}

	if income.AccountID != "" {
		var count int
		err = tx.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id = ? AND user_id = ?`,
			income.AccountID, income.UserID).Scan(&count)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("cuenta no encontrada")
		}
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
			income.Entrata, income.AccountID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return r.syncRiservaTasse(income.UserID)
}

func (r *PartitaIVARepository) GetIncomesByUserId(userID string, anno int) ([]models.PartitaIVAIncome, error) {
	incomes := []models.PartitaIVAIncome{}
	query := `
		SELECT id, user_id, config_id, account_id, data_incasso, data_emissione, riferimento,
		       entrata, imponibile, imposta, contributi, totale_tasse, created_at
		FROM partita_iva_incomes
		WHERE user_id = ? AND CAST(strftime('%Y', data_incasso) AS INTEGER) = ?
		ORDER BY data_incasso DESC`

	rows, err := r.db.Query(query, userID, anno)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var income models.PartitaIVAIncome
		var accountID sql.NullString
		err := rows.Scan(
			&income.ID,
			&income.UserID,
			&income.ConfigID,
			&accountID,
			&income.DataIncasso,
			&income.DataEmissione,
			&income.Riferimento,
			&income.Entrata,
			&income.Imponibile,
			&income.Imposta,
			&income.Contributi,
			&income.TotaleTasse,
			&income.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		income.AccountID = accountID.String
		incomes = append(incomes, income)
	}

	return incomes, nil
}

// DeleteIncome elimina la entrada y revierte el crédito en cuenta si lo hubo
func (r *PartitaIVARepository) DeleteIncome(id, userID string) error {
	var entrata float64
	var accountID sql.NullString
	err := r.db.QueryRow(`SELECT entrata, account_id FROM partita_iva_incomes WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&entrata, &accountID)
	if err == sql.ErrNoRows {
		return errors.New("entrada no encontrada")
	}
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM partita_iva_incomes WHERE id = ?`, id)
	if err != nil {
		return err
	}

	if accountID.Valid && accountID.String != "" {
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
			entrata, accountID.String)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return r.syncRiservaTasse(userID)
}

func (r *PartitaIVARepository) CreateTaxPayment(payment *models.PartitaIVATaxPayment) error {
	if payment.Importo <= 0 {
		return errors.New("l'importo debe ser mayor que cero")
	}
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Data.IsZero() {
		payment.Data = time.Now()
	}
	if payment.AnnoRiferimento == 0 {
		payment.AnnoRiferimento = payment.Data.Year()
	}
	payment.CreatedAt = time.Now()

	query := `
		INSERT INTO partita_iva_tax_payments (id, user_id, data, descrizione, importo, tipo, anno_riferimento, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, payment.ID, payment.UserID, payment.Data,
		payment.Descrizione, payment.Importo, payment.Tipo, payment.AnnoRiferimento, payment.CreatedAt)
	if err != nil {
		return err
	}

	return r.syncRiservaTasse(payment.UserID)
}

func (r *PartitaIVARepository) GetTaxPaymentsByUserId(userID string, anno int) ([]models.PartitaIVATaxPayment, error) {
	payments := []models.PartitaIVATaxPayment{}
	query := `
		SELECT id, user_id, data, descrizione, importo, tipo, anno_riferimento, created_at
		FROM partita_iva_tax_payments
		WHERE user_id = ? AND anno_riferimento = ?
		ORDER BY data DESC`

	rows, err := r.db.Query(query, userID, anno)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var payment models.PartitaIVATaxPayment
		var descrizione, tipo sql.NullString
		err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.Data,
			&descrizione,
			&payment.Importo,
			&tipo,
			&payment.AnnoRiferimento,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payment.Descrizione = descrizione.String
		payment.Tipo = tipo.String
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *PartitaIVARepository) DeleteTaxPayment(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM partita_iva_tax_payments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("pago no encontrado")
	}

	return r.syncRiservaTasse(userID)
}

// GetStats calcula las estadísticas fiscales de un año
func (r *PartitaIVARepository) GetStats(userID string, anno int) (*models.PartitaIVAStats, error) {
	stats := &models.PartitaIVAStats{Anno: anno}

	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(entrata), 0), COALESCE(SUM(totale_tasse), 0), COUNT(*)
		FROM partita_iva_incomes
		WHERE user_id = ? AND CAST(strftime('%Y', data_incasso) AS INTEGER) = ?`,
		userID, anno).Scan(&stats.TotaleEntrate, &stats.TotaleTasseDovute, &stats.NumeroFatture)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(`
		SELECT COALESCE(SUM(importo), 0), COUNT(*)
		FROM partita_iva_tax_payments
		WHERE user_id = ? AND anno_riferimento = ?`,
		userID, anno).Scan(&stats.TotaleTassePagate, &stats.NumeroPagamenti)
	if err != nil {
		return nil, err
	}

	stats.TotaleEntrate = utils.RoundCurrency(stats.TotaleEntrate)
	stats.TotaleTasseDovute = utils.RoundCurrency(stats.TotaleTasseDovute)
	stats.TotaleTassePagate = utils.RoundCurrency(stats.TotaleTassePagate)
	stats.SaldoTasse = utils.RoundCurrency(stats.TotaleTasseDovute - stats.TotaleTassePagate)
	if stats.TotaleEntrate > 0 {
		stats.PercentualeTasse = utils.RoundPercentage(stats.TotaleTasseDovute / stats.TotaleEntrate * 100)
	}

	return stats, nil
}

// syncRiservaTasse recalcula el saldo de tasas pendientes de todos los años y
// lo refleja en el budget "Riserva Tasse"
func (r *PartitaIVARepository) syncRiservaTasse(userID string) error {
	var dovute, pagate float64

	err := r.db.QueryRow(`SELECT COALESCE(SUM(totale_tasse), 0) FROM partita_iva_incomes WHERE user_id = ?`,
		userID).Scan(&dovute)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(`SELECT COALESCE(SUM(importo), 0) FROM partita_iva_tax_payments WHERE user_id = ?`,
		userID).Scan(&pagate)
	if err != nil {
		return err
	}

	return r.budgets.SyncRiservaTasse(userID, dovute-pagate)
}
