package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/google/uuid"
)

type DCARepository struct {
	db *sql.DB
}

func NewDCARepository() *DCARepository {
	return &DCARepository{
		db: database.DB,
	}
}

func (r *DCARepository) CreatePortfolio(portfolio *models.DCAPortfolio) error {
	if portfolio.ID == "" {
		portfolio.ID = uuid.New().String()
	}
	if portfolio.Type == "" {
		portfolio.Type = "dca_bitcoin"
	}
	portfolio.CreatedAt = time.Now()

	// La cuenta vinculada debe existir y ser del usuario
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id = ? AND user_id = ?`,
		portfolio.AccountID, portfolio.UserID).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("cuenta no encontrada")
	}

	query := `
		INSERT INTO dca_portfolios (id, user_id, account_id, name, type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query, portfolio.ID, portfolio.UserID, portfolio.AccountID,
		portfolio.Name, portfolio.Type, portfolio.CreatedAt)
	return err
}

func (r *DCARepository) GetPortfoliosByUserId(userID string) ([]models.DCAPortfolio, error) {
	portfolios := []models.DCAPortfolio{}
	query := `
		SELECT id, user_id, account_id, name, type, created_at
		FROM dca_portfolios
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var portfolio models.DCAPortfolio
		err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.AccountID,
			&portfolio.Name,
			&portfolio.Type,
			&portfolio.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, portfolio)
	}

	return portfolios, nil
}

func (r *DCARepository) GetPortfolioById(id, userID string) (*models.DCAPortfolio, error) {
	portfolio := &models.DCAPortfolio{}
	query := `
		SELECT id, user_id, account_id, name, type, created_at
		FROM dca_portfolios
		WHERE id = ? AND user_id = ?`

	err := r.db.QueryRow(query, id, userID).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.AccountID,
		&portfolio.Name,
		&portfolio.Type,
		&portfolio.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("portafolio no encontrado")
	}

	return portfolio, err
}

func (r *DCARepository) UpdatePortfolio(portfolio *models.DCAPortfolio) error {
	query := `
		UPDATE dca_portfolios
		SET name = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.Exec(query, portfolio.Name, portfolio.ID, portfolio.UserID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("portafolio no encontrado")
	}

	return nil
}

func (r *DCARepository) DeletePortfolio(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM dca_portfolios WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("portafolio no encontrado")
	}

	return nil
}

// CreateTransaction inserta la compra/venta y ajusta el saldo de la cuenta
// vinculada en la misma transacción: buy descuenta EUR, sell acredita
func (r *DCARepository) CreateTransaction(userID string, transaction *models.DCATransaction) error {
	portfolio, err := r.GetPortfolioById(transaction.PortfolioID, userID)
	if err != nil {
		return err
	}

	if transaction.Type == "" {
		transaction.Type = models.DCATransactionTypeBuy
	}
	if transaction.Type != models.DCATransactionTypeBuy && transaction.Type != models.DCATransactionTypeSell {
		return errors.New("tipo de transacción inválido")
	}
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	transaction.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO dca_transactions (id, portfolio_id, type, btc_quantity, eur_paid, date, broker, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, transaction.PortfolioID, transaction.Type, transaction.BTCQuantity,
		transaction.EurPaid, transaction.Date, transaction.Broker, transaction.Notes, transaction.CreatedAt)
	if err != nil {
		return err
	}

	delta := -transaction.EurPaid
	if transaction.Type == models.DCATransactionTypeSell {
		delta = transaction.EurPaid
	}
	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
		delta, portfolio.AccountID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *DCARepository) GetTransactionsByPortfolioId(portfolioID string) ([]models.DCATransaction, error) {
	transactions := []models.DCATransaction{}
	query := `
		SELECT id, portfolio_id, type, btc_quantity, eur_paid, date, broker, notes, created_at
		FROM dca_transactions
		WHERE portfolio_id = ?
		ORDER BY date DESC`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var transaction models.DCATransaction
		var broker, notes sql.NullString
		err := rows.Scan(
			&transaction.ID,
			&transaction.PortfolioID,
			&transaction.Type,
			&transaction.BTCQuantity,
			&transaction.EurPaid,
			&transaction.Date,
			&broker,
			&notes,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transaction.Broker = broker.String
		transaction.Notes = notes.String
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}

// DeleteTransaction borra la transacción y revierte su efecto sobre el saldo
func (r *DCARepository) DeleteTransaction(transactionID, userID string) error {
	var transaction models.DCATransaction
	var accountID string
	err := r.db.QueryRow(`
		SELECT t.id, t.type, t.eur_paid, p.account_id
		FROM dca_transactions t
		JOIN dca_portfolios p ON p.id = t.portfolio_id
		WHERE t.id = ? AND p.user_id = ?`, transactionID, userID).Scan(
		&transaction.ID,
		&transaction.Type,
		&transaction.EurPaid,
		&accountID,
	)
	if err == sql.ErrNoRows {
		return errors.New("transacción no encontrada")
	}
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM dca_transactions WHERE id = ?`, transactionID)
	if err != nil {
		return err
	}

	// Revertir: una compra devolvió EUR a la cuenta, una venta los quita
	delta := transaction.EurPaid
	if transaction.Type == models.DCATransactionTypeSell {
		delta = -transaction.EurPaid
	}
	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`, delta, accountID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *DCARepository) CreateNetworkFee(userID string, fee *models.NetworkFee) error {
	if _, err := r.GetPortfolioById(fee.PortfolioID, userID); err != nil {
		return err
	}

	if fee.ID == "" {
		fee.ID = uuid.New().String()
	}
	if fee.Date.IsZero() {
		fee.Date = time.Now()
	}
	fee.CreatedAt = time.Now()

	query := `
		INSERT INTO network_fees (id, portfolio_id, sats, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, fee.ID, fee.PortfolioID, fee.Sats, fee.Date, fee.Description, fee.CreatedAt)
	return err
}

func (r *DCARepository) GetNetworkFeesByPortfolioId(portfolioID string) ([]models.NetworkFee, error) {
	fees := []models.NetworkFee{}
	query := `
		SELECT id, portfolio_id, sats, date, description, created_at
		FROM network_fees
		WHERE portfolio_id = ?
		ORDER BY date DESC`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var fee models.NetworkFee
		var description sql.NullString
		err := rows.Scan(
			&fee.ID,
			&fee.PortfolioID,
			&fee.Sats,
			&fee.Date,
			&description,
			&fee.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		fee.Description = description.String
		fees = append(fees, fee)
	}

	return fees, nil
}

func (r *DCARepository) DeleteNetworkFee(feeID, userID string) error {
	result, err := r.db.Exec(`
		DELETE FROM network_fees
		WHERE id = ? AND portfolio_id IN (SELECT id FROM dca_portfolios WHERE user_id = ?)`,
		feeID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("comisión no encontrada")
	}

	return nil
}

// GetPortfolioWithStats carga el portafolio completo con transacciones,
// comisiones y el bloque de estadísticas valorizado con el precio indicado
func (r *DCARepository) GetPortfolioWithStats(id, userID string, btcPriceEur float64) (*models.DCAPortfolio, error) {
	portfolio, err := r.GetPortfolioById(id, userID)
	if err != nil {
		return nil, err
	}

	portfolio.Transactions, err = r.GetTransactionsByPortfolioId(portfolio.ID)
	if err != nil {
		return nil, err
	}

	portfolio.NetworkFees, err = r.GetNetworkFeesByPortfolioId(portfolio.ID)
	if err != nil {
		return nil, err
	}

	stats := services.CalculateDCAStats(portfolio.Transactions, portfolio.NetworkFees, btcPriceEur)
	portfolio.Stats = &stats

	return portfolio, nil
}

// GetPortfoliosWithStats carga todos los portafolios DCA del usuario con stats
func (r *DCARepository) GetPortfoliosWithStats(userID string, btcPriceEur float64) ([]models.DCAPortfolio, error) {
	portfolios, err := r.GetPortfoliosByUserId(userID)
	if err != nil {
		return nil, err
	}

	for i := range portfolios {
		portfolios[i].Transactions, err = r.GetTransactionsByPortfolioId(portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].NetworkFees, err = r.GetNetworkFeesByPortfolioId(portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		stats := services.CalculateDCAStats(portfolios[i].Transactions, portfolios[i].NetworkFees, btcPriceEur)
		portfolios[i].Stats = &stats
	}

	return portfolios, nil
}
