package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
	"github.com/google/uuid"
)

type CryptoRepository struct {
	db *sql.DB
}

func NewCryptoRepository() *CryptoRepository {
	return &CryptoRepository{
		db: database.DB,
	}
}

func (r *CryptoRepository) CreatePortfolio(portfolio *models.CryptoPortfolio) error {
	if portfolio.ID == "" {
		portfolio.ID = uuid.New().String()
	}
	portfolio.CreatedAt = time.Now()

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
		INSERT INTO crypto_portfolios (id, user_id, account_id, name, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query, portfolio.ID, portfolio.UserID, portfolio.AccountID,
		portfolio.Name, portfolio.CreatedAt)
	return err
}

func (r *CryptoRepository) GetPortfoliosByUserId(userID string) ([]models.CryptoPortfolio, error) {
	portfolios := []models.CryptoPortfolio{}
	query := `
		SELECT id, user_id, account_id, name, created_at
		FROM crypto_portfolios
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var portfolio models.CryptoPortfolio
		err := rows.Scan(
			&portfolio.ID,
			&portfolio.UserID,
			&portfolio.AccountID,
			&portfolio.Name,
			&portfolio.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		portfolios = append(portfolios, portfolio)
	}

	return portfolios, nil
}

func (r *CryptoRepository) GetPortfolioById(id, userID string) (*models.CryptoPortfolio, error) {
	portfolio := &models.CryptoPortfolio{}
	query := `
		SELECT id, user_id, account_id, name, created_at
		FROM crypto_portfolios
		WHERE id = ? AND user_id = ?`

	err := r.db.QueryRow(query, id, userID).Scan(
		&portfolio.ID,
		&portfolio.UserID,
		&portfolio.AccountID,
		&portfolio.Name,
		&portfolio.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("portafolio no encontrado")
	}

	return portfolio, err
}

func (r *CryptoRepository) UpdatePortfolio(portfolio *models.CryptoPortfolio) error {
	query := `
		UPDATE crypto_portfolios
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

func (r *CryptoRepository) DeletePortfolio(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM crypto_portfolios WHERE id = ? AND user_id = ?`, id, userID)
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

// FindOrCreateAsset busca el activo por símbolo y lo registra si no existe.
// Los importadores dependen de esto para aceptar símbolos nuevos.
func (r *CryptoRepository) FindOrCreateAsset(symbol string) (*models.CryptoAsset, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New("símbolo vacío")
	}

	asset := &models.CryptoAsset{}
	err := r.db.QueryRow(`SELECT id, symbol, name, decimals, is_active FROM crypto_assets WHERE symbol = ?`, symbol).Scan(
		&asset.ID,
		&asset.Symbol,
		&asset.Name,
		&asset.Decimals,
		&asset.IsActive,
	)
	if err == nil {
		return asset, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	asset = &models.CryptoAsset{
		ID:       uuid.New().String(),
		Symbol:   symbol,
		Name:     symbol,
		Decimals: 6,
		IsActive: true,
	}

	_, err = r.db.Exec(`INSERT INTO crypto_assets (id, symbol, name, decimals, is_active) VALUES (?, ?, ?, ?, ?)`,
		asset.ID, asset.Symbol, asset.Name, asset.Decimals, asset.IsActive)
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// CreateTransaction inserta el movimiento, ajusta el saldo de la cuenta
// vinculada (buy descuenta, sell acredita, stake_reward no toca el saldo)
// y recalcula el holding del activo desde el historial completo
func (r *CryptoRepository) CreateTransaction(userID string, transaction *models.CryptoPortfolioTransaction) error {
	portfolio, err := r.GetPortfolioById(transaction.PortfolioID, userID)
	if err != nil {
		return err
	}

	switch transaction.Type {
	case models.TransactionTypeBuy, models.TransactionTypeSell, models.TransactionTypeStakeReward:
	default:
		return errors.New("tipo de transacción inválido")
	}
	if transaction.Quantity <= 0 {
		return errors.New("la cantidad debe ser mayor que cero")
	}

	asset, err := r.FindOrCreateAsset(transaction.AssetSymbol)
	if err != nil {
		return err
	}
	transaction.AssetID = asset.ID
	transaction.AssetSymbol = asset.Symbol

	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Date.IsZero() {
		transaction.Date = time.Now()
	}
	if transaction.PricePerUnit == 0 && transaction.Quantity > 0 {
		transaction.PricePerUnit = transaction.EurValue / transaction.Quantity
	}
	transaction.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if transaction.Type == models.TransactionTypeBuy {
		var balance float64
		if err := tx.QueryRow(`SELECT balance FROM accounts WHERE id = ?`, portfolio.AccountID).Scan(&balance); err != nil {
			return err
		}
		if balance < transaction.EurValue {
			return errors.New("saldo insuficiente en la cuenta vinculada")
		}
	}

	_, err = tx.Exec(`
		INSERT INTO crypto_transactions (id, portfolio_id, asset_id, type, quantity, eur_value, price_per_unit, swap_pair_id, broker, notes, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.ID, transaction.PortfolioID, transaction.AssetID, transaction.Type,
		transaction.Quantity, transaction.EurValue, transaction.PricePerUnit,
		transaction.SwapPairID, transaction.Broker, transaction.Notes,
		transaction.Date, transaction.CreatedAt)
	if err != nil {
		return err
	}

	switch transaction.Type {
	case models.TransactionTypeBuy:
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
			transaction.EurValue, portfolio.AccountID)
	case models.TransactionTypeSell:
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
			transaction.EurValue, portfolio.AccountID)
	}
	if err != nil {
		return err
	}

	if err := r.refoldHoldingTx(tx, transaction.PortfolioID, transaction.AssetID); err != nil {
		return err
	}

	return tx.Commit()
}

// SwapRequest describe un intercambio entre dos activos del mismo portafolio
type SwapRequest struct {
	PortfolioID  string    `json:"portfolio_id"`
	FromSymbol   string    `json:"from_symbol" binding:"required"`
	ToSymbol     string    `json:"to_symbol" binding:"required"`
	FromQuantity float64   `json:"from_quantity" binding:"required,gt=0"`
	ToQuantity   float64   `json:"to_quantity" binding:"required,gt=0"`
	EurValue     float64   `json:"eur_value" binding:"required,gt=0"`
	Broker       string    `json:"broker,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Date         time.Time `json:"date"`
}

// CreateSwap registra el par swap_out/swap_in atómicamente, enlazado por
// swap_pair_id. Verifica antes que el holding de origen alcance.
func (r *CryptoRepository) CreateSwap(userID string, req *SwapRequest) (string, error) {
	if _, err := r.GetPortfolioById(req.PortfolioID, userID); err != nil {
		return "", err
	}

	fromAsset, err := r.FindOrCreateAsset(req.FromSymbol)
	if err != nil {
		return "", err
	}
	toAsset, err := r.FindOrCreateAsset(req.ToSymbol)
	if err != nil {
		return "", err
	}

	var held float64
	err = r.db.QueryRow(`SELECT COALESCE(quantity, 0) FROM crypto_holdings WHERE portfolio_id = ? AND asset_id = ?`,
		req.PortfolioID, fromAsset.ID).Scan(&held)
	if err == sql.ErrNoRows {
		held = 0
	} else if err != nil {
		return "", err
	}
	if held < req.FromQuantity {
		return "", fmt.Errorf("cantidad insuficiente de %s: tiene %f, necesita %f",
			fromAsset.Symbol, held, req.FromQuantity)
	}

	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	swapPairID := uuid.New().String()
	now := time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	insertSQL := `
		INSERT INTO crypto_transactions (id, portfolio_id, asset_id, type, quantity, eur_value, price_per_unit, swap_pair_id, broker, notes, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.Exec(insertSQL,
		uuid.New().String(), req.PortfolioID, fromAsset.ID, models.TransactionTypeSwapOut,
		req.FromQuantity, req.EurValue, req.EurValue/req.FromQuantity,
		swapPairID, req.Broker, req.Notes, req.Date, now)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(insertSQL,
		uuid.New().String(), req.PortfolioID, toAsset.ID, models.TransactionTypeSwapIn,
		req.ToQuantity, req.EurValue, req.EurValue/req.ToQuantity,
		swapPairID, req.Broker, req.Notes, req.Date, now)
	if err != nil {
		return "", err
	}

	if err := r.refoldHoldingTx(tx, req.PortfolioID, fromAsset.ID); err != nil {
		return "", err
	}
	if err := r.refoldHoldingTx(tx, req.PortfolioID, toAsset.ID); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return swapPairID, nil
}

// DeleteSwap elimina ambas patas del swap y recalcula los dos holdings
func (r *CryptoRepository) DeleteSwap(swapPairID, userID string) error {
	rows, err := r.db.Query(`
		SELECT t.portfolio_id, t.asset_id
		FROM crypto_transactions t
		JOIN crypto_portfolios p ON p.id = t.portfolio_id
		WHERE t.swap_pair_id = ? AND p.user_id = ?`, swapPairID, userID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type leg struct{ portfolioID, assetID string }
	var legs []leg
	for rows.Next() {
		var l leg
		if err := rows.Scan(&l.portfolioID, &l.assetID); err != nil {
			return err
		}
		legs = append(legs, l)
	}
	if len(legs) == 0 {
		return errors.New("swap no encontrado")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM crypto_transactions WHERE swap_pair_id = ?`, swapPairID)
	if err != nil {
		return err
	}

	for _, l := range legs {
		if err := r.refoldHoldingTx(tx, l.portfolioID, l.assetID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteTransaction borra el movimiento, revierte su efecto sobre el saldo y
// recalcula el holding. Las patas de swap se borran por DeleteSwap.
func (r *CryptoRepository) DeleteTransaction(transactionID, userID string) error {
	var transaction models.CryptoPortfolioTransaction
	var accountID string
	var swapPairID sql.NullString
	err := r.db.QueryRow(`
		SELECT t.id, t.portfolio_id, t.asset_id, t.type, t.eur_value, t.swap_pair_id, p.account_id
		FROM crypto_transactions t
		JOIN crypto_portfolios p ON p.id = t.portfolio_id
		WHERE t.id = ? AND p.user_id = ?`, transactionID, userID).Scan(
		&transaction.ID,
		&transaction.PortfolioID,
		&transaction.AssetID,
		&transaction.Type,
		&transaction.EurValue,
		&swapPairID,
		&accountID,
	)
	if err == sql.ErrNoRows {
		return errors.New("transacción no encontrada")
	}
	if err != nil {
		return err
	}

	if swapPairID.Valid && swapPairID.String != "" {
		return errors.New("las patas de un swap se eliminan con el swap completo")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM crypto_transactions WHERE id = ?`, transactionID)
	if err != nil {
		return err
	}

	switch transaction.Type {
	case models.TransactionTypeBuy:
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
			transaction.EurValue, accountID)
	case models.TransactionTypeSell:
		_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
			transaction.EurValue, accountID)
	}
	if err != nil {
		return err
	}

	if err := r.refoldHoldingTx(tx, transaction.PortfolioID, transaction.AssetID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *CryptoRepository) GetTransactionsByPortfolioId(portfolioID string) ([]models.CryptoPortfolioTransaction, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.asset_id, a.symbol, t.type, t.quantity, t.eur_value,
		       t.price_per_unit, t.swap_pair_id, t.broker, t.notes, t.date, t.created_at
		FROM crypto_transactions t
		JOIN crypto_assets a ON a.id = t.asset_id
		WHERE t.portfolio_id = ?
		ORDER BY t.date DESC`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCryptoTransactions(rows)
}

func (r *CryptoRepository) getTransactionsByAsset(tx *sql.Tx, portfolioID, assetID string) ([]models.CryptoPortfolioTransaction, error) {
	query := `
		SELECT t.id, t.portfolio_id, t.asset_id, a.symbol, t.type, t.quantity, t.eur_value,
		       t.price_per_unit, t.swap_pair_id, t.broker, t.notes, t.date, t.created_at
		FROM crypto_transactions t
		JOIN crypto_assets a ON a.id = t.asset_id
		WHERE t.portfolio_id = ? AND t.asset_id = ?
		ORDER BY t.date ASC`

	rows, err := tx.Query(query, portfolioID, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCryptoTransactions(rows)
}

func scanCryptoTransactions(rows *sql.Rows) ([]models.CryptoPortfolioTransaction, error) {
	transactions := []models.CryptoPortfolioTransaction{}
	for rows.Next() {
		var transaction models.CryptoPortfolioTransaction
		var swapPairID, broker, notes sql.NullString
		err := rows.Scan(
			&transaction.ID,
			&transaction.PortfolioID,
			&transaction.AssetID,
			&transaction.AssetSymbol,
			&transaction.Type,
			&transaction.Quantity,
			&transaction.EurValue,
			&transaction.PricePerUnit,
			&swapPairID,
			&broker,
			&notes,
			&transaction.Date,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transaction.SwapPairID = swapPairID.String
		transaction.Broker = broker.String
		transaction.Notes = notes.String
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// refoldHoldingTx recalcula el holding de un activo desde su historial
// completo. Si el resultado queda en polvo (< 1e-7) el holding se elimina.
func (r *CryptoRepository) refoldHoldingTx(tx *sql.Tx, portfolioID, assetID string) error {
	transactions, err := r.getTransactionsByAsset(tx, portfolioID, assetID)
	if err != nil {
		return err
	}

	totals := services.FoldHoldings(transactions)

	if totals.IsDust() {
		_, err = tx.Exec(`DELETE FROM crypto_holdings WHERE portfolio_id = ? AND asset_id = ?`,
			portfolioID, assetID)
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO crypto_holdings (id, portfolio_id, asset_id, quantity, avg_price, total_invested, realized_gains, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, asset_id) DO UPDATE SET
			quantity = excluded.quantity,
			avg_price = excluded.avg_price,
			total_invested = excluded.total_invested,
			realized_gains = excluded.realized_gains,
			last_updated = excluded.last_updated`,
		uuid.New().String(), portfolioID, assetID,
		totals.Quantity, utils.RoundCurrency(totals.AvgPrice),
		utils.RoundCurrency(totals.TotalInvested), utils.RoundCurrency(totals.RealizedGains),
		time.Now())
	return err
}

// RecalculateHoldings reconstruye todos los holdings de un portafolio desde
// el historial completo de transacciones
func (r *CryptoRepository) RecalculateHoldings(portfolioID, userID string) error {
	if _, err := r.GetPortfolioById(portfolioID, userID); err != nil {
		return err
	}

	rows, err := r.db.Query(`
		SELECT DISTINCT asset_id FROM crypto_transactions WHERE portfolio_id = ?`, portfolioID)
	if err != nil {
		return err
	}
	assetIDs := []string{}
	for rows.Next() {
		var assetID string
		if err := rows.Scan(&assetID); err != nil {
			rows.Close()
			return err
		}
		assetIDs = append(assetIDs, assetID)
	}
	rows.Close()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Holdings huérfanos (sin transacciones) también se limpian
	_, err = tx.Exec(`
		DELETE FROM crypto_holdings
		WHERE portfolio_id = ?
		AND asset_id NOT IN (SELECT DISTINCT asset_id FROM crypto_transactions WHERE portfolio_id = ?)`,
		portfolioID, portfolioID)
	if err != nil {
		return err
	}

	for _, assetID := range assetIDs {
		if err := r.refoldHoldingTx(tx, portfolioID, assetID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *CryptoRepository) GetHoldingsByPortfolioId(portfolioID string) ([]models.CryptoHolding, error) {
	holdings := []models.CryptoHolding{}
	query := `
		SELECT h.id, h.portfolio_id, h.asset_id, a.symbol, h.quantity, h.avg_price,
		       h.total_invested, h.realized_gains, h.last_updated
		FROM crypto_holdings h
		JOIN crypto_assets a ON a.id = h.asset_id
		WHERE h.portfolio_id = ?
		ORDER BY h.total_invested DESC`

	rows, err := r.db.Query(query, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var holding models.CryptoHolding
		err := rows.Scan(
			&holding.ID,
			&holding.PortfolioID,
			&holding.AssetID,
			&holding.AssetSymbol,
			&holding.Quantity,
			&holding.AvgPrice,
			&holding.TotalInvested,
			&holding.RealizedGains,
			&holding.LastUpdated,
		)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}

	return holdings, nil
}

// GetPortfolioWithStats carga el portafolio completo con holdings valorizados
// a precio de mercado (con fallback al precio promedio si no hay cotización)
func (r *CryptoRepository) GetPortfolioWithStats(id, userID string) (*models.CryptoPortfolio, error) {
	portfolio, err := r.GetPortfolioById(id, userID)
	if err != nil {
		return nil, err
	}

	portfolio.Holdings, err = r.GetHoldingsByPortfolioId(portfolio.ID)
	if err != nil {
		return nil, err
	}

	portfolio.Transactions, err = r.GetTransactionsByPortfolioId(portfolio.ID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(portfolio.Holdings))
	for _, holding := range portfolio.Holdings {
		symbols = append(symbols, holding.AssetSymbol)
	}
	// Sin precios en vivo seguimos adelante: el cálculo usa avg_price
	prices, _, _ := services.GetCryptoPrices(symbols)

	stats := services.CalculateCryptoPortfolioStats(portfolio.Holdings, portfolio.Transactions, prices)
	portfolio.Stats = &stats

	return portfolio, nil
}

// GetPortfoliosWithStats carga todos los portafolios crypto del usuario con
// holdings, transacciones y stats valorizados en una sola pasada de precios
func (r *CryptoRepository) GetPortfoliosWithStats(userID string) ([]models.CryptoPortfolio, error) {
	portfolios, err := r.GetPortfoliosByUserId(userID)
	if err != nil {
		return nil, err
	}

	symbolSet := map[string]bool{}
	for i := range portfolios {
		portfolios[i].Holdings, err = r.GetHoldingsByPortfolioId(portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].Transactions, err = r.GetTransactionsByPortfolioId(portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		for _, holding := range portfolios[i].Holdings {
			symbolSet[holding.AssetSymbol] = true
		}
	}

	symbols := make([]string, 0, len(symbolSet))
	for symbol := range symbolSet {
		symbols = append(symbols, symbol)
	}
	prices, _, _ := services.GetCryptoPrices(symbols)

	for i := range portfolios {
		stats := services.CalculateCryptoPortfolioStats(portfolios[i].Holdings, portfolios[i].Transactions, prices)
		portfolios[i].Stats = &stats
	}

	return portfolios, nil
}
