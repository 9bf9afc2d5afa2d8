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

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		db: database.DB,
	}
}

func (r *AccountRepository) CreateAccount(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.Type == "" {
		account.Type = models.AccountTypeBank
	}
	if account.Type != models.AccountTypeBank && account.Type != models.AccountTypeInvestment {
		return errors.New("tipo de cuenta inválido")
	}
	account.CreatedAt = time.Now()

	// La primera cuenta del usuario queda como predeterminada
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE user_id = ?`, account.UserID).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		account.IsDefault = true
	}

	query := `
		INSERT INTO accounts (id, user_id, name, type, balance, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query, account.ID, account.UserID, account.Name, account.Type,
		utils.RoundCurrency(account.Balance), account.IsDefault, account.CreatedAt)
	return err
}

func (r *AccountRepository) GetAccountsByUserId(userID string) ([]models.Account, error) {
	accounts := []models.Account{}
	query := `
		SELECT id, user_id, name, type, balance, is_default, created_at
		FROM accounts
		WHERE user_id = ?
		ORDER BY is_default DESC, created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var account models.Account
		err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Name,
			&account.Type,
			&account.Balance,
			&account.IsDefault,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

func (r *AccountRepository) GetAccountById(id, userID string) (*models.Account, error) {
	account := &models.Account{}
	query := `
		SELECT id, user_id, name, type, balance, is_default, created_at
		FROM accounts
		WHERE id = ? AND user_id = ?`

	err := r.db.QueryRow(query, id, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Type,
		&account.Balance,
		&account.IsDefault,
		&account.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.New("cuenta no encontrada")
	}

	return account, err
}

func (r *AccountRepository) UpdateAccount(account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = ?, type = ?, balance = ?
		WHERE id = ? AND user_id = ?`

	result, err := r.db.Exec(query, account.Name, account.Type,
		utils.RoundCurrency(account.Balance), account.ID, account.UserID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("cuenta no encontrada")
	}

	return nil
}

// SetDefaultAccount marca una cuenta como predeterminada y desmarca el resto
func (r *AccountRepository) SetDefaultAccount(id, userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE accounts SET is_default = 0 WHERE user_id = ?`, userID); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE accounts SET is_default = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("cuenta no encontrada")
	}

	return tx.Commit()
}

func (r *AccountRepository) DeleteAccount(id, userID string) error {
	// No permitimos borrar cuentas con portafolios asociados
	var linked int
	query := `
		SELECT
			(SELECT COUNT(*) FROM dca_portfolios WHERE account_id = ?) +
			(SELECT COUNT(*) FROM crypto_portfolios WHERE account_id = ?)`
	if err := r.db.QueryRow(query, id, id).Scan(&linked); err != nil {
		return err
	}
	if linked > 0 {
		return errors.New("la cuenta tiene portafolios asociados")
	}

	result, err := r.db.Exec(`DELETE FROM accounts WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("cuenta no encontrada")
	}

	return nil
}

// AdjustBalance suma (o resta, con delta negativo) al saldo de una cuenta.
// Acepta un *sql.Tx para participar en operaciones atómicas.
func (r *AccountRepository) AdjustBalance(tx *sql.Tx, accountID string, delta float64) error {
	query := `UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.Exec(query, delta, accountID)
	} else {
		result, err = r.db.Exec(query, delta, accountID)
	}
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("cuenta no encontrada")
	}

	return nil
}

// RecalculateBalances reconstruye el saldo de cada cuenta del usuario
// reproduciendo desde cero transferencias, operaciones de portafolio y
// entradas P.IVA acreditadas. Devuelve las cuentas ya corregidas.
func (r *AccountRepository) RecalculateBalances(userID string) ([]models.Account, error) {
	accounts, err := r.GetAccountsByUserId(userID)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for i := range accounts {
		account := &accounts[i]
		balance := 0.0

		var in, out float64
		err = tx.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM transfers WHERE to_account_id = ?`,
			account.ID).Scan(&in)
		if err != nil {
			return nil, err
		}
		err = tx.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM transfers WHERE from_account_id = ?`,
			account.ID).Scan(&out)
		if err != nil {
			return nil, err
		}
		balance += in - out

		// Compras DCA descuentan, ventas acreditan
		var dcaNet float64
		err = tx.QueryRow(`
			SELECT COALESCE(SUM(CASE WHEN t.type = 'sell' THEN t.eur_paid ELSE -t.eur_paid END), 0)
			FROM dca_transactions t
			JOIN dca_portfolios p ON p.id = t.portfolio_id
			WHERE p.account_id = ?`, account.ID).Scan(&dcaNet)
		if err != nil {
			return nil, err
		}
		balance += dcaNet

		// Idem crypto: swaps y stake rewards no tocan el saldo
		var cryptoNet float64
		err = tx.QueryRow(`
			SELECT COALESCE(SUM(CASE
				WHEN t.type = 'sell' THEN t.eur_value
				WHEN t.type = 'buy' THEN -t.eur_value
				ELSE 0
			END), 0)
			FROM crypto_transactions t
			JOIN crypto_portfolios p ON p.id = t.portfolio_id
			WHERE p.account_id = ?`, account.ID).Scan(&cryptoNet)
		if err != nil {
			return nil, err
		}
		balance += cryptoNet

		var pivaIn float64
		err = tx.QueryRow(`SELECT COALESCE(SUM(entrata), 0) FROM partita_iva_incomes WHERE account_id = ?`,
			account.ID).Scan(&pivaIn)
		if err != nil {
			return nil, err
		}
		balance += pivaIn

		account.Balance = utils.RoundCurrency(balance)
		if _, err := tx.Exec(`UPDATE accounts SET balance = ? WHERE id = ?`, account.Balance, account.ID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return accounts, nil
}

// GetTotalLiquidity suma los saldos de las cuentas bancarias del usuario
func (r *AccountRepository) GetTotalLiquidity(userID string) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = ? AND type = ?`

	err := r.db.QueryRow(query, userID, models.AccountTypeBank).Scan(&total)
	return utils.RoundCurrency(total), err
}
