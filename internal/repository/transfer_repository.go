package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/google/uuid"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{
		db: database.DB,
	}
}

// CreateTransfer registra la transferencia y mueve el saldo entre las dos
// cuentas en una única transacción
func (r *TransferRepository) CreateTransfer(transfer *models.Transfer) error {
	if transfer.FromAccountID == transfer.ToAccountID {
		return errors.New("las cuentas de origen y destino deben ser distintas")
	}
	if transfer.Amount <= 0 {
		return errors.New("el monto debe ser mayor que cero")
	}

	if transfer.ID == "" {
		transfer.ID = uuid.New().String()
	}
	if transfer.Date.IsZero() {
		transfer.Date = time.Now()
	}
	transfer.CreatedAt = time.Now()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Verificar que ambas cuentas pertenezcan al usuario
	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM accounts WHERE id IN (?, ?) AND user_id = ?`,
		transfer.FromAccountID, transfer.ToAccountID, transfer.UserID).Scan(&count)
	if err != nil {
		return err
	}
	if count != 2 {
		return errors.New("cuenta no encontrada")
	}

	var fromBalance float64
	err = tx.QueryRow(`SELECT balance FROM accounts WHERE id = ?`, transfer.FromAccountID).Scan(&fromBalance)
	if err != nil {
		return err
	}
	if fromBalance < transfer.Amount {
		return errors.New("saldo insuficiente en la cuenta de origen")
	}

	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
		transfer.Amount, transfer.FromAccountID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
		transfer.Amount, transfer.ToAccountID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO transfers (id, user_id, amount, description, date, from_account_id, to_account_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		transfer.ID, transfer.UserID, transfer.Amount, transfer.Description,
		transfer.Date, transfer.FromAccountID, transfer.ToAccountID, transfer.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TransferRepository) GetTransfersByUserId(userID string) ([]models.Transfer, error) {
	transfers := []models.Transfer{}
	query := `
		SELECT id, user_id, amount, description, date, from_account_id, to_account_id, created_at
		FROM transfers
		WHERE user_id = ?
		ORDER BY date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var transfer models.Transfer
		var description sql.NullString
		err := rows.Scan(
			&transfer.ID,
			&transfer.UserID,
			&transfer.Amount,
			&description,
			&transfer.Date,
			&transfer.FromAccountID,
			&transfer.ToAccountID,
			&transfer.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transfer.Description = description.String
		transfers = append(transfers, transfer)
	}

	return transfers, nil
}

// DeleteTransfer elimina la transferencia y revierte el movimiento de saldo
func (r *TransferRepository) DeleteTransfer(id, userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var transfer models.Transfer
	err = tx.QueryRow(`
		SELECT id, amount, from_account_id, to_account_id
		FROM transfers
		WHERE id = ? AND user_id = ?`, id, userID).Scan(
		&transfer.ID,
		&transfer.Amount,
		&transfer.FromAccountID,
		&transfer.ToAccountID,
	)
	if err == sql.ErrNoRows {
		return errors.New("transferencia no encontrada")
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance + ?, 2) WHERE id = ?`,
		transfer.Amount, transfer.FromAccountID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE accounts SET balance = ROUND(balance - ?, 2) WHERE id = ?`,
		transfer.Amount, transfer.ToAccountID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`DELETE FROM transfers WHERE id = ?`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}
