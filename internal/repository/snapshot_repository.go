package repository

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/database"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/models"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/services"
	"github.com/AgusMolinaCode/SNP_Finance_Api.git/internal/utils"
	"github.com/google/uuid"
)

type SnapshotRepository struct {
	db     *sql.DB
	dca    *DCARepository
	crypto *CryptoRepository
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		db:     database.DB,
		dca:    NewDCARepository(),
		crypto: NewCryptoRepository(),
	}
}

func (r *SnapshotRepository) GetSnapshotsByUserId(userID string) ([]models.HoldingsSnapshot, error) {
	snapshots := []models.HoldingsSnapshot{}
	query := `
		SELECT id, user_id, date, btc_usd, dirty_dollars, dirty_euro, btc, is_automatic, note, created_at
		FROM holdings_snapshots
		WHERE user_id = ?
		ORDER BY date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var snapshot models.HoldingsSnapshot
		var note sql.NullString
		err := rows.Scan(
			&snapshot.ID,
			&snapshot.UserID,
			&snapshot.Date,
			&snapshot.BTCUSD,
			&snapshot.DirtyDollars,
			&snapshot.DirtyEuro,
			&snapshot.BTC,
			&snapshot.IsAutomatic,
			&note,
			&snapshot.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshot.Note = note.String
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}

// CreateSnapshot inserta un snapshot ya valorizado (lo usan el importador CSV
// y la automatización)
func (r *SnapshotRepository) CreateSnapshot(snapshot *models.HoldingsSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	if snapshot.Date.IsZero() {
		snapshot.Date = time.Now()
	}
	snapshot.CreatedAt = time.Now()

	query := `
		INSERT INTO holdings_snapshots (id, user_id, date, btc_usd, dirty_dollars, dirty_euro, btc, is_automatic, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		snapshot.ID, snapshot.UserID, snapshot.Date,
		utils.RoundBitcoinPrice(snapshot.BTCUSD),
		utils.RoundCurrency(snapshot.DirtyDollars),
		utils.RoundCurrency(snapshot.DirtyEuro),
		utils.RoundBitcoin(snapshot.BTC),
		snapshot.IsAutomatic, snapshot.Note, snapshot.CreatedAt)
	return err
}

// CreateValuedSnapshot valoriza las tenencias del usuario al precio actual y
// guarda la foto. No toca last_snapshot: ese campo es del camino automático.
func (r *SnapshotRepository) CreateValuedSnapshot(userID, note string, isAutomatic bool) (*models.HoldingsSnapshot, error) {
	price, err := services.GetBitcoinPrice()
	if err != nil {
		return nil, err
	}

	totalEur, err := r.totalHoldingsValueEur(userID, price.BTCPriceEUR)
	if err != nil {
		return nil, err
	}

	totalUsd := 0.0
	if price.USDEur > 0 {
		totalUsd = totalEur / price.USDEur
	}
	impliedBTC := services.CalculateBTCFromUSD(totalUsd, price.BTCPriceUSD)

	snapshot := &models.HoldingsSnapshot{
		UserID:       userID,
		Date:         time.Now(),
		BTCUSD:       price.BTCPriceUSD,
		DirtyDollars: totalUsd,
		DirtyEuro:    totalEur,
		BTC:          impliedBTC,
		IsAutomatic:  isAutomatic,
		Note:         note,
	}

	if err := r.CreateSnapshot(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// totalHoldingsValueEur suma el valor EUR actual de todos los portafolios
// DCA y crypto del usuario
func (r *SnapshotRepository) totalHoldingsValueEur(userID string, btcPriceEur float64) (float64, error) {
	var total float64

	dcaPortfolios, err := r.dca.GetPortfoliosWithStats(userID, btcPriceEur)
	if err != nil {
		return 0, err
	}
	for _, portfolio := range dcaPortfolios {
		if portfolio.Stats != nil {
			total += portfolio.Stats.CashFlow.TotalValueEur
		}
	}

	cryptoPortfolios, err := r.crypto.GetPortfoliosWithStats(userID)
	if err != nil {
		return 0, err
	}
	for _, portfolio := range cryptoPortfolios {
		if portfolio.Stats != nil {
			total += portfolio.Stats.TotalValueEur
		}
	}

	return utils.RoundCurrency(total), nil
}

func (r *SnapshotRepository) DeleteSnapshot(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM holdings_snapshots WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return errors.New("snapshot no encontrado")
	}

	return nil
}

// DeleteAllSnapshots borra todos los snapshots del usuario y devuelve cuántos
func (r *SnapshotRepository) DeleteAllSnapshots(userID string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM holdings_snapshots WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// GetSettings lee la configuración de automatización; si el usuario no tiene,
// crea una con los valores por defecto
func (r *SnapshotRepository) GetSettings(userID string) (*models.SnapshotSettings, error) {
	settings := &models.SnapshotSettings{}
	var lastSnapshot sql.NullTime

	query := `
		SELECT user_id, auto_snapshot_enabled, frequency, preferred_hour, last_snapshot, updated_at
		FROM snapshot_settings
		WHERE user_id = ?`

	err := r.db.QueryRow(query, userID).Scan(
		&settings.UserID,
		&settings.AutoSnapshotEnabled,
		&settings.Frequency,
		&settings.PreferredHour,
		&lastSnapshot,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		settings = &models.SnapshotSettings{
			UserID:              userID,
			AutoSnapshotEnabled: false,
			Frequency:           models.SnapshotFrequencyDaily,
			PreferredHour:       12,
			UpdatedAt:           time.Now(),
		}
		_, err = r.db.Exec(`
			INSERT INTO snapshot_settings (user_id, auto_snapshot_enabled, frequency, preferred_hour, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			settings.UserID, settings.AutoSnapshotEnabled, settings.Frequency,
			settings.PreferredHour, settings.UpdatedAt)
		return settings, err
	}
	if err != nil {
		return nil, err
	}

	if lastSnapshot.Valid {
		settings.LastSnapshot = &lastSnapshot.Time
	}

	return settings, nil
}

func (r *SnapshotRepository) UpdateSettings(settings *models.SnapshotSettings) error {
	switch settings.Frequency {
	case models.SnapshotFrequency6Hours, models.SnapshotFrequencyDaily,
		models.SnapshotFrequencyWeekly, models.SnapshotFrequencyMonthly:
	default:
		return errors.New("frecuencia inválida")
	}
	if settings.PreferredHour < 0 || settings.PreferredHour > 23 {
		return errors.New("hora preferida inválida")
	}
	settings.UpdatedAt = time.Now()

	// last_snapshot no se toca desde aquí: lo gestiona la automatización
	query := `
		INSERT INTO snapshot_settings (user_id, auto_snapshot_enabled, frequency, preferred_hour, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			auto_snapshot_enabled = excluded.auto_snapshot_enabled,
			frequency = excluded.frequency,
			preferred_hour = excluded.preferred_hour,
			updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, settings.UserID, settings.AutoSnapshotEnabled,
		settings.Frequency, settings.PreferredHour, settings.UpdatedAt)
	return err
}

func (r *SnapshotRepository) markSnapshotDone(userID string, at time.Time) error {
	_, err := r.db.Exec(`UPDATE snapshot_settings SET last_snapshot = ?, updated_at = ? WHERE user_id = ?`,
		at, at, userID)
	return err
}

// AutomationSummary es el resultado agregado de una corrida del job
type AutomationSummary struct {
	Processed int                 `json:"processed"`
	Created   int                 `json:"created"`
	Results   []models.CronResult `json:"results"`
}

// RunAutomation recorre los usuarios con automatización activada y crea los
// snapshots que correspondan. Un error con un usuario no corta la corrida.
func (r *SnapshotRepository) RunAutomation(force bool) (*AutomationSummary, error) {
	rows, err := r.db.Query(`SELECT user_id FROM snapshot_settings WHERE auto_snapshot_enabled = 1`)
	if err != nil {
		return nil, err
	}
	userIDs := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			rows.Close()
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}
	rows.Close()

	summary := &AutomationSummary{Results: []models.CronResult{}}
	now := time.Now()

	for _, userID := range userIDs {
		summary.Processed++

		settings, err := r.GetSettings(userID)
		if err != nil {
			summary.Results = append(summary.Results, models.CronResult{
				UserID: userID, Action: "error", Error: err.Error(),
			})
			continue
		}

		decision := services.ShouldCreateSnapshot(*settings, now)
		if !decision.Should && !force {
			summary.Results = append(summary.Results, models.CronResult{
				UserID: userID, Action: "skipped", Reason: decision.Reason, NextDue: decision.NextDue,
			})
			continue
		}

		snapshot, err := r.CreateValuedSnapshot(userID, "", true)
		if err != nil {
			log.Printf("Error creando snapshot automático para %s: %v", userID, err)
			summary.Results = append(summary.Results, models.CronResult{
				UserID: userID, Action: "error", Error: err.Error(),
			})
			continue
		}

		if err := r.markSnapshotDone(userID, now); err != nil {
			log.Printf("Error actualizando last_snapshot para %s: %v", userID, err)
		}

		summary.Created++
		summary.Results = append(summary.Results, models.CronResult{
			UserID: userID, Action: "created", SnapshotID: snapshot.ID, Reason: decision.Reason,
		})
	}

	return summary, nil
}

// AutomationStatus devuelve, sin crear nada, qué haría la próxima corrida
func (r *SnapshotRepository) AutomationStatus() ([]models.CronResult, error) {
	rows, err := r.db.Query(`SELECT user_id FROM snapshot_settings WHERE auto_snapshot_enabled = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	results := []models.CronResult{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}

		settings, err := r.GetSettings(userID)
		if err != nil {
			results = append(results, models.CronResult{UserID: userID, Action: "error", Error: err.Error()})
			continue
		}

		decision := services.ShouldCreateSnapshot(*settings, now)
		action := "skipped"
		if decision.Should {
			action = "created"
		}
		results = append(results, models.CronResult{
			UserID: userID, Action: action, Reason: decision.Reason, NextDue: decision.NextDue,
		})
	}

	return results, nil
}
