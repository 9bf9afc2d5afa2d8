package models

import "time"

// Frecuencias soportadas para snapshots automáticos
const (
	SnapshotFrequency6Hours  = "6hours"
	SnapshotFrequencyDaily   = "daily"
	SnapshotFrequencyWeekly  = "weekly"
	SnapshotFrequencyMonthly = "monthly"
)

// HoldingsSnapshot es una foto inmutable del valor total de las tenencias
type HoldingsSnapshot struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	BTCUSD       float64   `json:"btc_usd"`
	DirtyDollars float64   `json:"dirty_dollars"`
	DirtyEuro    float64   `json:"dirty_euro"`
	BTC          float64   `json:"btc"`
	IsAutomatic  bool      `json:"is_automatic"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SnapshotSettings configura la automatización de snapshots por usuario.
// LastSnapshot solo lo actualiza el camino automático.
type SnapshotSettings struct {
	UserID              string     `json:"user_id"`
	AutoSnapshotEnabled bool       `json:"auto_snapshot_enabled"`
	Frequency           string     `json:"frequency"`
	PreferredHour       int        `json:"preferred_hour"`
	LastSnapshot        *time.Time `json:"last_snapshot"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// CronResult es el resultado por usuario del job de snapshots automáticos
type CronResult struct {
	UserID     string `json:"user_id"`
	Action     string `json:"action"` // created | skipped | error
	SnapshotID string `json:"snapshot_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
	NextDue    string `json:"next_due,omitempty"`
	Error      string `json:"error,omitempty"`
}
