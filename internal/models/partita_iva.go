package models

import "time"

// PartitaIVAConfig son los porcentajes fiscales por año (régimen forfettario)
type PartitaIVAConfig struct {
	ID                    string  `json:"id"`
	UserID                string  `json:"user_id"`
	Anno                  int     `json:"anno"`
	PercentualeImponibile float64 `json:"percentuale_imponibile"`
	PercentualeImposta    float64 `json:"percentuale_imposta"`
	PercentualeContributi float64 `json:"percentuale_contributi"`
}

// PartitaIVAIncome es una entrada facturada; los importes fiscales se derivan
// con la config vigente al momento de crearla y quedan congelados
type PartitaIVAIncome struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	ConfigID      string    `json:"config_id"`
	AccountID     string    `json:"account_id,omitempty"`
	DataIncasso   time.Time `json:"data_incasso"`
	DataEmissione time.Time `json:"data_emissione"`
	Riferimento   string    `json:"riferimento"`
	Entrata       float64   `json:"entrata"`
	Imponibile    float64   `json:"imponibile"`
	Imposta       float64   `json:"imposta"`
	Contributi    float64   `json:"contributi"`
	TotaleTasse   float64   `json:"totale_tasse"`
	CreatedAt     time.Time `json:"created_at"`
}

// PartitaIVATaxPayment es un pago de impuestos o contribuciones realizado
type PartitaIVATaxPayment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Data            time.Time `json:"data"`
	Descrizione     string    `json:"descrizione,omitempty"`
	Importo         float64   `json:"importo" binding:"required,gt=0"`
	Tipo            string    `json:"tipo,omitempty"`
	AnnoRiferimento int       `json:"anno_riferimento"`
	CreatedAt       time.Time `json:"created_at"`
}

// PartitaIVAStats son las estadísticas fiscales de un año
type PartitaIVAStats struct {
	Anno              int     `json:"anno"`
	TotaleEntrate     float64 `json:"totale_entrate"`
	TotaleTasseDovute float64 `json:"totale_tasse_dovute"`
	TotaleTassePagate float64 `json:"totale_tasse_pagate"`
	SaldoTasse        float64 `json:"saldo_tasse"`
	NumeroFatture     int     `json:"numero_fatture"`
	NumeroPagamenti   int     `json:"numero_pagamenti"`
	PercentualeTasse  float64 `json:"percentuale_tasse"`
}
