package tnkmodels

import (
	"time"
)

// Reading is one persisted tank-level measurement reported by an ESP device.
// ID and DataHora are assigned by the server at insert time.
type Reading struct {
	ID           int64     `json:"id"`
	EspID        string    `json:"esp_id"`
	NivelTanque1 float64   `json:"nivel_tanque1"`
	NivelTanque2 float64   `json:"nivel_tanque2"`
	DataHora     time.Time `json:"data_hora"`
}

// ReadingInput is a validated ingestion payload, ready to be persisted.
type ReadingInput struct {
	EspID        string  `json:"esp_id"`
	NivelTanque1 float64 `json:"nivel_tanque1"`
	NivelTanque2 float64 `json:"nivel_tanque2"`
}
