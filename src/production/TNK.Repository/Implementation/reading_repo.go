package implementation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	tnkmodels "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Models"
)

type PostgresReadingRepository struct {
	db *sql.DB
}

func NewPostgresReadingRepository(db *sql.DB) *PostgresReadingRepository {
	return &PostgresReadingRepository{db: db}
}

func (r *PostgresReadingRepository) CreateReading(ctx context.Context, input tnkmodels.ReadingInput) (*tnkmodels.Reading, error) {
	query := `
		INSERT INTO leituras (esp_id, nivel_tanque1, nivel_tanque2, data_hora)
		VALUES ($1, $2, $3, now())
		RETURNING id, data_hora
	`

	reading := tnkmodels.Reading{
		EspID:        input.EspID,
		NivelTanque1: input.NivelTanque1,
		NivelTanque2: input.NivelTanque2,
	}

	err := r.db.QueryRowContext(ctx, query, input.EspID, input.NivelTanque1, input.NivelTanque2).
		Scan(&reading.ID, &reading.DataHora)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reading: %w", err)
	}

	return &reading, nil
}

func (r *PostgresReadingRepository) GetRecentReadings(ctx context.Context, espID string, window time.Duration) ([]tnkmodels.Reading, error) {
	query := `
		SELECT id, esp_id, nivel_tanque1, nivel_tanque2, data_hora
		FROM leituras
		WHERE esp_id = $1 AND data_hora > $2
		ORDER BY data_hora DESC
	`

	cutoff := time.Now().UTC().Add(-window)

	rows, err := r.db.QueryContext(ctx, query, espID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	readings := make([]tnkmodels.Reading, 0)
	for rows.Next() {
		var reading tnkmodels.Reading
		if err := rows.Scan(&reading.ID, &reading.EspID, &reading.NivelTanque1, &reading.NivelTanque2, &reading.DataHora); err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}

	return readings, rows.Err()
}
