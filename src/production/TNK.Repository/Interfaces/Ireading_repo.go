package interfaces

import (
	"context"
	"time"

	tnkmodels "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Models"
)

// RetentionWindow is the trailing period used to filter query results
const RetentionWindow = 24 * time.Hour

type ReadingRepository interface {
	// CreateReading persists a single validated reading and returns the
	// stored row with its server-assigned id and timestamp
	CreateReading(ctx context.Context, input tnkmodels.ReadingInput) (*tnkmodels.Reading, error)

	// GetRecentReadings returns all readings for espID whose timestamp falls
	// within the trailing window, most recent first
	GetRecentReadings(ctx context.Context, espID string, window time.Duration) ([]tnkmodels.Reading, error)
}
