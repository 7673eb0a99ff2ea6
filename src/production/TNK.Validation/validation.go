// Package validation checks ingestion payloads before any business logic runs.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	tnkmodels "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Models"
)

// ErrorKind classifies a validation failure
type ErrorKind string

const (
	MissingField  ErrorKind = "MISSING_FIELD"
	InvalidEspID  ErrorKind = "INVALID_ESP_ID"
	InvalidNumber ErrorKind = "INVALID_NUMBER"
)

// Error carries the violated rule and the offending field
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

var espIDPattern = regexp.MustCompile(`^[0-9]{8}$`)

// ValidateEspID reports whether s is a string of exactly 8 ASCII digits
func ValidateEspID(s string) bool {
	return espIDPattern.MatchString(s)
}

// requiredFields are checked in a fixed order so error messages are stable
var requiredFields = []string{"esp_id", "nivel_tanque1", "nivel_tanque2"}

// ParseReadingPayload validates a decoded JSON object and converts it into a
// ReadingInput. Presence is key-presence: a level of 0 is a valid value.
// Level values may arrive as JSON numbers or numeric strings; anything else
// fails with InvalidNumber.
func ParseReadingPayload(payload map[string]interface{}) (*tnkmodels.ReadingInput, *Error) {
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			return nil, &Error{
				Kind:    MissingField,
				Field:   field,
				Message: fmt.Sprintf("campo obrigatorio ausente: %s", field),
			}
		}
	}

	espID, ok := payload["esp_id"].(string)
	if !ok || !ValidateEspID(espID) {
		return nil, &Error{
			Kind:    InvalidEspID,
			Field:   "esp_id",
			Message: "esp_id deve conter exatamente 8 digitos",
		}
	}

	nivel1, err := toFloat(payload["nivel_tanque1"])
	if err != nil {
		return nil, &Error{
			Kind:    InvalidNumber,
			Field:   "nivel_tanque1",
			Message: "nivel_tanque1 deve ser um numero valido",
		}
	}

	nivel2, err := toFloat(payload["nivel_tanque2"])
	if err != nil {
		return nil, &Error{
			Kind:    InvalidNumber,
			Field:   "nivel_tanque2",
			Message: "nivel_tanque2 deve ser um numero valido",
		}
	}

	return &tnkmodels.ReadingInput{
		EspID:        espID,
		NivelTanque1: nivel1,
		NivelTanque2: nivel2,
	}, nil
}

// toFloat coerces a decoded JSON value into a float64
func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("value %v is not a number", value)
	}
}
