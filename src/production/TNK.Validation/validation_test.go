package validation

import (
	"testing"
)

func TestValidateEspID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"eight digits", "12345678", true},
		{"all zeros", "00000000", true},
		{"seven digits", "1234567", false},
		{"nine digits", "123456789", false},
		{"empty", "", false},
		{"letters", "abcdefgh", false},
		{"trailing letter", "1234567a", false},
		{"embedded space", "1234 678", false},
		{"leading space", " 12345678", false},
		{"arabic-indic digits", "١٢٣٤٥٦٧٨", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEspID(tt.input); got != tt.want {
				t.Errorf("ValidateEspID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"esp_id":        "12345678",
		"nivel_tanque1": 42.5,
		"nivel_tanque2": 17.0,
	}
}

func TestParseReadingPayloadValid(t *testing.T) {
	input, verr := ParseReadingPayload(validPayload())
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if input.EspID != "12345678" {
		t.Errorf("EspID = %q, want %q", input.EspID, "12345678")
	}
	if input.NivelTanque1 != 42.5 || input.NivelTanque2 != 17.0 {
		t.Errorf("levels = %v, %v, want 42.5, 17.0", input.NivelTanque1, input.NivelTanque2)
	}
}

func TestParseReadingPayloadZeroLevelIsValid(t *testing.T) {
	payload := validPayload()
	payload["nivel_tanque1"] = 0.0

	input, verr := ParseReadingPayload(payload)
	if verr != nil {
		t.Fatalf("a level of 0 must be accepted, got error: %v", verr)
	}
	if input.NivelTanque1 != 0 {
		t.Errorf("NivelTanque1 = %v, want 0", input.NivelTanque1)
	}
}

func TestParseReadingPayloadCoercesNumericStrings(t *testing.T) {
	payload := validPayload()
	payload["nivel_tanque2"] = "88.25"

	input, verr := ParseReadingPayload(payload)
	if verr != nil {
		t.Fatalf("numeric string must be coerced, got error: %v", verr)
	}
	if input.NivelTanque2 != 88.25 {
		t.Errorf("NivelTanque2 = %v, want 88.25", input.NivelTanque2)
	}
}

func TestParseReadingPayloadMissingFields(t *testing.T) {
	for _, field := range []string{"esp_id", "nivel_tanque1", "nivel_tanque2"} {
		t.Run(field, func(t *testing.T) {
			payload := validPayload()
			delete(payload, field)

			_, verr := ParseReadingPayload(payload)
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			if verr.Kind != MissingField {
				t.Errorf("Kind = %v, want %v", verr.Kind, MissingField)
			}
			if verr.Field != field {
				t.Errorf("Field = %q, want %q", verr.Field, field)
			}
		})
	}
}

func TestParseReadingPayloadInvalidEspID(t *testing.T) {
	tests := []struct {
		name  string
		espID interface{}
	}{
		{"seven digits", "1234567"},
		{"nine digits", "123456789"},
		{"letters", "abcd1234"},
		{"json number", 12345678.0},
		{"null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload["esp_id"] = tt.espID

			_, verr := ParseReadingPayload(payload)
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			if verr.Kind != InvalidEspID {
				t.Errorf("Kind = %v, want %v", verr.Kind, InvalidEspID)
			}
		})
	}
}

func TestParseReadingPayloadInvalidNumber(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
	}{
		{"word", "cheio"},
		{"bool", true},
		{"null", nil},
		{"object", map[string]interface{}{"v": 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload["nivel_tanque1"] = tt.value

			_, verr := ParseReadingPayload(payload)
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			if verr.Kind != InvalidNumber {
				t.Errorf("Kind = %v, want %v", verr.Kind, InvalidNumber)
			}
			if verr.Field != "nivel_tanque1" {
				t.Errorf("Field = %q, want %q", verr.Field, "nivel_tanque1")
			}
		})
	}
}
