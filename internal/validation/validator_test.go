package validation

import (
	"testing"

	"classics-study/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestValidateSessionID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSessionID(util.NewULID()))

	tests := []struct {
		name  string
		id    string
		field string
	}{
		{"empty", "", "id"},
		{"blank", "   ", "id"},
		{"too short", "01ARZ3NDEK", "id"},
		{"timestamp overflow", "81ARZ3NDEKTSV4RRFFQ69G5FAV", "id"},
		{"excluded letter", "01ARZ3NDEKTSV4RRFFQ69G5FAU", "id"},
		{"invalid character", "01ARZ3NDEKTSV4RRFFQ69G5FAU!", "id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateSessionID(tt.id)
			if assert.Len(t, errs, 1) {
				assert.Equal(t, tt.field, errs[0].Field)
			}
		})
	}
}

func TestParseTextID(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		raw       string
		allowZero bool
		want      int
		wantErr   bool
	}{
		{"valid", "3", false, 3, false},
		{"zero allowed", "0", true, 0, false},
		{"zero rejected", "0", false, 0, true},
		{"negative", "-1", true, 0, true},
		{"too large", "10001", true, 0, true},
		{"not a number", "abc", true, 0, true},
		{"empty", "", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := v.ParseTextID("text_id", tt.raw, tt.allowZero)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
				assert.Equal(t, "text_id", errs[0].Field)
				return
			}
			assert.Empty(t, errs)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLimit(t *testing.T) {
	v := NewValidator()

	got, errs := v.ParseLimit("")
	assert.Empty(t, errs)
	assert.Equal(t, 0, got)

	got, errs = v.ParseLimit("25")
	assert.Empty(t, errs)
	assert.Equal(t, 25, got)

	for _, raw := range []string{"0", "101", "ten", "-5"} {
		_, errs := v.ParseLimit(raw)
		assert.NotEmpty(t, errs, raw)
	}
}
