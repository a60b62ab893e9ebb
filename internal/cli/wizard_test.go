package cli

import (
	"testing"

	"github.com/alexanderramin/okrtree/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateProgress(t *testing.T) {
	assert.NoError(t, validateProgress(""))
	assert.NoError(t, validateProgress("0"))
	assert.NoError(t, validateProgress("100"))
	// Out-of-range numbers pass; they are clamped at parse time.
	assert.NoError(t, validateProgress("101"))
	assert.NoError(t, validateProgress("-1"))
	assert.Error(t, validateProgress("half"))
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback int
		want     int
	}{
		{"empty uses fallback", "", 40, 40},
		{"plain value", "55", 0, 55},
		{"over 100 clamps", "150", 0, 100},
		{"negative clamps", "-10", 50, 0},
		{"garbage uses fallback", "half", 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseProgress(tt.input, tt.fallback))
		})
	}
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, validateDate("2026-03-01"))
	assert.Error(t, validateDate(""))
	assert.Error(t, validateDate("03/01/2026"))
}

func TestChildLevel(t *testing.T) {
	assert.Equal(t, domain.LevelDepartment, childLevel(domain.LevelCompany))
	assert.Equal(t, domain.LevelTeams, childLevel(domain.LevelDepartment))
	assert.Equal(t, domain.LevelIndividuals, childLevel(domain.LevelTeams))
	assert.Equal(t, domain.LevelIndividuals, childLevel(domain.LevelIndividuals))
}
