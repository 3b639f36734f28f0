package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/roguebingo/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultRulesAreValid(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())
	assert.Equal(t, 5, rules.BoardSize)
	assert.Equal(t, 75, rules.MaxNumber)
	assert.Equal(t, 20, rules.InitialTurns)
	assert.Equal(t, 5, rules.PerkInterval)
	assert.Equal(t, 14, rules.MaxLogEntries)
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "rules.yaml", "initial_turns: 30\nperk_interval: 4\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 30, rules.InitialTurns)
	assert.Equal(t, 4, rules.PerkInterval)
	assert.Equal(t, 5, rules.BoardSize)
	assert.Equal(t, 15, rules.RangeStep)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRulesRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "rules.yaml", "board_size: [oops\n")
	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestLoadRulesRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "rules.yaml", "board_size: 20\n")
	_, err := LoadRules(path)
	assert.ErrorIs(t, err, model.ErrInvalidRules)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rules)
	}{
		{"board below min", func(r *Rules) { r.BoardSize = 2 }},
		{"max below min", func(r *Rules) { r.MaxBoardSize = 2 }},
		{"range too small", func(r *Rules) { r.MaxNumber = 20 }},
		{"zero min number", func(r *Rules) { r.MinNumber = 0 }},
		{"no turns", func(r *Rules) { r.InitialTurns = 0 }},
		{"no perk interval", func(r *Rules) { r.PerkInterval = 0 }},
		{"no offer", func(r *Rules) { r.PerkOfferSize = 0 }},
		{"negative step", func(r *Rules) { r.RangeStep = -1 }},
		{"no log", func(r *Rules) { r.MaxLogEntries = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			assert.ErrorIs(t, rules.Validate(), model.ErrInvalidRules)
		})
	}
}
