package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/roguebingo/internal/model"
)

// Rules holds the tunable constants of a run
type Rules struct {
	BoardSize        int `yaml:"board_size"`
	MinBoardSize     int `yaml:"min_board_size"`
	MaxBoardSize     int `yaml:"max_board_size"`
	MinNumber        int `yaml:"min_number"`
	MaxNumber        int `yaml:"max_number"`
	RangeStep        int `yaml:"range_step"` // ceiling growth per resize, applied even when the size is clamped
	InitialTurns     int `yaml:"initial_turns"`
	PerkInterval     int `yaml:"perk_interval"`
	PerkOfferSize    int `yaml:"perk_offer_size"`
	TurnBonusPerLine int `yaml:"turn_bonus_per_line"`
	MaxLogEntries    int `yaml:"max_log_entries"`
}

// DefaultRules returns the standard rule set
func DefaultRules() Rules {
	return Rules{
		BoardSize:        5,
		MinBoardSize:     3,
		MaxBoardSize:     12,
		MinNumber:        1,
		MaxNumber:        75,
		RangeStep:        15,
		InitialTurns:     20,
		PerkInterval:     5,
		PerkOfferSize:    3,
		TurnBonusPerLine: 2,
		MaxLogEntries:    14,
	}
}

// LoadRules reads a YAML rules file. Keys missing from the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate checks that the rules describe a playable run
func (r Rules) Validate() error {
	switch {
	case r.MinBoardSize < 1:
		return fmt.Errorf("%w: min_board_size must be at least 1", model.ErrInvalidRules)
	case r.MaxBoardSize < r.MinBoardSize:
		return fmt.Errorf("%w: max_board_size must be >= min_board_size", model.ErrInvalidRules)
	case r.BoardSize < r.MinBoardSize || r.BoardSize > r.MaxBoardSize:
		return fmt.Errorf("%w: board_size must be within [%d, %d]", model.ErrInvalidRules, r.MinBoardSize, r.MaxBoardSize)
	case r.MinNumber < 1:
		return fmt.Errorf("%w: min_number must be positive", model.ErrInvalidRules)
	case r.MaxNumber-r.MinNumber+1 < r.BoardSize*r.BoardSize:
		return fmt.Errorf("%w: number range too small for a %dx%d board", model.ErrInvalidRules, r.BoardSize, r.BoardSize)
	case r.RangeStep < 0:
		return fmt.Errorf("%w: range_step must not be negative", model.ErrInvalidRules)
	case r.InitialTurns < 1:
		return fmt.Errorf("%w: initial_turns must be positive", model.ErrInvalidRules)
	case r.PerkInterval < 1:
		return fmt.Errorf("%w: perk_interval must be positive", model.ErrInvalidRules)
	case r.PerkOfferSize < 1:
		return fmt.Errorf("%w: perk_offer_size must be positive", model.ErrInvalidRules)
	case r.TurnBonusPerLine < 0:
		return fmt.Errorf("%w: turn_bonus_per_line must not be negative", model.ErrInvalidRules)
	case r.MaxLogEntries < 1:
		return fmt.Errorf("%w: max_log_entries must be positive", model.ErrInvalidRules)
	}
	return nil
}
