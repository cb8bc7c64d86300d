package engine

import "fmt"

// Default table parameters used when no configuration file is provided.
const (
	DefaultSeats         = 2
	DefaultStartingStack = 1500
	DefaultMinBet        = 50
	DefaultMaxBet        = 1500
)

// TableConfig represents a table configuration loaded from JSON
type TableConfig struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Seats         int    `json:"seats"`
	StartingStack int    `json:"starting_stack"`
	MinBet        int    `json:"min_bet"`
	MaxBet        int    `json:"max_bet"`
}

// DefaultTableConfig returns the built-in heads-up configuration
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		Name:          "Default",
		Description:   "Heads-up table with standard stacks",
		Seats:         DefaultSeats,
		StartingStack: DefaultStartingStack,
		MinBet:        DefaultMinBet,
		MaxBet:        DefaultMaxBet,
	}
}

// ValidateTableConfig checks a configuration for structural problems
func ValidateTableConfig(config *TableConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if config.Seats < MinSeats || config.Seats > MaxSeats {
		return fmt.Errorf("seats must be between %d and %d, got %d", MinSeats, MaxSeats, config.Seats)
	}
	if config.StartingStack <= 0 {
		return fmt.Errorf("starting stack must be positive, got %d", config.StartingStack)
	}
	if config.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %d", config.MinBet)
	}
	if config.MaxBet < config.MinBet {
		return fmt.Errorf("max bet %d cannot be below min bet %d", config.MaxBet, config.MinBet)
	}
	return nil
}
