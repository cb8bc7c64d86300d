// Command validate provides a small CLI that validates table configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Seat count within the supported table range
//   - Stack and bet constraints (positive stack, positive min_bet,
//     max_bet >= min_bet)
//   - Playability: the starting stack covers at least one minimum bet
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	minSeats = 2
	maxSeats = 9
)

// Config mirrors the JSON schema for a table configuration.
type Config struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Seats         int    `json:"seats"`
	StartingStack int    `json:"starting_stack"`
	MinBet        int    `json:"min_bet"`
	MaxBet        int    `json:"max_bet"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if config.Seats < minSeats || config.Seats > maxSeats {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("seats must be between %d and %d, got %d", minSeats, maxSeats, config.Seats))
	}

	if config.StartingStack <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_stack must be positive, got %d", config.StartingStack))
	}

	if config.MinBet <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("min_bet must be positive, got %d", config.MinBet))
	}

	if config.MaxBet < config.MinBet {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_bet (%d) cannot be below min_bet (%d)", config.MaxBet, config.MinBet))
	}

	// A table where nobody can afford the minimum bet stalls on the first
	// action, so flag it even though the engine would clamp to all-in.
	if config.StartingStack > 0 && config.MinBet > 0 && config.StartingStack < config.MinBet {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_stack (%d) is below min_bet (%d)", config.StartingStack, config.MinBet))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Seats: %d", config.Seats))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting stack: %d", config.StartingStack))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Bets: %d-%d", config.MinBet, config.MaxBet))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
