// Package config provides table configuration management for the
// card-table server.
//
// The config package handles:
//   - Loading table configurations from JSON files
//   - Configuration validation and caching
//   - Built-in default management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Table configurations are stored as JSON files in the configs directory.
// Each configuration defines the seat count, the starting chip stack, and
// the betting bounds:
//
//	{
//	  "name": "Heads Up",
//	  "description": "Two seats, standard stacks",
//	  "seats": 2,
//	  "starting_stack": 1500,
//	  "min_bet": 50,
//	  "max_bet": 1500
//	}
//
// Defaults:
//
// A default.json in the configs directory overrides the built-in default.
// When the directory or file is missing the manager still works, serving
// the compiled-in heads-up configuration, so the server never fails to
// start for lack of config files.
//
// Usage:
//
//	manager := config.NewManager("configs")
//
//	tableConfig, err := manager.LoadConfig("deep_stack")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	infos, err := manager.ListConfigs()
package config
