package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ph4n70mr1ddl3r/turnbasedgame/game/engine"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Info describes one available table configuration
type Info struct {
	Filename      string `json:"filename"`
	ConfigID      string `json:"config_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Seats         int    `json:"seats"`
	StartingStack int    `json:"starting_stack"`
}

// Manager handles table configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.TableConfig
	configs       map[string]*engine.TableConfig
	mu            sync.RWMutex
}

// NewManager creates a configuration manager over a directory of JSON
// table configs. A missing directory is not an error: the manager then
// serves only the built-in default.
func NewManager(configDir string) *Manager {
	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.TableConfig),
	}
	m.loadDefaultConfig()
	return m
}

// LoadConfig loads a configuration by name. The names "" and "default"
// resolve to the default configuration.
func (m *Manager) LoadConfig(name string) (*engine.TableConfig, error) {
	if name == "" || name == "default" {
		return m.GetDefault(), nil
	}

	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	config, err := m.readConfigFile(name)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// ListConfigs returns information about all available configurations.
// The built-in default is always listed first.
func (m *Manager) ListConfigs() ([]*Info, error) {
	configs := []*Info{infoFor("", "default", m.GetDefault())}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return configs, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, infoFor(entry.Name(), name, config))
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.TableConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	m.configs = make(map[string]*engine.TableConfig)
	m.mu.Unlock()
	m.loadDefaultConfig()
}

// loadDefaultConfig prefers a default.json in the config directory and
// falls back to the built-in defaults.
func (m *Manager) loadDefaultConfig() {
	config, err := m.readConfigFile("default")
	if err != nil {
		config = engine.DefaultTableConfig()
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
}

func (m *Manager) readConfigFile(name string) (*engine.TableConfig, error) {
	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.TableConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := engine.ValidateTableConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

func infoFor(filename, id string, config *engine.TableConfig) *Info {
	return &Info{
		Filename:      filename,
		ConfigID:      id,
		Name:          config.Name,
		Description:   config.Description,
		Seats:         config.Seats,
		StartingStack: config.StartingStack,
	}
}
