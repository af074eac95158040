package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig is the application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Engine EngineConfig `toml:"engine"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig data directory settings.
type DataConfig struct {
	DataDir string `toml:"data_dir"`
	// DocumentsDir is the root holding one external document folder per artisan.
	DocumentsDir string `toml:"documents_dir"`
}

// EngineConfig holds the mapping engine tunables. The margin bounds and the
// amount ceiling are empirically tuned against the source dataset; they are
// configuration on purpose, not literals.
type EngineConfig struct {
	// MaxAmount is the persistence layer's numeric(12,2) ceiling. Parsed
	// amounts beyond it are clamped, not rejected.
	MaxAmount float64 `toml:"max_amount"`
	// MarginPctMin/Max bound the plausible margin as a percentage of the
	// intervention amount. A margin outside the bounds is discarded.
	MarginPctMin float64 `toml:"margin_pct_min"`
	MarginPctMax float64 `toml:"margin_pct_max"`
	// MatcherMinIntervalMs is the fixed spacing between external matcher lookups.
	MatcherMinIntervalMs int `toml:"matcher_min_interval_ms"`
	// MatcherRetries is the number of automatic retries after a network-class
	// error during folder reconciliation.
	MatcherRetries int `toml:"matcher_retries"`
}

// LoadConfigInfo carries load metadata for flag-override decisions.
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20614,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:      "data",
			DocumentsDir: "",
		},
		Engine: EngineConfig{
			MaxAmount:            9_999_999_999.99,
			MarginPctMin:         -200,
			MarginPctMax:         200,
			MatcherMinIntervalMs: 150,
			MatcherRetries:       1,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo loads config.toml from the executable directory,
// returning load metadata alongside the config.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	if v := os.Getenv("ATELIER_DOCUMENTS_DIR"); v != "" {
		config.Data.DocumentsDir = v
	}

	return config, info, nil
}

// LoadConfig loads config.toml from the executable directory.
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig writes the configuration back to config.toml.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory next to the executable if needed.
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
