package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type UserConfig struct {
	Provider          string  `toml:"provider"`
	Model             string  `toml:"model,omitempty"`
	BaseURL           string  `toml:"base_url,omitempty"`
	RequestTimeout    string  `toml:"request_timeout,omitempty"`
	Temperature       float64 `toml:"temperature"`
	SystemInstruction string  `toml:"system_instruction,omitempty"`
	SecurityMethod    string  `toml:"security_method"`
	SSHKeyPath        string  `toml:"ssh_key_path,omitempty"`
}

type Config struct {
	DataDirectory  string
	Provider       string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
	Temperature    float64
	Prompts        PromptConfig
	Debug          bool

	CredentialStore *CredentialStore
	Keybindings     *KeyBindingsConfig
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyUserConfig(u *UserConfig) error {
	if u.Provider != "" {
		c.Provider = u.Provider
	}
	c.Model = u.Model
	c.BaseURL = u.BaseURL
	if u.Temperature > 0 {
		c.Temperature = u.Temperature
	}
	if u.RequestTimeout != "" {
		d, err := time.ParseDuration(u.RequestTimeout)
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", u.RequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	if strings.TrimSpace(u.SystemInstruction) != "" {
		c.Prompts.SystemInstruction = u.SystemInstruction
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dataDir := os.Getenv("IDEA2GROW_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if provider := os.Getenv("IDEA2GROW_PROVIDER"); provider != "" {
		c.Provider = provider
	}
	if model := os.Getenv("IDEA2GROW_MODEL"); model != "" {
		c.Model = model
	}
	if CheckDebug() {
		c.Debug = true
	}
}

// CheckDebug reports whether IDEA2GROW_DEBUG asks for debug logging.
func CheckDebug() bool {
	debug, err := strconv.ParseBool(os.Getenv("IDEA2GROW_DEBUG"))
	return err == nil && debug
}

// Load reads settings.toml, the user config.toml and the credential store,
// creating commented defaults on first run. Environment variables win over
// both files.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:  GetDefaultDataDir(),
		Provider:       DefaultProvider,
		RequestTimeout: DefaultRequestTimeout,
		Temperature:    DefaultTemperature,
		Prompts:        DefaultPromptConfig(),
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	// The data directory can be overridden before the user config is read.
	if dataDir := os.Getenv("IDEA2GROW_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if err := cfg.applyUserConfig(userCfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	method := SecurityMethod(userCfg.SecurityMethod)
	if method == "" {
		method = SecurityPlainText
	}
	store := NewCredentialStore(method, ExpandPath(userCfg.SSHKeyPath))
	store.SetPassphrase(os.Getenv("IDEA2GROW_SSH_PASSPHRASE"))
	if err := store.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	cfg.CredentialStore = store

	kb, err := LoadKeybindings(dataDir)
	if err != nil {
		return nil, err
	}
	cfg.Keybindings = kb

	return cfg, nil
}
