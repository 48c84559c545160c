package config

import "time"

const (
	DefaultProvider       = "gemini"
	DefaultTemperature    = 0.4
	DefaultRequestTimeout = 60 * time.Second
)

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: GetDefaultDataDir(),
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Provider:       DefaultProvider,
		Temperature:    DefaultTemperature,
		RequestTimeout: DefaultRequestTimeout.String(),
		SecurityMethod: string(SecurityPlainText),
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Idea2Grow System Configuration
# Location: ~/.config/idea2grow/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the user config, credentials and debug log are stored
data_directory = "~/.local/share/idea2grow"
`
}

func GenerateUserConfigTemplate() string {
	return `# Idea2Grow User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Completion backend: "gemini" (web-search grounding), "openai", "anthropic" or "ollama"
provider = "gemini"

# Model name (empty = backend default)
model = ""

# Override the backend API endpoint (empty = backend default)
base_url = ""

# HTTP timeout for one completion request
request_timeout = "60s"

# Low temperature keeps answers consistent and concise
temperature = 0.4

# Replace the built-in Idea2Grow persona (optional)
system_instruction = ""

# How API keys are stored: "plaintext" (credentials.toml) or "ssh_key" (credentials.enc)
security_method = "plaintext"

# SSH private key used when security_method = "ssh_key"
ssh_key_path = ""
`
}
