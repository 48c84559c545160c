package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// SecurityMethod defines the credential storage method
type SecurityMethod string

const (
	SecurityPlainText SecurityMethod = "plaintext"
	SecuritySSHKey    SecurityMethod = "ssh_key"
)

// CredentialStore holds one API key per provider, stored in plain text or
// encrypted with an SSH key.
type CredentialStore struct {
	method      SecurityMethod
	credentials map[string]string // providerID → API key
	sshKeyPath  string            // ssh_key method only
	passphrase  string            // Optional passphrase for encrypted keys
	encManager  *EncryptionManager
	getenv      func(string) string
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(method SecurityMethod, sshKeyPath string) *CredentialStore {
	return &CredentialStore{
		method:      method,
		credentials: make(map[string]string),
		sshKeyPath:  sshKeyPath,
		getenv:      os.Getenv,
	}
}

// SetPassphrase sets the passphrase for decrypting the SSH key
func (c *CredentialStore) SetPassphrase(passphrase string) {
	c.passphrase = passphrase
	if c.encManager != nil {
		c.encManager.SetPassphrase(passphrase)
	}
}

// Load loads credentials from disk based on the configured security method
func (c *CredentialStore) Load(dataDir string) error {
	var (
		creds map[string]string
		err   error
	)
	switch c.method {
	case SecurityPlainText:
		creds, err = loadPlainText(dataDir)
	case SecuritySSHKey:
		creds, err = c.loadSSHEncrypted(dataDir)
	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
	if err != nil {
		return err
	}
	if creds == nil {
		creds = make(map[string]string)
	}
	c.credentials = creds
	return nil
}

// Save saves credentials to disk based on the configured security method
func (c *CredentialStore) Save(dataDir string) error {
	switch c.method {
	case SecurityPlainText:
		return savePlainText(dataDir, c.credentials)
	case SecuritySSHKey:
		return c.saveSSHEncrypted(dataDir)
	default:
		return fmt.Errorf("unknown security method: %s", c.method)
	}
}

// EnvVarName returns the environment variable that overrides the stored key
// for a provider, e.g. GEMINI_API_KEY.
func EnvVarName(providerID string) string {
	return strings.ToUpper(providerID) + "_API_KEY"
}

// APIKey resolves the credential for a provider. The provider's environment
// variable wins over the stored value. Returns "" when neither is set.
func (c *CredentialStore) APIKey(providerID string) string {
	if c.getenv != nil {
		if key := strings.TrimSpace(c.getenv(EnvVarName(providerID))); key != "" {
			return key
		}
	}
	return c.credentials[providerID]
}

// Get retrieves the stored credential for a provider, ignoring the environment.
func (c *CredentialStore) Get(providerID string) string {
	return c.credentials[providerID]
}

// Set stores a credential for a provider
func (c *CredentialStore) Set(providerID string, apiKey string) error {
	if providerID == "" {
		return fmt.Errorf("provider ID is required")
	}
	c.credentials[providerID] = strings.TrimSpace(apiKey)
	return nil
}

// Delete removes a credential for a provider
func (c *CredentialStore) Delete(providerID string) error {
	delete(c.credentials, providerID)
	return nil
}

// GetMethod returns the current security method
func (c *CredentialStore) GetMethod() SecurityMethod {
	return c.method
}

func credentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.toml")
}

func encryptedCredentialsPath(dataDir string) string {
	return filepath.Join(dataDir, "credentials.enc")
}

type credentialsFile struct {
	Credentials map[string]string `toml:"credentials"`
}

// ===== Plain Text Storage =====

func loadPlainText(dataDir string) (map[string]string, error) {
	path := credentialsPath(dataDir)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	var cf credentialsFile
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}

	return cf.Credentials, nil
}

// savePlainText writes credentials.toml with 0600 permissions
func savePlainText(dataDir string, creds map[string]string) error {
	if err := EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(credentialsPath(dataDir), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create credentials file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(credentialsFile{Credentials: creds}); err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	return nil
}

// ===== SSH Key Encrypted Storage =====

func (c *CredentialStore) ensureEncryption() error {
	// Reinitialize if manager doesn't exist OR if we now have a passphrase
	if c.encManager != nil && c.passphrase == "" {
		return nil
	}
	c.encManager = NewEncryptionManager(EncryptionSSHKey, c.sshKeyPath)
	c.encManager.SetPassphrase(c.passphrase)
	if err := c.encManager.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize encryption: %w", err)
	}
	return nil
}

func (c *CredentialStore) loadSSHEncrypted(dataDir string) (map[string]string, error) {
	path := encryptedCredentialsPath(dataDir)
	if !FileExists(path) {
		return make(map[string]string), nil
	}

	if err := c.ensureEncryption(); err != nil {
		return nil, err
	}

	encryptedData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted credentials: %w", err)
	}

	decryptedData, err := c.encManager.Decrypt(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt credentials: %w", err)
	}

	var creds map[string]string
	if err := json.Unmarshal(decryptedData, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted credentials: %w", err)
	}

	return creds, nil
}

func (c *CredentialStore) saveSSHEncrypted(dataDir string) error {
	if err := c.ensureEncryption(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(c.credentials)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	encryptedData, err := c.encManager.Encrypt(jsonData)
	if err != nil {
		return fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	if err := EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.WriteFile(encryptedCredentialsPath(dataDir), encryptedData, 0600); err != nil {
		return fmt.Errorf("failed to write encrypted credentials: %w", err)
	}

	return nil
}
