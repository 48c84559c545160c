package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"
)

// LoadSSHPrivateKey loads an unencrypted SSH private key.
func LoadSSHPrivateKey(keyPath string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(keyData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key: %w", err)
	}

	return signer, nil
}

// IsSSHKeyEncrypted checks if an SSH private key is encrypted without attempting to decrypt it
func IsSSHKeyEncrypted(keyPath string) (bool, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return false, fmt.Errorf("failed to read SSH key: %w", err)
	}

	_, err = ssh.ParsePrivateKey(keyData)
	if err == nil {
		return false, nil
	}

	var missing *ssh.PassphraseMissingError
	if errors.As(err, &missing) {
		return true, nil
	}

	return false, fmt.Errorf("invalid SSH key: %w", err)
}

// LoadSSHPrivateKeyWithPassphrase loads an encrypted SSH private key using the provided passphrase
func LoadSSHPrivateKeyWithPassphrase(keyPath string, passphrase string) (ssh.Signer, error) {
	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read SSH key: %w", err)
	}

	signer, err := ssh.ParsePrivateKeyWithPassphrase(keyData, []byte(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH key (wrong passphrase?): %w", err)
	}

	return signer, nil
}
