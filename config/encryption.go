package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/ssh"
)

// EncryptionMethod defines how data is encrypted
type EncryptionMethod string

const (
	EncryptionNone   EncryptionMethod = "none"
	EncryptionSSHKey EncryptionMethod = "ssh_key"
)

// keyDerivationMessage is signed to derive the AES key. Changing it makes
// existing credentials.enc files unreadable.
const keyDerivationMessage = "idea2grow-credential-key-v1"

// EncryptionManager seals the credential file with an AES-256-GCM key derived
// from an SSH private key.
type EncryptionManager struct {
	method     EncryptionMethod
	sshKeyPath string
	passphrase string
	aesKey     []byte
}

// NewEncryptionManager creates a new encryption manager
func NewEncryptionManager(method EncryptionMethod, sshKeyPath string) *EncryptionManager {
	return &EncryptionManager{
		method:     method,
		sshKeyPath: sshKeyPath,
	}
}

// SetPassphrase sets the passphrase for decrypting the SSH key
func (e *EncryptionManager) SetPassphrase(passphrase string) {
	e.passphrase = passphrase
}

// Initialize loads the SSH key and derives the AES key.
func (e *EncryptionManager) Initialize() error {
	switch e.method {
	case EncryptionNone:
		return nil

	case EncryptionSSHKey:
		if e.sshKeyPath == "" {
			return fmt.Errorf("ssh_key_path is required for ssh_key security")
		}

		encrypted, err := IsSSHKeyEncrypted(e.sshKeyPath)
		if err != nil {
			return fmt.Errorf("failed to check SSH key: %w", err)
		}
		if encrypted && e.passphrase == "" {
			return fmt.Errorf("SSH key is encrypted - passphrase required")
		}

		var signer ssh.Signer
		if encrypted {
			signer, err = LoadSSHPrivateKeyWithPassphrase(e.sshKeyPath, e.passphrase)
		} else {
			signer, err = LoadSSHPrivateKey(e.sshKeyPath)
		}
		if err != nil {
			return fmt.Errorf("failed to load SSH key: %w", err)
		}

		aesKey, err := DeriveAESKeyFromSSH(signer)
		if err != nil {
			return fmt.Errorf("failed to derive encryption key: %w", err)
		}
		e.aesKey = aesKey

		Log.Debug().Str("key", e.sshKeyPath).Bool("encrypted_key", encrypted).Msg("credential encryption initialized")
		return nil

	default:
		return fmt.Errorf("unknown encryption method: %s", e.method)
	}
}

// Encrypt returns plaintext unchanged for EncryptionNone.
func (e *EncryptionManager) Encrypt(plaintext []byte) ([]byte, error) {
	switch e.method {
	case EncryptionNone:
		return plaintext, nil
	case EncryptionSSHKey:
		if e.aesKey == nil {
			return nil, fmt.Errorf("encryption manager not initialized")
		}
		return encryptAESGCM(plaintext, e.aesKey)
	default:
		return nil, fmt.Errorf("unknown encryption method: %s", e.method)
	}
}

// Decrypt returns ciphertext unchanged for EncryptionNone.
func (e *EncryptionManager) Decrypt(ciphertext []byte) ([]byte, error) {
	switch e.method {
	case EncryptionNone:
		return ciphertext, nil
	case EncryptionSSHKey:
		if e.aesKey == nil {
			return nil, fmt.Errorf("encryption manager not initialized")
		}
		return decryptAESGCM(ciphertext, e.aesKey)
	default:
		return nil, fmt.Errorf("unknown encryption method: %s", e.method)
	}
}

// Format: [nonce (12 bytes)][ciphertext + tag]
func encryptAESGCM(plaintext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptAESGCM(ciphertext, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

// DeriveAESKeyFromSSH derives a 32-byte key from a signature over a fixed
// message. Only deterministic signature schemes (ed25519, RSA PKCS#1 v1.5)
// give a stable key.
func DeriveAESKeyFromSSH(signer ssh.Signer) ([]byte, error) {
	signature, err := signer.Sign(rand.Reader, []byte(keyDerivationMessage))
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	hash := sha256.Sum256(signature.Blob)
	return hash[:], nil
}
