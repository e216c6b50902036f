// ABOUTME: Persistent credential store for the clinica CLI
// ABOUTME: Keeps the bearer token in a JSON file under the config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenFile persists the session credential in <configDir>/token.json.
// Reads always hit the disk so a Clear is visible to the very next
// request; there is no in-memory copy to go stale.
type TokenFile struct {
	configDir string
}

type storedCredential struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// NewTokenFile creates a credential store rooted at the given config directory
func NewTokenFile(configDir string) *TokenFile {
	return &TokenFile{configDir: configDir}
}

// tokenPath returns the path to the credential JSON
func (tf *TokenFile) tokenPath() string {
	return filepath.Join(tf.configDir, "token.json")
}

// Token returns the stored bearer token, or empty when none is stored.
// Implements client.CredentialSource.
func (tf *TokenFile) Token() string {
	cred, err := tf.read()
	if err != nil {
		return ""
	}
	return cred.Token
}

// Username returns the username the token was issued to, or empty
func (tf *TokenFile) Username() string {
	cred, err := tf.read()
	if err != nil {
		return ""
	}
	return cred.Username
}

// Save writes the credential, creating the config directory if needed
func (tf *TokenFile) Save(token, username string) error {
	if err := os.MkdirAll(tf.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storedCredential{Token: token, Username: username}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(tf.tokenPath(), data, 0600)
}

// Clear removes the stored credential; a missing file is not an error
func (tf *TokenFile) Clear() error {
	err := os.Remove(tf.tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (tf *TokenFile) read() (*storedCredential, error) {
	data, err := os.ReadFile(tf.tokenPath())
	if err != nil {
		return nil, err
	}
	var cred storedCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, err
	}
	return &cred, nil
}
