package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// Credentials hold the password for a networked store backend.
type Credentials struct {
	Password  string    `json:"password"`
	Source    string    `json:"source"` // "env" | "file"
	CreatedAt time.Time `json:"created_at"`
}

func credFilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(dir, credFileName), nil
}

// GetCredentials returns the env override if set, else the saved file.
// Nothing saved yields (nil, nil).
func GetCredentials() (*Credentials, error) {
	if env := strings.TrimSpace(os.Getenv(EnvPassword)); env != "" {
		return &Credentials{Password: env, Source: "env"}, nil
	}
	p, err := credFilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Source = "file"
	return &c, nil
}

// Password is GetCredentials reduced to the password, "" when none.
func Password() (string, error) {
	c, err := GetCredentials()
	if err != nil || c == nil {
		return "", err
	}
	return c.Password, nil
}

func SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return errors.New("empty password")
	}
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("home: %w", err)
	}
	// ~/.shelf holds secrets: owner only.
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Credentials{
		Password:  password,
		Source:    "file",
		CreatedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, credFileName), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func DeleteCredentials() error {
	p, err := credFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
