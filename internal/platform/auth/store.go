package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// expiryMargin is subtracted from token expiry before saving.
const expiryMargin = 60 * time.Second

// FileStore keeps every role's token in <dir>/<role>_token.json.
type FileStore struct {
	dir string
}

// NewFileStore returns new FileStore.
func NewFileStore(dir string) FileStore {
	return FileStore{
		dir: dir,
	}
}

// Load returns saved token of role. Missing or unreadable files are reported as ErrNoToken.
func (f FileStore) Load(role Role) (*oauth2.Token, error) {
	content, err := os.ReadFile(f.path(role))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("can't read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(content, &token); err != nil {
		return nil, fmt.Errorf("token file is corrupted: %w", ErrNoToken)
	}

	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, ErrNoToken
	}

	return &token, nil
}

// Save writes token of role with expiry moved slightly earlier.
func (f FileStore) Save(role Role, token *oauth2.Token) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("can't create tokens directory: %w", err)
	}

	saved := *token
	if !saved.Expiry.IsZero() {
		saved.Expiry = saved.Expiry.Add(-expiryMargin)
	}

	content, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("can't encode token: %w", err)
	}

	return os.WriteFile(f.path(role), content, 0o600)
}

// Delete removes token file of role if it exists.
func (f FileStore) Delete(role Role) error {
	err := os.Remove(f.path(role))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (f FileStore) path(role Role) string {
	return filepath.Join(f.dir, string(role)+"_token.json")
}
