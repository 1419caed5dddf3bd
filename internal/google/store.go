package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

// Store reads and writes credential files below a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the credentials directory.
func (s *Store) Dir() string {
	return s.dir
}

// validateAccount checks that account looks like an email address and cannot
// escape the credentials directory.
func validateAccount(account string) error {
	if account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	local, domain, ok := strings.Cut(account, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return fmt.Errorf("invalid account %q: must be an email address", account)
	}
	if strings.ContainsAny(account, `/\`) || strings.Contains(account, "..") {
		return fmt.Errorf("invalid account %q: contains path characters", account)
	}
	return nil
}

// Path returns the credential file for account.
func (s *Store) Path(account string) string {
	name := strings.Replace(account, "@", "_at_", 1) + ".token"
	return filepath.Join(s.dir, "gmail", name)
}

// LegacyPath returns the credential location used before per-service
// directories were introduced.
func (s *Store) LegacyPath(account string) string {
	return filepath.Join(s.dir, account+".json")
}

// Exists reports whether a credential file exists for account.
func (s *Store) Exists(account string) bool {
	if validateAccount(account) != nil {
		return false
	}
	for _, p := range []string{s.Path(account), s.LegacyPath(account)} {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// Load reads the stored token for account. The primary path is tried first,
// then the legacy one. The returned path is the file the token came from.
func (s *Store) Load(account string) (*oauth2.Token, string, error) {
	if err := validateAccount(account); err != nil {
		return nil, "", err
	}

	primary := s.Path(account)
	for _, p := range []string{primary, s.LegacyPath(account)} {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, p, fmt.Errorf("failed to read credential file %s: %w", p, err)
		}

		var tok oauth2.Token
		if err := json.Unmarshal(data, &tok); err != nil {
			return nil, p, fmt.Errorf("corrupt credential file %s: %w", p, err)
		}
		if tok.AccessToken == "" && tok.RefreshToken == "" {
			return nil, p, fmt.Errorf("corrupt credential file %s: no access or refresh token", p)
		}
		return &tok, p, nil
	}

	return nil, primary, &NotConfiguredError{Account: account, Path: primary}
}

// Save writes tok as the credential for account. The file is written to a
// temporary name in the same directory and renamed into place.
func (s *Store) Save(account string, tok *oauth2.Token) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	if tok == nil {
		return fmt.Errorf("token cannot be nil")
	}

	path := s.Path(account)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	return writeFileAtomic(path, data, 0600)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
