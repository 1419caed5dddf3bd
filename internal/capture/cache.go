package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Cache maps Key(email) to a captured email record. Entries are kept as raw
// JSON so records written by other tools, or carrying fields Email does not
// know, survive a load and save unchanged.
type Cache map[string]json.RawMessage

// LoadCache reads the cache at path. A missing file, or one whose top level
// is not a JSON object, yields an empty cache; other read errors are returned.
func LoadCache(path string) (Cache, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Cache{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache %s: %w", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Cache{}, nil
	}

	c := make(Cache, len(raw))
	for k, v := range raw {
		var buf bytes.Buffer
		if err := json.Compact(&buf, v); err != nil {
			return Cache{}, nil
		}
		c[k] = buf.Bytes()
	}
	return c, nil
}

// Merge stores emails in c, replacing entries with the same key. Other
// entries are left untouched.
func (c Cache) Merge(emails []Email) error {
	for _, e := range emails {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode email %s: %w", e.MessageID, err)
		}
		c[Key(e)] = data
	}
	return nil
}

// Get decodes the entry stored under key.
func (c Cache) Get(key string) (Email, bool, error) {
	data, ok := c[key]
	if !ok {
		return Email{}, false, nil
	}
	var e Email
	if err := json.Unmarshal(data, &e); err != nil {
		return Email{}, true, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return e, true, nil
}

// Keys returns the cache keys in sorted order.
func (c Cache) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SaveCache writes c to path, creating parent directories. The file is
// written under a temporary name and renamed into place.
func SaveCache(path string, c Cache) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace cache %s: %w", path, err)
	}
	return nil
}

// Update loads the cache at path, merges emails into it and saves it back.
func Update(path string, emails []Email) (Cache, error) {
	c, err := LoadCache(path)
	if err != nil {
		return nil, err
	}
	if err := c.Merge(emails); err != nil {
		return nil, err
	}
	if err := SaveCache(path, c); err != nil {
		return nil, err
	}
	return c, nil
}
