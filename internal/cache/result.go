package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/HueCodes/vuelint/internal/analyzer"
	"github.com/HueCodes/vuelint/internal/logger"
)

// DefaultResultFile is the result cache written next to the config
const DefaultResultFile = ".vuelint-cache"

// increment when the stored layout changes
const resultSchemaVersion uint16 = 1

type storedResult struct {
	Hash        string
	Diagnostics []analyzer.Diagnostic
}

type resultFile struct {
	Schema uint16
	Config string
	Files  map[string]storedResult
}

// ResultStore keeps lint results on disk between runs. A result is reused
// only when both the file content and the configuration fingerprint match.
// Safe for concurrent use.
type ResultStore struct {
	mu     sync.Mutex
	path   string
	config string
	files  map[string]storedResult
	dirty  bool
}

// OpenResultStore loads the store at path. A missing, unreadable or stale
// file starts an empty store; only I/O errors other than absence are returned.
func OpenResultStore(path, configFingerprint string) (*ResultStore, error) {
	s := &ResultStore{
		path:   path,
		config: configFingerprint,
		files:  make(map[string]storedResult),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading result cache: %w", err)
	}

	var f resultFile
	if err := msgpack.Unmarshal(data, &f); err != nil {
		logger.Log.Debug("discarding corrupt result cache", "path", path, "error", err)
		return s, nil
	}
	if f.Schema != resultSchemaVersion || f.Config != configFingerprint {
		logger.Log.Debug("discarding stale result cache", "path", path)
		s.dirty = true
		return s, nil
	}
	if f.Files != nil {
		s.files = f.Files
	}
	return s, nil
}

// Get returns the stored diagnostics for filename if content is unchanged
func (s *ResultStore) Get(filename, content string) ([]analyzer.Diagnostic, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.files[filename]
	if !ok || r.Hash != HashContent(content) {
		return nil, false
	}
	return r.Diagnostics, true
}

// Put records the diagnostics for filename
func (s *ResultStore) Put(filename, content string, diags []analyzer.Diagnostic) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[filename] = storedResult{Hash: HashContent(content), Diagnostics: diags}
	s.dirty = true
}

// Len returns the number of stored files
func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

// Save writes the store back to disk if anything changed
func (s *ResultStore) Save() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	data, err := msgpack.Marshal(&resultFile{
		Schema: resultSchemaVersion,
		Config: s.config,
		Files:  s.files,
	})
	if err != nil {
		return fmt.Errorf("encoding result cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".vuelint-cache-*")
	if err != nil {
		return fmt.Errorf("writing result cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing result cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing result cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing result cache: %w", err)
	}

	s.dirty = false
	return nil
}

// Fingerprint hashes any msgpack-encodable value with map keys sorted,
// so equal configurations always produce the same fingerprint
func Fingerprint(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("fingerprinting config: %w", err)
	}
	h := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(h[:]), nil
}
