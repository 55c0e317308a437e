// Package settings keeps the user preferences: a flat JSON document merged
// over compiled-in defaults and rewritten on every change.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mateconpizza/neo/internal/sys/files"
)

// Store holds the preferences backed by one JSON file.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]any
}

// Load reads the settings file at path over the defaults. It never fails:
// a missing or unreadable file leaves the defaults in place.
func Load(path string) *Store {
	s := &Store{path: path}
	s.values = readFile(path)

	return s
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file.
func (s *Store) Reload() {
	v := readFile(s.path)

	s.mu.Lock()
	s.values = v
	s.mu.Unlock()

	slog.Debug("settings reloaded", "path", s.path)
}

// Get returns the value of a known key, falling back to its default.
// Unknown keys are reported absent even when present in the file.
func (s *Store) Get(key string) (any, bool) {
	spec, ok := known[key]
	if !ok {
		return nil, false
	}

	s.mu.RLock()
	v, ok := s.values[key]
	s.mu.RUnlock()

	if !ok || v == nil {
		return spec.def(), true
	}

	return v, true
}

// String returns a string setting.
func (s *Store) String(key string) string {
	v, _ := s.Get(key)
	if str, ok := v.(string); ok {
		return str
	}

	slog.Warn("setting has wrong type, using default", "key", key, "value", v)
	str, _ := defaultOf(key).(string)

	return str
}

// Bool returns a boolean setting.
func (s *Store) Bool(key string) bool {
	v, _ := s.Get(key)
	if b, ok := v.(bool); ok {
		return b
	}

	slog.Warn("setting has wrong type, using default", "key", key, "value", v)
	b, _ := defaultOf(key).(bool)

	return b
}

// Strings returns a list setting.
func (s *Store) Strings(key string) []string {
	v, _ := s.Get(key)
	if l, ok := toStrings(v); ok {
		return l
	}

	slog.Warn("setting has wrong type, using default", "key", key, "value", v)
	l, _ := toStrings(defaultOf(key))

	return l
}

// All returns every known key resolved through Get.
func (s *Store) All() map[string]any {
	m := make(map[string]any, len(keyOrder))
	for _, k := range keyOrder {
		m[k], _ = s.Get(k)
	}

	return m
}

// Set validates value, stores it in memory and rewrites the file. A write
// failure is logged and returned; the in-memory value is kept.
func (s *Store) Set(key string, value any) error {
	v, err := normalize(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = v
	s.mu.Unlock()

	slog.Debug("setting updated", "key", key, "value", v)

	return s.save()
}

// SetFromString parses raw according to the key's type and calls Set.
//
// Lists are comma separated; an empty string yields an empty list.
func (s *Store) SetFromString(key, raw string) error {
	spec, ok := known[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	switch spec.kind {
	case kindBool:
		b, err := parseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidValue, key, err)
		}

		return s.Set(key, b)

	case kindList:
		l := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				l = append(l, item)
			}
		}

		return s.Set(key, l)

	default:
		return s.Set(key, strings.TrimSpace(raw))
	}
}

// Reset restores the defaults, dropping unknown keys, and saves.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.values = Defaults()
	s.mu.Unlock()

	return s.save()
}

// save performs a full rewrite of the backing file.
func (s *Store) save() error {
	s.mu.RLock()
	data, err := encode(s.values)
	s.mu.RUnlock()

	if err != nil {
		slog.Error("encoding settings", "error", err)
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := files.WriteAtomic(s.path, data); err != nil {
		slog.Error("saving settings", "path", s.path, "error", err)
		return fmt.Errorf("saving settings: %w", err)
	}

	slog.Debug("settings saved", "path", s.path)

	return nil
}

// readFile returns the defaults merged with the content of p.
func readFile(p string) map[string]any {
	values := Defaults()

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("settings file not found, loading defaults", "path", p)
		} else {
			slog.Error("reading settings", "path", p, "error", err)
		}

		return values
	}

	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		slog.Error("parsing settings, loading defaults", "path", p, "error", err)
		return values
	}

	for k, v := range loaded {
		values[k] = v
	}

	return values
}

// encode marshals values as indented JSON without escaping non-ASCII or
// HTML characters.
func encode(values map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(values); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func defaultOf(key string) any {
	if spec, ok := known[key]; ok {
		return spec.def()
	}

	return nil
}

// normalize checks value against the key's type and validator.
func normalize(key string, value any) (any, error) {
	spec, ok := known[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	switch spec.kind {
	case kindBool:
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %q wants %s, got %T", ErrInvalidType, key, spec.kind, value)
		}

		return b, nil

	case kindList:
		l, ok := toStrings(value)
		if !ok {
			return nil, fmt.Errorf("%w: %q wants %s, got %T", ErrInvalidType, key, spec.kind, value)
		}

		return l, nil

	default:
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q wants %s, got %T", ErrInvalidType, key, spec.kind, value)
		}

		if key == KeyDownloadDirectory {
			str = files.ExpandHomeDir(str)
		}

		if spec.validate != nil {
			if err := spec.validate(str); err != nil {
				return nil, fmt.Errorf("%q: %w", key, err)
			}
		}

		return str, nil
	}
}

func toStrings(v any) ([]string, bool) {
	switch l := v.(type) {
	case []string:
		return append([]string{}, l...), true
	case []any:
		out := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}

		return out, true
	default:
		return nil, false
	}
}

// parseBool accepts strconv forms plus the on/off and yes/no pairs that
// HTML forms and humans produce.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}

	return strconv.ParseBool(strings.TrimSpace(s))
}
