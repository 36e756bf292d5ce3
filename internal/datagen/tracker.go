package datagen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Tracker remembers member numbers already inserted in earlier runs so
// re-running a simulation never reuses an identity. State is a JSON array
// on disk.
type Tracker struct {
	path string
	used map[string]bool
}

// NewTracker loads tracker state from path, starting empty if the file
// does not exist yet.
func NewTracker(path string) (*Tracker, error) {
	t := &Tracker{path: path, used: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracker state: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse tracker state %s: %w", path, err)
	}
	for _, id := range ids {
		t.used[id] = true
	}
	log.Debug("Loaded used member numbers", "count", len(t.used), "path", path)
	return t, nil
}

// Used reports whether the member number was already consumed.
func (t *Tracker) Used(memberNumber string) bool {
	return t.used[memberNumber]
}

// Mark records member numbers as consumed.
func (t *Tracker) Mark(memberNumbers ...string) {
	for _, id := range memberNumbers {
		t.used[id] = true
	}
}

// Count returns how many member numbers are tracked.
func (t *Tracker) Count() int {
	return len(t.used)
}

// Save writes the tracker state back to disk.
func (t *Tracker) Save() error {
	ids := make([]string, 0, len(t.used))
	for id := range t.used {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode tracker state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("failed to create tracker directory: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write tracker state: %w", err)
	}
	return nil
}

// Reset deletes the tracker state on disk and in memory.
func (t *Tracker) Reset() error {
	t.used = make(map[string]bool)
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove tracker state: %w", err)
	}
	return nil
}
