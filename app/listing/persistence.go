package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Persistence shadows the store to a durable location. Save rewrites the whole
// mapping; Load tolerates missing and corrupt data by returning an empty map.
type Persistence interface {
	Save(items map[string]Listing) error
	Load() (map[string]Listing, error)
}

var _ Persistence = (*FilePersistence)(nil)
var _ Persistence = (*MemoryPersistence)(nil)

// FilePersistence writes the store as an indented JSON document so the file
// stays human-inspectable.
type FilePersistence struct {
	path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (p *FilePersistence) Save(items map[string]Listing) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize products: %w", err)
	}

	if dir := filepath.Dir(p.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write products file: %w", err)
	}

	return nil
}

func (p *FilePersistence) Load() (map[string]Listing, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Listing), nil
		}
		return nil, fmt.Errorf("failed to read products file: %w", err)
	}

	var items map[string]Listing
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse products file: %w", err)
	}
	if items == nil {
		items = make(map[string]Listing)
	}

	return items, nil
}

// MemoryPersistence keeps the shadow copy in memory only. Used in tests and
// when no products file is configured.
type MemoryPersistence struct {
	items map[string]Listing
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{items: make(map[string]Listing)}
}

func (p *MemoryPersistence) Save(items map[string]Listing) error {
	copied := make(map[string]Listing, len(items))
	for k, v := range items {
		copied[k] = v
	}
	p.items = copied
	return nil
}

func (p *MemoryPersistence) Load() (map[string]Listing, error) {
	copied := make(map[string]Listing, len(p.items))
	for k, v := range p.items {
		copied[k] = v
	}
	return copied, nil
}
