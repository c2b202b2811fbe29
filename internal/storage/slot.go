package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/samber/lo"
)

const cacheSizeMaxBytes = 64 * 1024

// Slot is one named durable value. Load returns nil, nil when nothing was stored yet.
type Slot interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// DiskSlot keeps the slot as a file under a diskv base directory.
type DiskSlot struct {
	dv  *diskv.Diskv
	key string
}

func NewDiskSlot(baseDir, key string) *DiskSlot {
	// Flat layout: every key is a file directly in the base dir.
	flatTransform := func(s string) []string { return []string{} }

	dv := diskv.New(diskv.Options{
		BasePath:     baseDir,
		TempDir:      filepath.Join(baseDir, ".tmp"),
		Transform:    flatTransform,
		CacheSizeMax: cacheSizeMaxBytes,
	})
	return &DiskSlot{dv: dv, key: key}
}

func (s *DiskSlot) Load() ([]byte, error) {
	if !s.dv.Has(s.key) {
		return nil, nil
	}
	return s.dv.Read(s.key)
}

func (s *DiskSlot) Save(data []byte) error {
	return s.dv.Write(s.key, data)
}

// MemorySlot is a process-local slot, used by tests and throwaway sessions.
type MemorySlot struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemorySlot(initial []byte) *MemorySlot {
	return &MemorySlot{data: initial}
}

func (s *MemorySlot) Load() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, nil
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

// DecodeIDs parses a slot value. Empty input is an empty sequence. Ids are
// canonicalized, then blank and repeated ones are dropped so the result never
// holds duplicates.
func DecodeIDs(data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode favorites slot: %w", err)
	}
	ids = lo.Map(ids, func(id string, _ int) string { return domain.CanonicalID(id) })
	ids = lo.Filter(ids, func(id string, _ int) bool { return id != "" })
	return lo.Uniq(ids), nil
}

// EncodeIDs renders ids as a JSON array; nil encodes as [].
func EncodeIDs(ids []string) []byte {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	return b
}

// LoadIDs reads and decodes the slot.
func LoadIDs(s Slot) ([]string, error) {
	data, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("read favorites slot: %w", err)
	}
	return DecodeIDs(data)
}
