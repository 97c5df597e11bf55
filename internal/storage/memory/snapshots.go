package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/storage"
)

// SnapshotStore keeps encoded snapshots in memory. It is used when no Valkey
// server is configured, and in tests.
type SnapshotStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte // sceneID -> encoded snapshot
}

// NewSnapshotStore creates an empty SnapshotStore.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{blobs: make(map[string][]byte)}
}

func (s *SnapshotStore) Save(_ context.Context, snap models.SceneSnapshot) error {
	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[snap.ID] = data
	return nil
}

func (s *SnapshotStore) Load(_ context.Context, id string) (models.SceneSnapshot, error) {
	s.mu.RLock()
	data, ok := s.blobs[id]
	s.mu.RUnlock()
	if !ok {
		return models.SceneSnapshot{}, models.ErrNotFound
	}
	return storage.DecodeSnapshot(data)
}

func (s *SnapshotStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

func (s *SnapshotStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)
