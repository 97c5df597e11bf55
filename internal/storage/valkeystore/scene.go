// Package valkeystore persists scene snapshots in Valkey.
package valkeystore

import (
	"context"
	"fmt"
	"log"

	"github.com/valkey-io/valkey-go"

	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/storage"
)

// SnapshotStore implements storage.SnapshotStore on top of Valkey. Each scene
// is stored under <prefix>:scene:<id>, and <prefix>:scenes holds the set of IDs.
type SnapshotStore struct {
	client valkey.Client
	prefix string
}

// NewSnapshotStore connects to the Valkey server at addr.
func NewSnapshotStore(addr, password, prefix string) (*SnapshotStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey at %s: %w", addr, err)
	}

	log.Printf("[Valkey] Connected to %s for scene snapshots.", addr)
	return New(client, prefix), nil
}

// New wraps an existing client. Keys are namespaced under prefix.
func New(client valkey.Client, prefix string) *SnapshotStore {
	return &SnapshotStore{client: client, prefix: prefix}
}

func (s *SnapshotStore) sceneKey(id string) string {
	return s.prefix + ":scene:" + id
}

func (s *SnapshotStore) indexKey() string {
	return s.prefix + ":scenes"
}

// Save writes the snapshot and records its ID in the index set.
func (s *SnapshotStore) Save(ctx context.Context, snap models.SceneSnapshot) error {
	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	cmds := make(valkey.Commands, 0, 2)
	cmds = append(cmds,
		s.client.B().Set().Key(s.sceneKey(snap.ID)).Value(valkey.BinaryString(data)).Build(),
		s.client.B().Sadd().Key(s.indexKey()).Member(snap.ID).Build(),
	)
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
		}
	}
	return nil
}

// Load reads the snapshot for id.
func (s *SnapshotStore) Load(ctx context.Context, id string) (models.SceneSnapshot, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(s.sceneKey(id)).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return models.SceneSnapshot{}, models.ErrNotFound
	}
	if err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return storage.DecodeSnapshot(data)
}

// Delete removes the snapshot for id. Deleting a missing snapshot is not an error.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	cmds := make(valkey.Commands, 0, 2)
	cmds = append(cmds,
		s.client.B().Del().Key(s.sceneKey(id)).Build(),
		s.client.B().Srem().Key(s.indexKey()).Member(id).Build(),
	)
	for _, resp := range s.client.DoMulti(ctx, cmds...) {
		if err := resp.Error(); err != nil {
			return fmt.Errorf("delete snapshot %s: %w", id, err)
		}
	}
	return nil
}

// List returns the IDs of every stored snapshot.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.client.Do(ctx, s.client.B().Smembers().Key(s.indexKey()).Build()).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return ids, nil
}

// Close closes the Valkey client.
func (s *SnapshotStore) Close() {
	s.client.Close()
}

var _ storage.SnapshotStore = (*SnapshotStore)(nil)
