// Package storage defines where scene snapshots are persisted between runs.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vasu1712/scenyx-lights/internal/models"
)

// SnapshotStore persists scene snapshots by scene ID.
type SnapshotStore interface {
	Save(ctx context.Context, snap models.SceneSnapshot) error
	// Load returns models.ErrNotFound when no snapshot exists for id.
	Load(ctx context.Context, id string) (models.SceneSnapshot, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

// EncodeSnapshot serializes a snapshot for storage.
func EncodeSnapshot(snap models.SceneSnapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}
	return data, nil
}

// DecodeSnapshot parses a stored snapshot and rejects ones that fail Validate.
func DecodeSnapshot(data []byte) (models.SceneSnapshot, error) {
	var snap models.SceneSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
