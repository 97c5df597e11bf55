package valkeystore

import (
	"context"
	"errors"
	"testing"

	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"

	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/storage"
)

const prefix = "scenyx:lights"

func newStore(t *testing.T) (*SnapshotStore, *mock.Client) {
	t.Helper()
	client := mock.NewClient(gomock.NewController(t))
	return New(client, prefix), client
}

func testSnapshot(t *testing.T) (models.SceneSnapshot, string) {
	t.Helper()
	s := models.NewScene("persist")
	cam, _ := s.AddObject("Cam", models.ObjectCamera)
	key, _ := s.AddObject("Key", models.ObjectLight)
	cam.Lights = []models.LightRef{{ObjectID: key.ID}}
	snap := s.Snapshot()
	data, err := storage.EncodeSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}
	return snap, string(data)
}

func TestKeys(t *testing.T) {
	s := New(nil, prefix)
	if got := s.sceneKey("abc"); got != "scenyx:lights:scene:abc" {
		t.Fatalf("sceneKey=%q", got)
	}
	if got := s.indexKey(); got != "scenyx:lights:scenes" {
		t.Fatalf("indexKey=%q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, client := newStore(t)
	snap, data := testSnapshot(t)
	key := prefix + ":scene:" + snap.ID

	client.EXPECT().DoMulti(ctx,
		mock.Match("SET", key, data),
		mock.Match("SADD", prefix+":scenes", snap.ID),
	).Return([]valkey.ValkeyResult{
		mock.Result(mock.ValkeyString("OK")),
		mock.Result(mock.ValkeyInt64(1)),
	})
	client.EXPECT().Do(ctx, mock.Match("GET", key)).Return(mock.Result(mock.ValkeyBlobString(data)))

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != snap.ID || len(got.Objects) != 2 || len(got.Objects[0].Lights) != 1 {
		t.Fatalf("loaded snapshot: %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	ctx := context.Background()
	store, client := newStore(t)
	client.EXPECT().Do(ctx, mock.Match("GET", prefix+":scene:gone")).Return(mock.Result(mock.ValkeyNil()))

	if _, err := store.Load(ctx, "gone"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	store, client := newStore(t)

	client.EXPECT().Do(ctx, mock.Match("SMEMBERS", prefix+":scenes")).Return(mock.Result(
		mock.ValkeyArray(mock.ValkeyBlobString("a"), mock.ValkeyBlobString("b")),
	))
	client.EXPECT().DoMulti(ctx,
		mock.Match("DEL", prefix+":scene:a"),
		mock.Match("SREM", prefix+":scenes", "a"),
	).Return([]valkey.ValkeyResult{
		mock.Result(mock.ValkeyInt64(1)),
		mock.Result(mock.ValkeyInt64(1)),
	})

	ids, err := store.List(ctx)
	if err != nil || len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("List: %v %v", ids, err)
	}
	if err := store.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestBatchErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	snap, data := testSnapshot(t)

	cases := []struct {
		name string
		run  func(*SnapshotStore, *mock.Client) error
	}{
		{"save_index_fails", func(store *SnapshotStore, client *mock.Client) error {
			client.EXPECT().DoMulti(ctx,
				mock.Match("SET", prefix+":scene:"+snap.ID, data),
				mock.Match("SADD", prefix+":scenes", snap.ID),
			).Return([]valkey.ValkeyResult{
				mock.Result(mock.ValkeyString("OK")),
				mock.ErrorResult(boom),
			})
			return store.Save(ctx, snap)
		}},
		{"delete_first_fails", func(store *SnapshotStore, client *mock.Client) error {
			client.EXPECT().DoMulti(ctx,
				mock.Match("DEL", prefix+":scene:x"),
				mock.Match("SREM", prefix+":scenes", "x"),
			).Return([]valkey.ValkeyResult{
				mock.ErrorResult(boom),
				mock.Result(mock.ValkeyInt64(0)),
			})
			return store.Delete(ctx, "x")
		}},
		{"list_fails", func(store *SnapshotStore, client *mock.Client) error {
			client.EXPECT().Do(ctx, mock.Match("SMEMBERS", prefix+":scenes")).Return(mock.ErrorResult(boom))
			_, err := store.List(ctx)
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, client := newStore(t)
			if err := tc.run(store, client); !errors.Is(err, boom) {
				t.Fatalf("got %v, want %v", err, boom)
			}
		})
	}
}
