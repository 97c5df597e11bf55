package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Vasu1712/scenyx-lights/internal/api/scenes"
	"github.com/Vasu1712/scenyx-lights/internal/config"
	"github.com/Vasu1712/scenyx-lights/internal/middleware"
	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/storage"
	"github.com/Vasu1712/scenyx-lights/internal/storage/memory"
	"github.com/Vasu1712/scenyx-lights/internal/storage/valkeystore"
	"github.com/Vasu1712/scenyx-lights/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var snapshots storage.SnapshotStore = memory.NewSnapshotStore()
	if cfg.ValkeyAddr != "" {
		vs, err := valkeystore.NewSnapshotStore(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.ValkeyPrefix)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer vs.Close()
		snapshots = vs
	}

	sceneStore := memory.NewSceneStore()
	restoreScenes(context.Background(), snapshots, sceneStore)

	hub := ws.NewHub()
	go hub.Run()

	sceneHandler := &scenes.SceneHandler{Store: sceneStore, Snapshots: snapshots, Hub: hub}

	r := mux.NewRouter()
	r.Use(middleware.Auth(cfg.JWTSecret))
	scenes.RegisterSceneRoutes(r, sceneHandler)

	// CORS wraps the router so preflight requests are answered before route matching.
	handler := middleware.CORS(cfg.AllowedOrigin)(r)

	log.Printf("Server started at %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// restoreScenes loads every persisted scene into a live session.
func restoreScenes(ctx context.Context, snapshots storage.SnapshotStore, store *memory.SceneStore) {
	ids, err := snapshots.List(ctx)
	if err != nil {
		log.Printf("Error listing snapshots: %v", err)
		return
	}
	for _, id := range ids {
		snap, err := snapshots.Load(ctx, id)
		if err != nil {
			log.Printf("Error loading snapshot %s: %v", id, err)
			continue
		}
		store.Adopt(models.Restore(snap))
	}
	log.Printf("Restored %d scenes", len(store.ListScenes()))
}
