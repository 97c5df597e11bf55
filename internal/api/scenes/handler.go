package scenes

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/crypto/blake2b"

	"github.com/Vasu1712/scenyx-lights/internal/middleware"
	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/ops"
	"github.com/Vasu1712/scenyx-lights/internal/panel"
	"github.com/Vasu1712/scenyx-lights/internal/selection"
	"github.com/Vasu1712/scenyx-lights/internal/storage"
	"github.com/Vasu1712/scenyx-lights/internal/storage/memory"
	"github.com/Vasu1712/scenyx-lights/internal/ws"
)

// SceneHandler holds the dependencies for handling scene-related HTTP requests.
type SceneHandler struct {
	Store     *memory.SceneStore    // Live scene sessions
	Snapshots storage.SnapshotStore // Where scenes are persisted after each change
	Hub       *ws.Hub               // Pushes panel updates to watching clients
}

// sceneResponse is returned by every command endpoint.
type sceneResponse struct {
	Result ops.Result  `json:"result"`
	Panel  panel.Panel `json:"panel"`
}

type sceneSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ActiveCamera string `json:"activeCamera,omitempty"`
	ActiveUsers  int    `json:"activeUsers"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		log.Printf("Error decoding request body for %s: %v", r.URL.Path, err)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNameCollision), errors.Is(err, selection.ErrSyncInProgress):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyName), errors.Is(err, models.ErrWrongType):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *SceneHandler) session(w http.ResponseWriter, r *http.Request) *memory.Session {
	sceneID := mux.Vars(r)["id"]
	session := h.Store.GetScene(sceneID)
	if session == nil {
		http.Error(w, "Scene not found", http.StatusNotFound)
		log.Printf("Scene not found for ID: %s", sceneID)
	}
	return session
}

// apply runs fn against the scene, then persists the scene, pushes the new
// panel to WebSocket clients and writes it to the response.
func (h *SceneHandler) apply(w http.ResponseWriter, r *http.Request, fn func(s *memory.Session) (ops.Result, error)) {
	session := h.session(w, r)
	if session == nil {
		return
	}

	var (
		res ops.Result
		p   panel.Panel
	)
	err := session.Do(func(s *memory.Session) error {
		var err error
		if res, err = fn(s); err != nil {
			return err
		}
		p = h.commit(r.Context(), s)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		log.Printf("[Scene] %s %s failed: %v", r.Method, r.URL.Path, err)
		return
	}
	if res == ops.Cancelled {
		log.Printf("[Scene] %s %s cancelled for scene %s", r.Method, r.URL.Path, session.ID)
	}
	writeJSON(w, http.StatusOK, sceneResponse{Result: res, Panel: p})
}

// commit persists the session's scene and pushes its panel to WebSocket
// clients. Callers hold the session lock, so saves and pushes for one scene
// happen in the order the changes were made.
func (h *SceneHandler) commit(ctx context.Context, s *memory.Session) panel.Panel {
	p := panel.Build(s.Scene)
	if err := h.Snapshots.Save(ctx, s.Scene.Snapshot()); err != nil {
		log.Printf("Error saving snapshot for scene %s: %v", s.ID, err)
	}
	h.publish(p)
	return p
}

func (h *SceneHandler) publish(p panel.Panel) {
	if h.Hub == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Error encoding panel for scene %s: %v", p.SceneID, err)
		return
	}
	h.Hub.Publish(p.SceneID, data)
}

// CreateScene handles POST /api/v1/scenes with a JSON body {"name": "..."}.
func (h *SceneHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		http.Error(w, "Scene Name cannot be empty", http.StatusBadRequest)
		log.Println("Validation error: Scene Name is empty")
		return
	}

	session := h.Store.CreateScene(req.Name)
	var p panel.Panel
	_ = session.Do(func(s *memory.Session) error {
		p = h.commit(r.Context(), s)
		return nil
	})
	writeJSON(w, http.StatusCreated, p)
	log.Printf("Created scene: ID=%s, Name=%s, By=%q", session.ID, req.Name, middleware.Subject(r.Context()))
}

// ListScenes handles GET /api/v1/scenes.
func (h *SceneHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	sessions := h.Store.ListScenes()
	out := make([]sceneSummary, 0, len(sessions))
	for _, session := range sessions {
		sum := sceneSummary{ID: session.ID}
		_ = session.Do(func(s *memory.Session) error {
			sum.Name = s.Scene.Name
			if cam := s.Scene.ActiveCamera(); cam != nil {
				sum.ActiveCamera = cam.Name
			}
			return nil
		})
		if h.Hub != nil {
			sum.ActiveUsers = h.Hub.GetActiveSceneUsersCount(session.ID)
		}
		out = append(out, sum)
	}
	writeJSON(w, http.StatusOK, out)
	log.Printf("Listed %d scenes", len(out))
}

// GetScene handles GET /api/v1/scenes/{id}, returning the scene's panel. The
// response carries a content hash as its ETag.
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	session := h.session(w, r)
	if session == nil {
		return
	}
	var p panel.Panel
	_ = session.Do(func(s *memory.Session) error {
		p = panel.Build(s.Scene)
		return nil
	})

	data, err := json.Marshal(p)
	if err != nil {
		http.Error(w, "Failed to encode scene", http.StatusInternalServerError)
		return
	}
	sum := blake2b.Sum256(data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// DeleteScene handles DELETE /api/v1/scenes/{id}.
func (h *SceneHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["id"]
	if !h.Store.DeleteScene(sceneID) {
		http.Error(w, "Scene not found", http.StatusNotFound)
		return
	}
	if err := h.Snapshots.Delete(r.Context(), sceneID); err != nil {
		log.Printf("Error deleting snapshot for scene %s: %v", sceneID, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddObject handles POST /api/v1/scenes/{id}/objects with {"name", "type"}.
func (h *SceneHandler) AddObject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		_, err := s.Scene.AddObject(req.Name, models.ObjectType(strings.ToUpper(req.Type)))
		return ops.Finished, err
	})
}

// RemoveObject handles DELETE /api/v1/scenes/{id}/objects/{name}.
func (h *SceneHandler) RemoveObject(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return ops.Finished, s.Scene.RemoveObject(s.Scene.Object(name))
	})
}

// RenameObject handles POST /api/v1/scenes/{id}/objects/{name}/rename with {"name"}.
func (h *SceneHandler) RenameObject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	oldName := mux.Vars(r)["name"]
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.Rename(oldName, req.Name)
	})
}

// SetSelection handles PUT /api/v1/scenes/{id}/selection with {"names": [...]}.
func (h *SceneHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Names []string `json:"names"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		objs := make([]*models.Object, 0, len(req.Names))
		for _, name := range req.Names {
			obj := s.Scene.Object(name)
			if obj == nil {
				return ops.Cancelled, models.ErrNotFound
			}
			objs = append(objs, obj)
		}
		s.Scene.Select(objs...)
		return ops.Finished, nil
	})
}

type cameraRequest struct {
	Camera string `json:"camera"`
}

// SelectCamera handles POST /api/v1/scenes/{id}/camera/select. An empty camera
// clears the selection; a name that is not a camera is ignored.
func (h *SceneHandler) SelectCamera(w http.ResponseWriter, r *http.Request) {
	var req cameraRequest
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		var cam *models.Object
		if req.Camera != "" {
			if cam = s.Scene.Object(req.Camera); !cam.IsCamera() {
				return ops.Cancelled, nil
			}
		}
		s.Controller.Handle(selection.SelectEvent{Camera: cam})
		return ops.Finished, nil
	})
}

// SetNativeCamera handles POST /api/v1/scenes/{id}/camera/native. It writes the
// host's own camera slot; the controller picks the change up from the scene's
// change notification.
func (h *SceneHandler) SetNativeCamera(w http.ResponseWriter, r *http.Request) {
	var req cameraRequest
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		var obj *models.Object
		if req.Camera != "" {
			if obj = s.Scene.Object(req.Camera); obj == nil {
				return ops.Cancelled, models.ErrNotFound
			}
		}
		s.Scene.SetCamera(obj)
		return ops.Finished, nil
	})
}

// SetCameraEnum handles POST /api/v1/scenes/{id}/camera/enum with {"value"}.
func (h *SceneHandler) SetCameraEnum(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		s.Scene.SetSelectedCameraName(req.Value)
		return ops.Finished, nil
	})
}

// ToggleLight handles POST /api/v1/scenes/{id}/lights/toggle with {"light"}.
func (h *SceneHandler) ToggleLight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Light string `json:"light"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.ToggleLight(req.Light), nil
	})
}

// AssignSelected handles POST /api/v1/scenes/{id}/lights/assign-selected.
func (h *SceneHandler) AssignSelected(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.AssignSelected(), nil
	})
}

// ClearLights handles POST /api/v1/scenes/{id}/lights/clear.
func (h *SceneHandler) ClearLights(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.ClearLights(), nil
	})
}

// SetCameraFrame handles PUT /api/v1/scenes/{id}/camera/frame with {"frame", "useFrame"}.
func (h *SceneHandler) SetCameraFrame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Frame    int  `json:"frame"`
		UseFrame bool `json:"useFrame"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.SetCameraFrame(req.Frame, req.UseFrame), nil
	})
}

// CaptureFrame handles POST /api/v1/scenes/{id}/camera/frame/capture.
func (h *SceneHandler) CaptureFrame(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.SetFrameFromCurrent(), nil
	})
}

// JumpToFrame handles POST /api/v1/scenes/{id}/camera/frame/jump.
func (h *SceneHandler) JumpToFrame(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		return s.Ops.JumpToFrame(), nil
	})
}

// SetSceneFrame handles PUT /api/v1/scenes/{id}/frame with {"frame"}.
func (h *SceneHandler) SetSceneFrame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Frame int `json:"frame"`
	}
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		s.Scene.SetFrame(req.Frame)
		return ops.Finished, nil
	})
}

// RenderPre handles POST /api/v1/scenes/{id}/render-pre, called by renderers
// right before they start.
func (h *SceneHandler) RenderPre(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(s *memory.Session) (ops.Result, error) {
		s.Controller.RenderPre()
		return ops.Finished, nil
	})
}

var sceneUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS handles GET /ws/scenes/{id}. The client receives the current panel
// immediately and again after every change to the scene.
func (h *SceneHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	if h.Hub == nil {
		http.Error(w, "Live updates unavailable", http.StatusServiceUnavailable)
		log.Printf("[Scene] WebSocket requested for %s without a hub", r.URL.Path)
		return
	}
	session := h.session(w, r)
	if session == nil {
		return
	}
	userID := r.URL.Query().Get("user_id")
	if sub := middleware.Subject(r.Context()); sub != "" {
		userID = sub
	}

	conn, err := sceneUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket for scene %s: %v", session.ID, err)
		return
	}
	log.Printf("WebSocket connection upgraded for SceneID: %s, UserID: %s", session.ID, userID)

	client := &ws.Client{
		UserID:  userID,
		SceneID: session.ID,
		Send:    make(chan []byte, 256),
		Conn:    conn,
	}
	h.Hub.Register <- client

	_ = session.Do(func(s *memory.Session) error {
		h.publish(panel.Build(s.Scene))
		return nil
	})

	// Read pump: only used to detect disconnects.
	go func() {
		defer func() {
			h.Hub.Unregister <- client
			conn.Close()
			log.Printf("Read pump closed for client %s in scene %s", userID, session.ID)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error for client %s in scene %s: %v", userID, session.ID, err)
				}
				return
			}
		}
	}()

	// Write pump
	go func() {
		defer conn.Close()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error for client %s in scene %s: %v", userID, session.ID, err)
				return
			}
		}
	}()
}
