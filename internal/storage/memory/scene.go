package memory

import (
	"log"  // For logging messages
	"sync" // For mutexes guarding the session map and each session's scene

	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/ops"
	"github.com/Vasu1712/scenyx-lights/internal/selection"
)

// Session is one live scene together with the controller and operators that
// act on it. All access to the scene goes through Do, which plays the part of
// the host's single UI thread.
type Session struct {
	mu         sync.Mutex
	ID         string
	Scene      *models.Scene
	Controller *selection.Controller
	Ops        *ops.Operators
}

// Do runs fn with exclusive access to the session's scene.
func (s *Session) Do(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// SceneStore manages the live scene sessions in memory.
type SceneStore struct {
	mu       sync.RWMutex        // Read-write mutex for the sessions map and order slice
	sessions map[string]*Session // sceneID -> session
	order    []string            // Scene IDs in creation order
}

// NewSceneStore creates and returns a new instance of SceneStore.
func NewSceneStore() *SceneStore {
	return &SceneStore{
		sessions: make(map[string]*Session),
	}
}

// CreateScene creates an empty scene and returns its session.
func (s *SceneStore) CreateScene(name string) *Session {
	session := s.Adopt(models.NewScene(name))
	log.Printf("Scene created: ID=%s, Name=%s", session.ID, session.Scene.Name)
	return session
}

// Adopt wraps an existing scene (for example one restored from a snapshot) in
// a session, wiring a controller to its hooks. An existing session with the
// same ID is replaced.
func (s *SceneStore) Adopt(scene *models.Scene) *Session {
	ctrl := selection.NewController(scene)
	session := &Session{
		ID:         scene.ID,
		Scene:      scene,
		Controller: ctrl,
		Ops:        ops.New(ctrl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[scene.ID]; !exists {
		s.order = append(s.order, scene.ID)
	}
	s.sessions[scene.ID] = session
	return session
}

// GetScene retrieves a session by scene ID.
func (s *SceneStore) GetScene(sceneID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[sceneID]
}

// ListScenes returns every session in creation order.
func (s *SceneStore) ListScenes() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id])
	}
	return out
}

// DeleteScene removes a session. It returns false if the scene was not found.
func (s *SceneStore) DeleteScene(sceneID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sceneID]; !ok {
		log.Printf("Attempted to delete non-existent scene: %s", sceneID)
		return false
	}
	delete(s.sessions, sceneID)
	for i, id := range s.order {
		if id == sceneID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	log.Printf("Scene deleted: ID=%s", sceneID)
	return true
}
