package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ObjectType is the kind of an object in a scene.
type ObjectType string

const (
	ObjectCamera ObjectType = "CAMERA"
	ObjectLight  ObjectType = "LIGHT"
	ObjectMesh   ObjectType = "MESH"
	ObjectEmpty  ObjectType = "EMPTY"
)

// Valid reports whether t is one of the known object types.
func (t ObjectType) Valid() bool {
	switch t {
	case ObjectCamera, ObjectLight, ObjectMesh, ObjectEmpty:
		return true
	}
	return false
}

// LightRef is a weak reference from a camera to a light. It only stores the
// light's ID; the light may be removed from the scene at any time, after which
// the reference no longer resolves.
type LightRef struct {
	ObjectID string `json:"objectId"`
}

// Object is a single entity in a Scene. Camera-only fields are left at their
// zero values for other types.
type Object struct {
	ID           string     `json:"id"`           // Stable for the lifetime of the scene (UUID)
	Name         string     `json:"name"`         // Unique among the scene's objects
	Type         ObjectType `json:"type"`
	HideViewport bool       `json:"hideViewport"` // Hidden in the editor viewport
	HideRender   bool       `json:"hideRender"`   // Hidden in final renders

	Lights   []LightRef `json:"lights,omitempty"`   // Ordered light assignments (cameras only)
	Frame    int        `json:"frame,omitempty"`    // Linked timeline frame, always >= 1 on cameras
	UseFrame bool       `json:"useFrame,omitempty"` // Whether selecting the camera jumps to Frame

	scene *Scene
}

// IsCamera reports whether o is a non-nil camera object.
func (o *Object) IsCamera() bool {
	return o != nil && o.Type == ObjectCamera
}

// IsLight reports whether o is a non-nil light object.
func (o *Object) IsLight() bool {
	return o != nil && o.Type == ObjectLight
}

// Scene returns the scene the object belongs to, or nil once it has been removed.
func (o *Object) Scene() *Scene {
	if o == nil {
		return nil
	}
	return o.scene
}

// SetFrame stores a linked frame on the object, clamped to 1.
func (o *Object) SetFrame(frame int) {
	o.Frame = ClampFrame(frame)
}

// ClampFrame clamps frame numbers below 1 to 1.
func ClampFrame(frame int) int {
	if frame < 1 {
		return 1
	}
	return frame
}

// Hooks are invoked synchronously by the scene when the matching state changes.
// A hook may call back into the scene before the setter that fired it returns.
type Hooks struct {
	GraphChanged        func(s *Scene) // After object add/remove/rename, native camera change, frame change
	ActiveCameraChanged func(s *Scene) // After the canonical active camera is set
	EnumChanged         func(s *Scene) // After the camera dropdown value is set
}

// Scene is the host scene graph: an ordered object population plus the camera
// slots and caches the light rig reads and writes.
type Scene struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Hooks Hooks  `json:"-"`

	objects            []*Object
	byID               map[string]*Object
	camera             *Object // Native current camera, may be any object type
	activeCamera       *Object // Canonical active camera, cameras only
	lastCameraName     string
	selectedCameraName string
	frameCurrent       int
	selected           map[string]bool // object ID -> selected
}

// NewScene creates an empty scene positioned at frame 1.
func NewScene(name string) *Scene {
	return &Scene{
		ID:           uuid.NewString(),
		Name:         name,
		byID:         make(map[string]*Object),
		frameCurrent: 1,
		selected:     make(map[string]bool),
	}
}

func (s *Scene) fire(hook func(*Scene)) {
	if hook != nil {
		hook(s)
	}
}

// AddObject appends a new object to the population.
func (s *Scene) AddObject(name string, typ ObjectType) (*Object, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !typ.Valid() {
		return nil, fmt.Errorf("add object %q of type %q: %w", name, typ, ErrWrongType)
	}
	if s.Object(name) != nil {
		return nil, fmt.Errorf("add object %q: %w", name, ErrNameCollision)
	}

	obj := &Object{ID: uuid.NewString(), Name: name, Type: typ, scene: s}
	if typ == ObjectCamera {
		obj.Frame = 1
	}
	s.insert(obj)
	s.fire(s.Hooks.GraphChanged)
	return obj, nil
}

func (s *Scene) insert(obj *Object) {
	obj.scene = s
	s.objects = append(s.objects, obj)
	s.byID[obj.ID] = obj
}

// RemoveObject deletes obj from the scene. Pointers to it held in the camera
// slots are cleared (firing ActiveCameraChanged if the canonical camera is
// cleared); light references to it are left to dangle.
func (s *Scene) RemoveObject(obj *Object) error {
	if obj == nil || obj.scene != s {
		return ErrNotFound
	}
	for i, o := range s.objects {
		if o == obj {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			break
		}
	}
	delete(s.byID, obj.ID)
	delete(s.selected, obj.ID)
	obj.scene = nil

	if s.camera == obj {
		s.camera = nil
	}
	if s.activeCamera == obj {
		s.activeCamera = nil
		s.fire(s.Hooks.ActiveCameraChanged)
	}
	s.fire(s.Hooks.GraphChanged)
	return nil
}

// Objects returns the population in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Lights returns every light object in population order.
func (s *Scene) Lights() []*Object {
	var lights []*Object
	for _, o := range s.objects {
		if o.Type == ObjectLight {
			lights = append(lights, o)
		}
	}
	return lights
}

// Object looks up an object by name.
func (s *Scene) Object(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// ObjectByID looks up an object by ID. It returns nil for removed objects.
func (s *Scene) ObjectByID(id string) *Object {
	return s.byID[id]
}

// Rename changes obj's name. The name must be unique among the scene's objects.
func (s *Scene) Rename(obj *Object, name string) error {
	if obj == nil || obj.scene != s {
		return ErrNotFound
	}
	if name == "" {
		return ErrEmptyName
	}
	if name == obj.Name {
		return nil
	}
	if s.Object(name) != nil {
		return fmt.Errorf("rename %q to %q: %w", obj.Name, name, ErrNameCollision)
	}
	obj.Name = name
	s.fire(s.Hooks.GraphChanged)
	return nil
}

// Camera returns the native current camera.
func (s *Scene) Camera() *Object { return s.camera }

// SetCamera sets the native current camera and notifies GraphChanged.
func (s *Scene) SetCamera(obj *Object) {
	s.camera = obj
	s.fire(s.Hooks.GraphChanged)
}

// ActiveCamera returns the canonical active camera.
func (s *Scene) ActiveCamera() *Object { return s.activeCamera }

// SetActiveCamera sets the canonical active camera. Only cameras (or nil) are accepted.
func (s *Scene) SetActiveCamera(obj *Object) error {
	if obj != nil && !obj.IsCamera() {
		return ErrWrongType
	}
	s.activeCamera = obj
	s.fire(s.Hooks.ActiveCameraChanged)
	return nil
}

// LastCameraName returns the name of the camera seen by the last completed sync.
func (s *Scene) LastCameraName() string { return s.lastCameraName }

// SetLastCameraName updates the change-detection cache.
func (s *Scene) SetLastCameraName(name string) { s.lastCameraName = name }

// SelectedCameraName returns the value shown by the camera dropdown.
func (s *Scene) SelectedCameraName() string { return s.selectedCameraName }

// SetSelectedCameraName sets the dropdown value and notifies EnumChanged.
func (s *Scene) SetSelectedCameraName(name string) {
	s.selectedCameraName = name
	s.fire(s.Hooks.EnumChanged)
}

// Frame returns the scene's current frame.
func (s *Scene) Frame() int { return s.frameCurrent }

// SetFrame moves the scene to frame and notifies GraphChanged. The host allows
// frames below 1; clamping is left to callers that need it.
func (s *Scene) SetFrame(frame int) {
	s.frameCurrent = frame
	s.fire(s.Hooks.GraphChanged)
}

// Select replaces the object selection.
func (s *Scene) Select(objs ...*Object) {
	s.selected = make(map[string]bool, len(objs))
	for _, o := range objs {
		if o != nil && o.scene == s {
			s.selected[o.ID] = true
		}
	}
}

// SelectedObjects returns the selected objects in population order.
func (s *Scene) SelectedObjects() []*Object {
	var out []*Object
	for _, o := range s.objects {
		if s.selected[o.ID] {
			out = append(out, o)
		}
	}
	return out
}
