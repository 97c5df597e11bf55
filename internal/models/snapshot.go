package models

import (
	"errors"
	"fmt"
)

// SceneSnapshot is the persisted form of a Scene. Camera slots are stored by
// object ID; light assignments keep their raw references, dangling or not.
type SceneSnapshot struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Objects            []Object `json:"objects"`
	CameraID           string   `json:"cameraId,omitempty"`
	ActiveCameraID     string   `json:"activeCameraId,omitempty"`
	LastCameraName     string   `json:"lastCameraName"`
	SelectedCameraName string   `json:"selectedCameraName"`
	FrameCurrent       int      `json:"frameCurrent"`
	SelectedIDs        []string `json:"selectedIds,omitempty"`
}

// Snapshot captures the scene's persisted state.
func (s *Scene) Snapshot() SceneSnapshot {
	snap := SceneSnapshot{
		ID:                 s.ID,
		Name:               s.Name,
		Objects:            make([]Object, 0, len(s.objects)),
		LastCameraName:     s.lastCameraName,
		SelectedCameraName: s.selectedCameraName,
		FrameCurrent:       s.frameCurrent,
	}
	for _, o := range s.objects {
		cp := *o
		cp.scene = nil
		cp.Lights = append([]LightRef(nil), o.Lights...)
		snap.Objects = append(snap.Objects, cp)
		if s.selected[o.ID] {
			snap.SelectedIDs = append(snap.SelectedIDs, o.ID)
		}
	}
	if s.camera != nil {
		snap.CameraID = s.camera.ID
	}
	if s.activeCamera != nil {
		snap.ActiveCameraID = s.activeCamera.ID
	}
	return snap
}

// Validate checks that a snapshot describes a scene the model can hold: a
// scene ID, and objects with unique non-empty IDs and names of a known type.
func (snap SceneSnapshot) Validate() error {
	if snap.ID == "" {
		return errors.New("snapshot has no scene id")
	}
	ids := make(map[string]bool, len(snap.Objects))
	names := make(map[string]bool, len(snap.Objects))
	for _, o := range snap.Objects {
		if o.ID == "" || ids[o.ID] {
			return fmt.Errorf("snapshot %s: object %q has a missing or duplicate id", snap.ID, o.Name)
		}
		if o.Name == "" {
			return fmt.Errorf("snapshot %s: object %s: %w", snap.ID, o.ID, ErrEmptyName)
		}
		if names[o.Name] {
			return fmt.Errorf("snapshot %s: object %q: %w", snap.ID, o.Name, ErrNameCollision)
		}
		if !o.Type.Valid() {
			return fmt.Errorf("snapshot %s: object %q of type %q: %w", snap.ID, o.Name, o.Type, ErrWrongType)
		}
		ids[o.ID] = true
		names[o.Name] = true
	}
	return nil
}

// Restore rebuilds a Scene from a snapshot. No hooks are installed, so nothing
// fires while the scene is rebuilt. Frames below 1 are clamped to 1; callers
// loading untrusted data run Validate first.
func Restore(snap SceneSnapshot) *Scene {
	s := NewScene(snap.Name)
	if snap.ID != "" {
		s.ID = snap.ID
	}
	for i := range snap.Objects {
		obj := snap.Objects[i]
		obj.Lights = append([]LightRef(nil), obj.Lights...)
		if obj.Type == ObjectCamera {
			obj.Frame = ClampFrame(obj.Frame)
		}
		s.insert(&obj)
	}
	s.camera = s.byID[snap.CameraID]
	if cam := s.byID[snap.ActiveCameraID]; cam.IsCamera() {
		s.activeCamera = cam
	}
	s.lastCameraName = snap.LastCameraName
	s.selectedCameraName = snap.SelectedCameraName
	s.frameCurrent = ClampFrame(snap.FrameCurrent)
	for _, id := range snap.SelectedIDs {
		if _, ok := s.byID[id]; ok {
			s.selected[id] = true
		}
	}
	return s
}
