// Package selection keeps a scene's active camera, its native current camera
// and its camera dropdown in agreement, and applies the active camera's light
// rig and frame link whenever the camera changes.
package selection

import (
	"errors"
	"log"

	"github.com/Vasu1712/scenyx-lights/internal/enum"
	"github.com/Vasu1712/scenyx-lights/internal/frames"
	"github.com/Vasu1712/scenyx-lights/internal/lights"
	"github.com/Vasu1712/scenyx-lights/internal/models"
)

// ErrSyncInProgress is returned by operations that cannot run while a sync is in flight.
var ErrSyncInProgress = errors.New("camera sync in progress")

// Controller is the single entry point for every camera change on one scene.
// It is not safe for concurrent use; callers serialize access per scene.
type Controller struct {
	scene   *models.Scene
	syncing bool // Set for the duration of a guarded body; nested triggers are dropped
	syncs   int
}

// NewController creates a controller for scene and installs the scene hooks
// that route host notifications back into it.
func NewController(scene *models.Scene) *Controller {
	c := &Controller{scene: scene}
	if scene != nil {
		scene.Hooks = models.Hooks{
			GraphChanged: func(s *models.Scene) {
				c.OnExternalCameraChange(s.Camera())
			},
			ActiveCameraChanged: func(s *models.Scene) {
				c.SelectCamera(s.ActiveCamera())
			},
			EnumChanged: func(s *models.Scene) {
				c.OnEnumChange(s.SelectedCameraName())
			},
		}
	}
	return c
}

// Scene returns the controlled scene.
func (c *Controller) Scene() *models.Scene { return c.scene }

// InProgress reports whether a sync is currently in flight.
func (c *Controller) InProgress() bool { return c.syncing }

// Syncs returns the number of completed camera syncs.
func (c *Controller) Syncs() int { return c.syncs }

// guard runs fn with the re-entrancy latch held. It reports false without
// running fn if the latch is already held.
func (c *Controller) guard(fn func()) bool {
	if c.syncing {
		return false
	}
	c.syncing = true
	defer func() { c.syncing = false }()
	fn()
	return true
}

// SelectCamera makes cam the active camera: it updates the native camera and
// both name caches, then applies cam's lights and frame. A nil cam clears the
// active camera and the dropdown but leaves lights and the timeline alone.
// Calls made while a sync is already in flight are dropped.
func (c *Controller) SelectCamera(cam *models.Object) {
	if c.syncing {
		return
	}
	scene := c.scene
	if scene == nil {
		return
	}
	if cam != nil && (!cam.IsCamera() || cam.Scene() != scene) {
		return
	}

	c.guard(func() {
		if cam == nil {
			if scene.ActiveCamera() != nil {
				_ = scene.SetActiveCamera(nil)
			}
			if scene.SelectedCameraName() != "" {
				scene.SetSelectedCameraName("")
			}
			return
		}

		if scene.ActiveCamera() != cam {
			_ = scene.SetActiveCamera(cam)
		}
		if scene.Camera() != cam {
			scene.SetCamera(cam)
		}
		scene.SetLastCameraName(cam.Name)
		if scene.SelectedCameraName() != cam.Name {
			scene.SetSelectedCameraName(cam.Name)
		}
		lights.Apply(cam)
		frames.Pull(cam)

		c.syncs++
		log.Printf("[Selection] Scene %s synced to camera %s (lights=%d, frame=%d)",
			scene.ID, cam.Name, len(cam.Lights), scene.Frame())
	})
}

// OnExternalCameraChange handles a change notification from the host. It only
// acts when the native camera is a camera whose name differs from the last
// synced one, so it is cheap to call after every scene mutation.
func (c *Controller) OnExternalCameraChange(native *models.Object) {
	if c.scene == nil || !native.IsCamera() {
		return
	}
	if native.Name == c.scene.LastCameraName() {
		return
	}
	c.SelectCamera(native)
}

// OnEnumChange handles a new dropdown value. Values that do not resolve to a
// camera leave the active camera unchanged and reset the dropdown to it.
func (c *Controller) OnEnumChange(name string) {
	scene := c.scene
	if scene == nil {
		return
	}
	if cam := enum.Resolve(scene, name); cam != nil {
		c.SelectCamera(cam)
		return
	}
	c.guard(func() {
		want := ""
		if active := scene.ActiveCamera(); active != nil {
			want = active.Name
		}
		if scene.SelectedCameraName() != want {
			scene.SetSelectedCameraName(want)
		}
	})
}

// RenderPre re-applies visibility for the native camera right before a render,
// regardless of how the selection got there.
func (c *Controller) RenderPre() {
	if c.scene == nil {
		return
	}
	if cam := c.scene.Camera(); cam.IsCamera() {
		lights.Apply(cam)
	}
}

// Rename renames obj. Renaming the camera the caches point at moves the caches
// along with it, so the rename is not mistaken for a camera change.
func (c *Controller) Rename(obj *models.Object, name string) error {
	scene := c.scene
	if scene == nil {
		return models.ErrNotFound
	}
	var err error
	ran := c.guard(func() {
		oldName := ""
		if obj != nil {
			oldName = obj.Name
		}
		if err = scene.Rename(obj, name); err != nil {
			return
		}
		if obj.IsCamera() && scene.LastCameraName() == oldName {
			scene.SetLastCameraName(obj.Name)
		}
		if obj == scene.ActiveCamera() && scene.SelectedCameraName() != obj.Name {
			scene.SetSelectedCameraName(obj.Name)
		}
	})
	if !ran {
		return ErrSyncInProgress
	}
	if err != nil {
		log.Printf("[Selection] Rename refused for scene %s: %v", scene.ID, err)
	}
	return err
}
