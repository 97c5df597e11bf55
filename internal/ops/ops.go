// Package ops holds the user-facing commands of the light rig. Each command
// acts on the scene's active camera and reports whether it ran.
package ops

import (
	"github.com/Vasu1712/scenyx-lights/internal/frames"
	"github.com/Vasu1712/scenyx-lights/internal/lights"
	"github.com/Vasu1712/scenyx-lights/internal/models"
	"github.com/Vasu1712/scenyx-lights/internal/selection"
)

// Result is the outcome of a command.
type Result string

const (
	Finished  Result = "FINISHED"
	Cancelled Result = "CANCELLED" // No active camera, or the target was missing or of the wrong type
)

// Operators runs commands against the scene owned by a selection controller.
type Operators struct {
	ctrl *selection.Controller
}

// New returns the operators for ctrl's scene.
func New(ctrl *selection.Controller) *Operators {
	return &Operators{ctrl: ctrl}
}

func (o *Operators) activeCamera() *models.Object {
	scene := o.ctrl.Scene()
	if scene == nil {
		return nil
	}
	return scene.ActiveCamera()
}

// ToggleLight flips the assignment of the named light on the active camera.
func (o *Operators) ToggleLight(name string) Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	light := cam.Scene().Object(name)
	if !light.IsLight() {
		return Cancelled
	}
	lights.Toggle(cam, light)
	lights.Apply(cam)
	return Finished
}

// AssignSelected assigns every selected light to the active camera.
func (o *Operators) AssignSelected() Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	lights.AssignMany(cam, cam.Scene().SelectedObjects())
	lights.Apply(cam)
	return Finished
}

// ClearLights removes every assignment from the active camera, hiding all lights.
func (o *Operators) ClearLights() Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	lights.Clear(cam)
	lights.Apply(cam)
	return Finished
}

// SetFrameFromCurrent links the active camera to the scene's current frame.
func (o *Operators) SetFrameFromCurrent() Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	frames.CaptureFromCurrent(cam)
	return Finished
}

// JumpToFrame moves the scene to the active camera's linked frame.
func (o *Operators) JumpToFrame() Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	frames.JumpTo(cam)
	return Finished
}

// SetCameraFrame edits the active camera's frame link without moving the scene.
func (o *Operators) SetCameraFrame(frame int, useFrame bool) Result {
	cam := o.activeCamera()
	if cam == nil {
		return Cancelled
	}
	cam.SetFrame(frame)
	cam.UseFrame = useFrame
	return Finished
}

// Rename renames any object in the scene. Name collisions are returned as
// models.ErrNameCollision and leave the object untouched.
func (o *Operators) Rename(oldName, newName string) (Result, error) {
	scene := o.ctrl.Scene()
	if scene == nil {
		return Cancelled, models.ErrNotFound
	}
	obj := scene.Object(oldName)
	if obj == nil {
		return Cancelled, models.ErrNotFound
	}
	if err := o.ctrl.Rename(obj, newName); err != nil {
		return Cancelled, err
	}
	return Finished, nil
}
