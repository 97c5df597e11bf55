package selection

import "github.com/Vasu1712/scenyx-lights/internal/models"

// Event is one of the three ways the active camera can change. The set is
// closed: only this package's types implement it.
type Event interface {
	event()
}

// SelectEvent is a direct selection from the UI or API.
type SelectEvent struct {
	Camera *models.Object
}

// NativeCameraEvent reports the host's native current camera after a graph change.
type NativeCameraEvent struct {
	Camera *models.Object
}

// EnumEvent is a new value picked in the camera dropdown.
type EnumEvent struct {
	Name string
}

func (SelectEvent) event()       {}
func (NativeCameraEvent) event() {}
func (EnumEvent) event()         {}

// Handle dispatches ev to the matching entry point.
func (c *Controller) Handle(ev Event) {
	switch ev := ev.(type) {
	case SelectEvent:
		c.SelectCamera(ev.Camera)
	case NativeCameraEvent:
		c.OnExternalCameraChange(ev.Camera)
	case EnumEvent:
		c.OnEnumChange(ev.Name)
	}
}
