// Package panel builds the view model drawn by light rig clients.
package panel

import (
	"github.com/Vasu1712/scenyx-lights/internal/enum"
	"github.com/Vasu1712/scenyx-lights/internal/lights"
	"github.com/Vasu1712/scenyx-lights/internal/models"
)

const (
	noCameraFrameHint  = "Select a camera to set frame"
	noCameraLightsHint = "Select a camera to assign lights"
)

// LightRow is one light in the light list.
type LightRow struct {
	Name         string `json:"name"`
	Assigned     bool   `json:"assigned"`
	HideViewport bool   `json:"hideViewport"`
	HideRender   bool   `json:"hideRender"`
}

// FrameBox is the active camera's frame link.
type FrameBox struct {
	UseFrame bool `json:"useFrame"`
	Frame    int  `json:"frame"`
}

// Panel is everything a client needs to draw one scene's controls.
type Panel struct {
	SceneID        string      `json:"sceneId"`
	SceneName      string      `json:"sceneName"`
	SceneFrame     int         `json:"sceneFrame"`
	Cameras        []enum.Item `json:"cameras"`
	SelectedCamera string      `json:"selectedCamera"`
	ActiveCamera   string      `json:"activeCamera,omitempty"`
	NativeCamera   string      `json:"nativeCamera,omitempty"`
	FrameBox       *FrameBox   `json:"frameBox,omitempty"`
	Lights         []LightRow  `json:"lights"`
	Hints          []string    `json:"hints,omitempty"`
}

// Build reads scene into a Panel. It prunes the active camera's dangling
// assignments as a side effect, like any other read of them.
func Build(scene *models.Scene) Panel {
	p := Panel{
		SceneID:        scene.ID,
		SceneName:      scene.Name,
		SceneFrame:     scene.Frame(),
		Cameras:        enum.Items(scene),
		SelectedCamera: scene.SelectedCameraName(),
		Lights:         []LightRow{},
	}
	if native := scene.Camera(); native != nil {
		p.NativeCamera = native.Name
	}

	cam := scene.ActiveCamera()
	if cam == nil {
		p.Hints = []string{noCameraFrameHint, noCameraLightsHint}
		return p
	}
	p.ActiveCamera = cam.Name
	p.FrameBox = &FrameBox{UseFrame: cam.UseFrame, Frame: cam.Frame}

	assigned := lights.AssignedSet(cam)
	for _, light := range scene.Lights() {
		_, ok := assigned[light.ID]
		p.Lights = append(p.Lights, LightRow{
			Name:         light.Name,
			Assigned:     ok,
			HideViewport: light.HideViewport,
			HideRender:   light.HideRender,
		})
	}
	return p
}
