package lights

import "github.com/Vasu1712/scenyx-lights/internal/models"

// Apply shows the lights assigned to cam and hides every other light in the
// scene, in both the viewport and renders. Every light is rewritten on each
// call, so prior visibility state does not matter.
func Apply(cam *models.Object) {
	scene := cam.Scene()
	if !cam.IsCamera() || scene == nil {
		return
	}
	assigned := AssignedSet(cam)
	for _, light := range scene.Lights() {
		_, ok := assigned[light.ID]
		light.HideViewport = !ok
		light.HideRender = !ok
	}
}
