// Package frames links cameras to a timeline frame.
package frames

import "github.com/Vasu1712/scenyx-lights/internal/models"

// Pull moves the scene to cam's linked frame when the camera uses one.
func Pull(cam *models.Object) {
	scene := cam.Scene()
	if !cam.IsCamera() || scene == nil || !cam.UseFrame {
		return
	}
	scene.SetFrame(models.ClampFrame(cam.Frame))
}

// JumpTo is Pull triggered by an explicit user action.
func JumpTo(cam *models.Object) {
	Pull(cam)
}

// CaptureFromCurrent links cam to the scene's current frame and enables the link.
func CaptureFromCurrent(cam *models.Object) {
	scene := cam.Scene()
	if !cam.IsCamera() || scene == nil {
		return
	}
	cam.SetFrame(scene.Frame())
	cam.UseFrame = true
}
