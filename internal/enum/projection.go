// Package enum projects the scene's cameras into the items of a dropdown.
package enum

import (
	"iter"

	"github.com/Vasu1712/scenyx-lights/internal/models"
)

// NoneValue is the value of the placeholder item shown when a scene has no
// cameras. No object can be resolved from it.
const (
	NoneValue = "NONE"
	NoneLabel = "No cameras"
)

// Item is one dropdown entry.
type Item struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListCameras yields (value, label) pairs for each camera in population order,
// or the single NONE placeholder when there are none. The sequence reads the
// scene each time it is ranged over and can be iterated any number of times.
func ListCameras(scene *models.Scene) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		found := false
		if scene != nil {
			for _, obj := range scene.Objects() {
				if !obj.IsCamera() {
					continue
				}
				found = true
				if !yield(obj.Name, obj.Name) {
					return
				}
			}
		}
		if !found {
			yield(NoneValue, NoneLabel)
		}
	}
}

// Items collects ListCameras into a slice.
func Items(scene *models.Scene) []Item {
	var items []Item
	for value, label := range ListCameras(scene) {
		items = append(items, Item{Value: value, Label: label})
	}
	return items
}

// Resolve maps a dropdown value back to a camera. It returns nil for unknown
// names and non-camera objects. The NONE placeholder is only listed when the
// scene has no cameras, so it never resolves.
func Resolve(scene *models.Scene, value string) *models.Object {
	if scene == nil || value == "" {
		return nil
	}
	if obj := scene.Object(value); obj.IsCamera() {
		return obj
	}
	return nil
}
