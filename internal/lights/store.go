// Package lights keeps each camera's list of assigned lights and projects that
// list onto the scene's light visibility flags.
package lights

import "github.com/Vasu1712/scenyx-lights/internal/models"

func resolve(cam *models.Object, ref models.LightRef) *models.Object {
	scene := cam.Scene()
	if scene == nil {
		return nil
	}
	if obj := scene.ObjectByID(ref.ObjectID); obj.IsLight() {
		return obj
	}
	return nil
}

// Prune drops every assignment on cam whose light no longer resolves.
func Prune(cam *models.Object) {
	if !cam.IsCamera() {
		return
	}
	kept := cam.Lights[:0]
	for _, ref := range cam.Lights {
		if resolve(cam, ref) != nil {
			kept = append(kept, ref)
		}
	}
	// Zero the tail so removed refs are not retained by the backing array.
	for i := len(kept); i < len(cam.Lights); i++ {
		cam.Lights[i] = models.LightRef{}
	}
	cam.Lights = kept
}

// AssignedSet returns the distinct lights assigned to cam, keyed by object ID.
func AssignedSet(cam *models.Object) map[string]*models.Object {
	set := make(map[string]*models.Object)
	if !cam.IsCamera() {
		return set
	}
	Prune(cam)
	for _, ref := range cam.Lights {
		if light := resolve(cam, ref); light != nil {
			set[light.ID] = light
		}
	}
	return set
}

// IsAssigned reports whether light is assigned to cam.
func IsAssigned(cam, light *models.Object) bool {
	if light == nil {
		return false
	}
	_, ok := AssignedSet(cam)[light.ID]
	return ok
}

// Toggle removes light from cam's assignments if present (first match only),
// otherwise appends it. Non-light objects are ignored. Toggling twice restores
// the original state only for a light assigned at most once; a light that
// AssignMany appended twice stays assigned after one toggle.
func Toggle(cam, light *models.Object) {
	if !cam.IsCamera() || !light.IsLight() {
		return
	}
	Prune(cam)
	for i, ref := range cam.Lights {
		if ref.ObjectID == light.ID {
			cam.Lights = append(cam.Lights[:i], cam.Lights[i+1:]...)
			return
		}
	}
	cam.Lights = append(cam.Lights, models.LightRef{ObjectID: light.ID})
}

// AssignMany appends every light in objs that cam does not already have, in
// input order. Membership is checked against the assignments present before
// the call, so a light repeated within objs is appended once per occurrence.
func AssignMany(cam *models.Object, objs []*models.Object) {
	if !cam.IsCamera() {
		return
	}
	assigned := AssignedSet(cam)
	for _, obj := range objs {
		if !obj.IsLight() {
			continue
		}
		if _, ok := assigned[obj.ID]; ok {
			continue
		}
		cam.Lights = append(cam.Lights, models.LightRef{ObjectID: obj.ID})
	}
}

// Clear removes all of cam's assignments.
func Clear(cam *models.Object) {
	if !cam.IsCamera() {
		return
	}
	cam.Lights = nil
}
