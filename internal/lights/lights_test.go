package lights

import (
	"testing"

	"github.com/Vasu1712/scenyx-lights/internal/models"
)

func mustAdd(t *testing.T, s *models.Scene, name string, typ models.ObjectType) *models.Object {
	t.Helper()
	obj, err := s.AddObject(name, typ)
	if err != nil {
		t.Fatalf("AddObject(%q): %v", name, err)
	}
	return obj
}

func refIDs(cam *models.Object) []string {
	ids := make([]string, 0, len(cam.Lights))
	for _, ref := range cam.Lights {
		ids = append(ids, ref.ObjectID)
	}
	return ids
}

func TestToggleParity(t *testing.T) {
	for n := 0; n <= 5; n++ {
		s := models.NewScene("parity")
		cam := mustAdd(t, s, "Cam", models.ObjectCamera)
		key := mustAdd(t, s, "Key", models.ObjectLight)
		fill := mustAdd(t, s, "Fill", models.ObjectLight)
		Toggle(cam, fill)

		for i := 0; i < n; i++ {
			Toggle(cam, key)
		}
		if got, want := IsAssigned(cam, key), n%2 == 1; got != want {
			t.Fatalf("after %d toggles assigned=%v, want %v", n, got, want)
		}
		if !IsAssigned(cam, fill) {
			t.Fatalf("after %d toggles of Key, Fill should still be assigned", n)
		}
	}
}

func TestToggleIgnoresNonLights(t *testing.T) {
	s := models.NewScene("types")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	other := mustAdd(t, s, "Cam2", models.ObjectCamera)
	mesh := mustAdd(t, s, "Cube", models.ObjectMesh)

	Toggle(cam, other)
	Toggle(cam, mesh)
	Toggle(cam, nil)
	if len(cam.Lights) != 0 {
		t.Fatalf("expected no assignments, got %v", refIDs(cam))
	}
}

func TestPruneDropsDanglingAndIsIdempotent(t *testing.T) {
	s := models.NewScene("prune")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	a := mustAdd(t, s, "A", models.ObjectLight)
	b := mustAdd(t, s, "B", models.ObjectLight)
	c := mustAdd(t, s, "C", models.ObjectLight)
	AssignMany(cam, []*models.Object{a, b, c})

	if err := s.RemoveObject(b); err != nil {
		t.Fatalf("RemoveObject: %v", err)
	}
	if len(cam.Lights) != 3 {
		t.Fatalf("removal should not touch assignments eagerly, got %d", len(cam.Lights))
	}

	Prune(cam)
	once := refIDs(cam)
	Prune(cam)
	twice := refIDs(cam)

	want := []string{a.ID, c.ID}
	if len(once) != len(want) || once[0] != want[0] || once[1] != want[1] {
		t.Fatalf("after prune got %v, want %v", once, want)
	}
	if len(twice) != len(once) || twice[0] != once[0] || twice[1] != once[1] {
		t.Fatalf("prune not idempotent: %v then %v", once, twice)
	}
}

func TestAssignedSetPrunes(t *testing.T) {
	s := models.NewScene("set")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	a := mustAdd(t, s, "A", models.ObjectLight)
	b := mustAdd(t, s, "B", models.ObjectLight)
	AssignMany(cam, []*models.Object{a, b})
	_ = s.RemoveObject(a)

	set := AssignedSet(cam)
	if len(set) != 1 || set[b.ID] != b {
		t.Fatalf("expected only B in assigned set, got %v", set)
	}
	if len(cam.Lights) != 1 {
		t.Fatalf("expected dangling ref pruned, got %v", refIDs(cam))
	}
}

func TestAssignMany(t *testing.T) {
	s := models.NewScene("many")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	a := mustAdd(t, s, "A", models.ObjectLight)
	b := mustAdd(t, s, "B", models.ObjectLight)
	c := mustAdd(t, s, "C", models.ObjectLight)
	mesh := mustAdd(t, s, "Cube", models.ObjectMesh)

	cases := []struct {
		name  string
		start []*models.Object
		input []*models.Object
		want  []string
	}{
		{"input_order", nil, []*models.Object{c, a}, []string{c.ID, a.ID}},
		{"skips_existing", []*models.Object{b}, []*models.Object{a, b, c}, []string{b.ID, a.ID, c.ID}},
		{"skips_non_lights", nil, []*models.Object{mesh, a, nil}, []string{a.ID}},
		{"batch_duplicates_kept", nil, []*models.Object{a, a}, []string{a.ID, a.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			Clear(cam)
			AssignMany(cam, tc.start)
			AssignMany(cam, tc.input)
			got := refIDs(cam)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestClear(t *testing.T) {
	s := models.NewScene("clear")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	a := mustAdd(t, s, "A", models.ObjectLight)
	Toggle(cam, a)
	Clear(cam)
	if len(AssignedSet(cam)) != 0 {
		t.Fatal("expected no assigned lights after Clear")
	}
}

func TestApplyProjectsVisibility(t *testing.T) {
	s := models.NewScene("apply")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	l1 := mustAdd(t, s, "L1", models.ObjectLight)
	l2 := mustAdd(t, s, "L2", models.ObjectLight)
	l3 := mustAdd(t, s, "L3", models.ObjectLight)
	mesh := mustAdd(t, s, "Cube", models.ObjectMesh)

	// Start from inconsistent flags to show prior state does not matter.
	l1.HideViewport, l1.HideRender = true, false
	l3.HideViewport, l3.HideRender = false, false
	mesh.HideViewport = true

	AssignMany(cam, []*models.Object{l1, l2})
	Apply(cam)

	assigned := AssignedSet(cam)
	for _, l := range s.Lights() {
		_, ok := assigned[l.ID]
		if l.HideViewport != !ok || l.HideRender != !ok {
			t.Fatalf("%s: hideViewport=%v hideRender=%v, assigned=%v", l.Name, l.HideViewport, l.HideRender, ok)
		}
	}
	if !l3.HideViewport || !l3.HideRender {
		t.Fatal("unassigned L3 should be hidden")
	}
	if !mesh.HideViewport || mesh.HideRender {
		t.Fatal("non-light objects must not be touched")
	}
}

func TestApplyWithoutCameraIsNoop(t *testing.T) {
	s := models.NewScene("noop")
	l := mustAdd(t, s, "L", models.ObjectLight)
	l.HideRender = true
	Apply(nil)
	if !l.HideRender || l.HideViewport {
		t.Fatal("Apply(nil) changed light flags")
	}
}

func TestToggleRemovesOneCopyOfBatchDuplicate(t *testing.T) {
	s := models.NewScene("dup")
	cam := mustAdd(t, s, "Cam", models.ObjectCamera)
	key := mustAdd(t, s, "Key", models.ObjectLight)

	AssignMany(cam, []*models.Object{key, key})
	Toggle(cam, key)
	if len(cam.Lights) != 1 || !IsAssigned(cam, key) {
		t.Fatalf("after one toggle: %v", refIDs(cam))
	}
	Toggle(cam, key)
	if len(cam.Lights) != 0 {
		t.Fatalf("after two toggles: %v", refIDs(cam))
	}
}
