package enum

import (
	"testing"

	"github.com/Vasu1712/scenyx-lights/internal/models"
)

func TestListCamerasEmptyYieldsSentinel(t *testing.T) {
	s := models.NewScene("empty")
	if _, err := s.AddObject("Key", models.ObjectLight); err != nil {
		t.Fatal(err)
	}

	items := Items(s)
	if len(items) != 1 || items[0].Value != NoneValue || items[0].Label != NoneLabel {
		t.Fatalf("got %v, want single NONE item", items)
	}
	if Resolve(s, items[0].Value) != nil {
		t.Fatal("sentinel resolved to an object")
	}
}

func TestListCamerasOrderAndRestart(t *testing.T) {
	s := models.NewScene("cams")
	for _, n := range []string{"B", "Key", "A"} {
		typ := models.ObjectCamera
		if n == "Key" {
			typ = models.ObjectLight
		}
		if _, err := s.AddObject(n, typ); err != nil {
			t.Fatal(err)
		}
	}

	seq := ListCameras(s)
	for pass := 0; pass < 2; pass++ {
		var got []string
		for value := range seq {
			got = append(got, value)
		}
		if len(got) != 2 || got[0] != "B" || got[1] != "A" {
			t.Fatalf("pass %d: got %v, want [B A]", pass, got)
		}
	}

	// The sequence is not cached: later population changes show up.
	if _, err := s.AddObject("C", models.ObjectCamera); err != nil {
		t.Fatal(err)
	}
	count := 0
	for range seq {
		count++
	}
	if count != 3 {
		t.Fatalf("got %d cameras after add, want 3", count)
	}
}

func TestListCamerasStopsEarly(t *testing.T) {
	s := models.NewScene("stop")
	for _, n := range []string{"A", "B", "C"} {
		if _, err := s.AddObject(n, models.ObjectCamera); err != nil {
			t.Fatal(err)
		}
	}
	var got []string
	for value := range ListCameras(s) {
		got = append(got, value)
		break
	}
	if len(got) != 1 || got[0] != "A" {
		t.Fatalf("got %v", got)
	}
}

func TestResolve(t *testing.T) {
	s := models.NewScene("resolve")
	cam, _ := s.AddObject("Cam", models.ObjectCamera)
	_, _ = s.AddObject("Key", models.ObjectLight)

	cases := []struct {
		value string
		want  *models.Object
	}{
		{"Cam", cam},
		{"Key", nil},
		{"Missing", nil},
		{"", nil},
		{NoneValue, nil},
	}
	for _, tc := range cases {
		if got := Resolve(s, tc.value); got != tc.want {
			t.Errorf("Resolve(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
