package frames

import (
	"testing"

	"github.com/Vasu1712/scenyx-lights/internal/models"
)

func newCamera(t *testing.T) (*models.Scene, *models.Object) {
	t.Helper()
	s := models.NewScene("frames")
	cam, err := s.AddObject("Cam", models.ObjectCamera)
	if err != nil {
		t.Fatalf("AddObject: %v", err)
	}
	return s, cam
}

func TestCaptureFromCurrent(t *testing.T) {
	cases := []struct {
		name    string
		current int
		want    int
	}{
		{"positive", 42, 42},
		{"zero_clamps", 0, 1},
		{"negative_clamps", -7, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, cam := newCamera(t)
			s.SetFrame(tc.current)
			CaptureFromCurrent(cam)
			if cam.Frame != tc.want || !cam.UseFrame {
				t.Fatalf("frame=%d useFrame=%v, want %d true", cam.Frame, cam.UseFrame, tc.want)
			}
		})
	}
}

func TestPull(t *testing.T) {
	cases := []struct {
		name     string
		frame    int
		useFrame bool
		want     int
	}{
		{"disabled", 30, false, 5},
		{"enabled", 30, true, 30},
		{"enabled_clamped", -3, true, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, cam := newCamera(t)
			s.SetFrame(5)
			cam.Frame = tc.frame // bypass SetFrame to exercise the clamp in Pull
			cam.UseFrame = tc.useFrame
			Pull(cam)
			if s.Frame() != tc.want {
				t.Fatalf("scene frame=%d, want %d", s.Frame(), tc.want)
			}
		})
	}
}

func TestJumpToMatchesPull(t *testing.T) {
	s, cam := newCamera(t)
	cam.SetFrame(12)
	cam.UseFrame = true
	JumpTo(cam)
	if s.Frame() != 12 {
		t.Fatalf("scene frame=%d, want 12", s.Frame())
	}
}

func TestNilCameraIsNoop(t *testing.T) {
	Pull(nil)
	JumpTo(nil)
	CaptureFromCurrent(nil)
}
