package trail

import (
	"image"
	"testing"

	"pitchcam/geometry"
	"pitchcam/match"
)

func id(v int) *int { return &v }

func det(frame, object int, cx, cy float64) match.Detection {
	return match.Detection{
		FrameID:  frame,
		Class:    match.ClassPlayer,
		ObjectID: id(object),
		Box:      match.Box{X1: cx - 5, Y1: cy - 10, X2: cx + 5, Y2: cy + 10},
	}
}

func TestBuildWindowBounds(t *testing.T) {
	// window=20 at frame 50 spans [30, 50]: frame 29 is out, frame 30 is in.
	dets := []match.Detection{
		det(29, 7, 100, 100),
		det(30, 7, 110, 100),
		det(50, 7, 200, 100),
	}
	trails := Build(match.IndexByFrame(dets), 50, 20, geometry.UnitScale)

	pts, ok := trails[7]
	if !ok {
		t.Fatal("object 7 should have a trail")
	}
	if len(pts) != 2 {
		t.Fatalf("expected 2 points (frames 30 and 50), got %d: %v", len(pts), pts)
	}
	if pts[0] != image.Pt(110, 100) || pts[1] != image.Pt(200, 100) {
		t.Errorf("trail points wrong: %v", pts)
	}
}

func TestBuildWindowClampsAtZero(t *testing.T) {
	dets := []match.Detection{det(0, 1, 10, 10), det(3, 1, 20, 10)}
	trails := Build(match.IndexByFrame(dets), 5, 20, geometry.UnitScale)
	if len(trails[1]) != 2 {
		t.Errorf("window start must clamp to frame 0, got %v", trails[1])
	}
}

func TestBuildExcludesShortAndUntracked(t *testing.T) {
	single := det(50, 3, 40, 40)
	untracked := match.Detection{FrameID: 50, Class: match.ClassBall,
		Box: match.Box{X1: 0, Y1: 0, X2: 4, Y2: 4}}

	trails := Build(match.IndexByFrame([]match.Detection{single, untracked}), 50, 20, geometry.UnitScale)
	if len(trails) != 0 {
		t.Errorf("single-point and untracked detections must produce no trails, got %v", trails)
	}
}

func TestBuildKeepsDuplicatesWithinFrame(t *testing.T) {
	// Two detections of object 4 on the same frame are both kept.
	dets := []match.Detection{
		det(10, 4, 10, 10),
		det(11, 4, 20, 10),
		det(11, 4, 22, 12),
	}
	trails := Build(match.IndexByFrame(dets), 11, 20, geometry.UnitScale)
	if len(trails[4]) != 3 {
		t.Fatalf("duplicates within a frame must be kept, got %v", trails[4])
	}
	if trails[4][1] != image.Pt(20, 10) || trails[4][2] != image.Pt(22, 12) {
		t.Errorf("within-frame order must follow input order: %v", trails[4])
	}
}

func TestBuildOrdersByFrame(t *testing.T) {
	dets := []match.Detection{
		det(12, 9, 30, 0),
		det(10, 9, 10, 0),
		det(11, 9, 20, 0),
	}
	trails := Build(match.IndexByFrame(dets), 12, 20, geometry.UnitScale)
	want := []image.Point{image.Pt(10, 0), image.Pt(20, 0), image.Pt(30, 0)}
	for i, p := range want {
		if trails[9][i] != p {
			t.Fatalf("trail must be ordered by frame: got %v, want %v", trails[9], want)
		}
	}
}

func TestBuildAppliesViewportScale(t *testing.T) {
	dets := []match.Detection{det(10, 2, 100, 200), det(11, 2, 120, 200)}
	scale := geometry.ScaleFor(960, 540, 1920, 1080)

	trails := Build(match.IndexByFrame(dets), 11, 20, scale)
	if trails[2][0] != image.Pt(50, 100) {
		t.Errorf("scaled point wrong: %v", trails[2][0])
	}
}

func TestBuildFromSliceMatchesIndexed(t *testing.T) {
	dets := []match.Detection{
		det(40, 1, 10, 10),
		det(42, 1, 30, 10),
		det(41, 1, 20, 10),
		det(41, 2, 99, 99),
		det(42, 2, 98, 97),
	}
	a := Build(match.IndexByFrame(dets), 42, 20, geometry.UnitScale)
	b := BuildFromSlice(dets, 42, 20, geometry.UnitScale)

	if len(a) != len(b) {
		t.Fatalf("indexed and flat builds disagree: %v vs %v", a, b)
	}
	for id, pts := range a {
		if len(b[id]) != len(pts) {
			t.Fatalf("object %d trail length differs: %v vs %v", id, pts, b[id])
		}
		for i := range pts {
			if b[id][i] != pts[i] {
				t.Errorf("object %d point %d differs: %v vs %v", id, i, pts[i], b[id][i])
			}
		}
	}
}
