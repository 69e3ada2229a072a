package match

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadDetections(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeFixture(t, "detections.json", `[
			{"frame_id": 0, "class": "player", "confidence": 0.91,
			 "box": {"x1": 100, "y1": 200, "x2": 140, "y2": 290}, "object_id": 7},
			{"frame_id": 0, "class": "ball", "confidence": 0.55,
			 "box": {"x1": 640, "y1": 410, "x2": 652, "y2": 422}}
		]`)

		dets, err := LoadDetections(path)
		if err != nil {
			t.Fatalf("LoadDetections failed: %v", err)
		}
		if len(dets) != 2 {
			t.Fatalf("expected 2 detections, got %d", len(dets))
		}
		if dets[0].Class != ClassPlayer || dets[0].ObjectID == nil || *dets[0].ObjectID != 7 {
			t.Errorf("first detection mismatch: %+v", dets[0])
		}
		if dets[1].ObjectID != nil {
			t.Errorf("ball detection should have nil object id, got %v", *dets[1].ObjectID)
		}
	})

	t.Run("confidence out of range rejected", func(t *testing.T) {
		path := writeFixture(t, "detections.json", `[
			{"frame_id": 0, "class": "player", "confidence": 1.2,
			 "box": {"x1": 0, "y1": 0, "x2": 10, "y2": 10}}
		]`)
		if _, err := LoadDetections(path); err == nil {
			t.Fatal("expected validation error for confidence > 1")
		}
	})

	t.Run("inverted box rejected", func(t *testing.T) {
		path := writeFixture(t, "detections.json", `[
			{"frame_id": 0, "class": "player", "confidence": 0.5,
			 "box": {"x1": 50, "y1": 0, "x2": 10, "y2": 10}}
		]`)
		if _, err := LoadDetections(path); err == nil {
			t.Fatal("expected validation error for x1 > x2")
		}
	})

	t.Run("unknown class rejected", func(t *testing.T) {
		path := writeFixture(t, "detections.json", `[
			{"frame_id": 0, "class": "mascot", "confidence": 0.5,
			 "box": {"x1": 0, "y1": 0, "x2": 10, "y2": 10}}
		]`)
		if _, err := LoadDetections(path); err == nil {
			t.Fatal("expected validation error for unknown class")
		}
	})
}

func TestLoadSegments(t *testing.T) {
	t.Run("valid file flattens H", func(t *testing.T) {
		path := writeFixture(t, "homography.json", `[
			{"frame_start": 0, "frame_end": 99,
			 "h": [[0.05, 0, -2.0], [0, 0.05, 1.5], [0, 0, 1]],
			 "keypoints_img": [{"name": "corner_tl", "x": 12.5, "y": 80.0}]}
		]`)

		segs, err := LoadSegments(path)
		if err != nil {
			t.Fatalf("LoadSegments failed: %v", err)
		}
		if len(segs) != 1 {
			t.Fatalf("expected 1 segment, got %d", len(segs))
		}
		s := segs[0]
		if s.H[0] != 0.05 || s.H[2] != -2.0 || s.H[5] != 1.5 || s.H[8] != 1 {
			t.Errorf("H flattened wrong: %v", s.H)
		}
		if len(s.KeypointsImg) != 1 || s.KeypointsImg[0].Name != "corner_tl" {
			t.Errorf("keypoints mismatch: %+v", s.KeypointsImg)
		}
	})

	t.Run("reversed range rejected", func(t *testing.T) {
		path := writeFixture(t, "homography.json", `[
			{"frame_start": 100, "frame_end": 99,
			 "h": [[1, 0, 0], [0, 1, 0], [0, 0, 1]], "keypoints_img": []}
		]`)
		if _, err := LoadSegments(path); err == nil {
			t.Fatal("expected validation error for frame_start > frame_end")
		}
	})
}

func TestBuildTrackMap(t *testing.T) {
	tm := BuildTrackMap([]Track{
		{ObjectID: 7, TeamID: 0, SampleCount: 120},
		{ObjectID: 9, TeamID: 1, SampleCount: 40},
		{ObjectID: 7, TeamID: 1, SampleCount: 200}, // refresh overrides
	})

	if team, ok := tm.TeamFor(7); !ok || team != 1 {
		t.Errorf("TeamFor(7) = %d,%v; want 1,true", team, ok)
	}
	if _, ok := tm.TeamFor(42); ok {
		t.Error("TeamFor(42) should report unknown team")
	}
}

func TestIndexByFrame(t *testing.T) {
	id := func(v int) *int { return &v }
	dets := []Detection{
		{FrameID: 3, Class: ClassPlayer, ObjectID: id(1)},
		{FrameID: 1, Class: ClassBall},
		{FrameID: 3, Class: ClassReferee, ObjectID: id(2)},
	}

	idx := IndexByFrame(dets)
	if len(idx[3]) != 2 {
		t.Fatalf("frame 3 should hold 2 detections, got %d", len(idx[3]))
	}
	// Input order preserved within a frame.
	if idx[3][0].Class != ClassPlayer || idx[3][1].Class != ClassReferee {
		t.Errorf("frame 3 order wrong: %+v", idx[3])
	}
	if len(idx[1]) != 1 || len(idx[0]) != 0 {
		t.Errorf("unexpected index contents: %v", idx)
	}
}
