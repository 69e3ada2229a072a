// Package trail builds per-object trajectory polylines from the recent
// detection window. Trails are recomputed in full on every draw; the
// detection set can be refreshed mid-session, so nothing here keeps state
// between calls.
package trail

import (
	"image"
	"sort"

	"pitchcam/geometry"
	"pitchcam/match"
)

// DefaultWindow is the trailing window length in frames.
const DefaultWindow = 20

// Build aggregates box-center positions of tracked detections over the
// trailing frame window [max(0, current-window), current] into ordered
// polylines, keyed by object id. Points are mapped through the viewport
// scale. Detections without an object id are skipped; duplicate entries for
// one object within a frame are all kept. Trails shorter than two points
// are dropped since there is nothing to connect.
func Build(byFrame match.FrameDetections, currentFrame, window int, scale geometry.Scale) map[int][]image.Point {
	first := currentFrame - window
	if first < 0 {
		first = 0
	}

	trails := make(map[int][]image.Point)
	for f := first; f <= currentFrame; f++ {
		for _, d := range byFrame[f] {
			if d.ObjectID == nil {
				continue
			}
			p := scale.Apply(d.Box.Center())
			trails[*d.ObjectID] = append(trails[*d.ObjectID], image.Pt(int(p.X), int(p.Y)))
		}
	}

	for id, pts := range trails {
		if len(pts) < 2 {
			delete(trails, id)
		}
	}
	return trails
}

// BuildFromSlice is Build over a flat detection slice, for callers that
// have not indexed by frame. Ordering follows increasing frame id, with
// input order preserved inside a frame.
func BuildFromSlice(dets []match.Detection, currentFrame, window int, scale geometry.Scale) map[int][]image.Point {
	first := currentFrame - window
	if first < 0 {
		first = 0
	}

	inWindow := make([]match.Detection, 0, len(dets))
	for _, d := range dets {
		if d.ObjectID != nil && d.FrameID >= first && d.FrameID <= currentFrame {
			inWindow = append(inWindow, d)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].FrameID < inWindow[j].FrameID
	})

	trails := make(map[int][]image.Point)
	for _, d := range inWindow {
		p := scale.Apply(d.Box.Center())
		trails[*d.ObjectID] = append(trails[*d.ObjectID], image.Pt(int(p.X), int(p.Y)))
	}
	for id, pts := range trails {
		if len(pts) < 2 {
			delete(trails, id)
		}
	}
	return trails
}
