// Package match holds the per-match computer-vision data the renderers
// consume: object detections, team assignments, and the homography segments
// relating the image plane to pitch meters. Everything here is immutable
// once loaded.
package match

import (
	"pitchcam/geometry"
)

// Class is the detection class emitted by the upstream vision pipeline.
type Class string

const (
	ClassPlayer     Class = "player"
	ClassGoalkeeper Class = "goalkeeper"
	ClassReferee    Class = "referee"
	ClassBall       Class = "ball"
	ClassOther      Class = "other"
)

// Box is an axis-aligned bounding box in source-video pixel space,
// x1 <= x2 and y1 <= y2.
type Box struct {
	X1 float64 `json:"x1" validate:"ltefield=X2"`
	Y1 float64 `json:"y1" validate:"ltefield=Y2"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width returns the box width in pixels.
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height returns the box height in pixels.
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// BottomCenter returns the midpoint of the bottom edge, the approximate
// ground-contact point of the detected object.
func (b Box) BottomCenter() geometry.Point {
	return geometry.Point{X: (b.X1 + b.X2) / 2, Y: b.Y2}
}

// Center returns the box center.
func (b Box) Center() geometry.Point {
	return geometry.Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// Detection is one detected object on one analyzed frame. ObjectID is nil
// when the tracker did not associate the detection with a persistent object.
type Detection struct {
	FrameID    int     `json:"frame_id" validate:"gte=0"`
	Class      Class   `json:"class" validate:"oneof=player goalkeeper referee ball other"`
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	Box        Box     `json:"box"`
	ObjectID   *int    `json:"object_id,omitempty"`
}

// Track assigns a tracked object to a team. Many detections sharing an
// object_id map to one Track.
type Track struct {
	ObjectID    int `json:"object_id"`
	TeamID      int `json:"team_id"`
	SampleCount int `json:"sample_count" validate:"gte=0"`
}

// TrackMap indexes tracks by object id. A missing entry means "team
// unknown", never an error.
type TrackMap map[int]Track

// BuildTrackMap indexes a track list by object id. Later entries win on a
// duplicate object id, matching refresh-on-demand semantics.
func BuildTrackMap(tracks []Track) TrackMap {
	tm := make(TrackMap, len(tracks))
	for _, tr := range tracks {
		tm[tr.ObjectID] = tr
	}
	return tm
}

// TeamFor resolves the team for an object id.
func (tm TrackMap) TeamFor(objectID int) (int, bool) {
	tr, ok := tm[objectID]
	if !ok {
		return 0, false
	}
	return tr.TeamID, true
}

// Keypoint is a detected pitch landmark in source-video pixel space, one of
// the correspondences the homography was fitted from.
type Keypoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// HomographySegment declares one homography valid over an inclusive frame
// range. H maps image pixels (homogeneous) to pitch meters.
type HomographySegment struct {
	FrameStart   int
	FrameEnd     int
	H            geometry.Matrix3
	KeypointsImg []Keypoint
}

// Contains reports whether the segment covers the given frame index.
func (s HomographySegment) Contains(frame int) bool {
	return s.FrameStart <= frame && frame <= s.FrameEnd
}

// FrameDetections indexes detections by frame id so per-frame lookups stay
// cheap while scrubbing at sampling rate.
type FrameDetections map[int][]Detection

// IndexByFrame groups detections by frame id, preserving input order within
// each frame.
func IndexByFrame(dets []Detection) FrameDetections {
	idx := make(FrameDetections)
	for _, d := range dets {
		idx[d.FrameID] = append(idx[d.FrameID], d)
	}
	return idx
}
