// Package timeline maps continuous playback time onto the discrete frame
// grid the vision pipeline was sampled at, and selects which homography
// segment covers the resulting frame.
package timeline

import (
	"math"

	"pitchcam/match"
)

// DefaultSamplingRate is the analysis rate of the current overlay pipeline.
const DefaultSamplingRate = 25

// FrameIndex converts a playback position in seconds to the frame index at
// the given sampling rate: floor(time * rate). Decoder clocks can report a
// small negative time right after a seek; that clamps to frame 0.
func FrameIndex(seconds float64, rateHz int) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Floor(seconds * float64(rateHz)))
}

// SelectSegment returns the homography segment covering the frame. Segment
// ranges are inclusive on both ends. Ranges are expected to be disjoint;
// if they ever overlap the pick is still deterministic: smallest
// frame_start wins, then smallest frame_end, then file order.
func SelectSegment(segments []match.HomographySegment, frame int) (match.HomographySegment, bool) {
	var best match.HomographySegment
	found := false
	for _, s := range segments {
		if !s.Contains(frame) {
			continue
		}
		if !found || s.FrameStart < best.FrameStart ||
			(s.FrameStart == best.FrameStart && s.FrameEnd < best.FrameEnd) {
			best = s
			found = true
		}
	}
	return best, found
}
