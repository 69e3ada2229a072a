package match

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"pitchcam/geometry"
)

var validate = validator.New()

// segmentRecord is the wire shape of a homography segment. H arrives as a
// nested 3x3 array and is flattened into a geometry.Matrix3 after
// validation.
type segmentRecord struct {
	FrameStart   int           `json:"frame_start" validate:"gte=0"`
	FrameEnd     int           `json:"frame_end" validate:"gtefield=FrameStart"`
	H            [3][3]float64 `json:"h"`
	KeypointsImg []Keypoint    `json:"keypoints_img"`
}

// LoadDetections reads and validates a per-match detection file.
func LoadDetections(path string) ([]Detection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading detections: %w", err)
	}
	var dets []Detection
	if err := json.Unmarshal(raw, &dets); err != nil {
		return nil, fmt.Errorf("parsing detections: %w", err)
	}
	for i, d := range dets {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("detection %d invalid: %w", i, err)
		}
	}
	return dets, nil
}

// LoadTracks reads and validates a per-match team-assignment file.
func LoadTracks(path string) ([]Track, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tracks: %w", err)
	}
	var tracks []Track
	if err := json.Unmarshal(raw, &tracks); err != nil {
		return nil, fmt.Errorf("parsing tracks: %w", err)
	}
	for i, tr := range tracks {
		if err := validate.Struct(tr); err != nil {
			return nil, fmt.Errorf("track %d invalid: %w", i, err)
		}
	}
	return tracks, nil
}

// LoadSegments reads and validates a per-match homography file. Segments
// are returned in file order; selection tie-breaking is the frame clock's
// concern.
func LoadSegments(path string) ([]HomographySegment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading homography segments: %w", err)
	}
	var records []segmentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parsing homography segments: %w", err)
	}

	segments := make([]HomographySegment, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("homography segment %d invalid: %w", i, err)
		}
		var h geometry.Matrix3
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				h[3*r+c] = rec.H[r][c]
			}
		}
		segments = append(segments, HomographySegment{
			FrameStart:   rec.FrameStart,
			FrameEnd:     rec.FrameEnd,
			H:            h,
			KeypointsImg: rec.KeypointsImg,
		})
	}
	return segments, nil
}
