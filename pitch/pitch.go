// Package pitch holds the canonical pitch model: named landmark coordinates
// in pitch meters and the edge topology used to draw the skeleton. The model
// is fixed at compile time; renderers only ever read it.
package pitch

import (
	"math"

	"pitchcam/geometry"
)

// Standard pitch dimensions in meters. All landmark coordinates live in
// [0, Length] x [0, Width] with the origin at the top-left corner as seen
// from the broadcast camera side.
const (
	Length = 105.0
	Width  = 68.0
)

// Derived line geometry, FIFA standard.
const (
	penaltyAreaDepth   = 16.5
	penaltyAreaWidth   = 40.32
	goalAreaDepth      = 5.5
	goalAreaWidth      = 18.32
	penaltySpotDist    = 11.0
	centerCircleR      = 9.15
	goalMouthWidth     = 7.32
	centerCircleChords = 16 // chords approximating the circle
)

// Landmark is a named, fixed-coordinate pitch feature.
type Landmark struct {
	Name string
	Pos  geometry.Point
}

// Edge connects two landmarks by name for line drawing.
type Edge struct {
	A string
	B string
}

// Landmarks is the canonical landmark catalog.
var Landmarks = buildLandmarks()

// Topology is the edge list over Landmarks. Only straight lines; the center
// circle is approximated by chords between its sampled landmarks.
var Topology = buildTopology()

var landmarkIndex = func() map[string]Landmark {
	idx := make(map[string]Landmark, len(Landmarks))
	for _, lm := range Landmarks {
		idx[lm.Name] = lm
	}
	return idx
}()

// ByName looks up a landmark by its identifier.
func ByName(name string) (Landmark, bool) {
	lm, ok := landmarkIndex[name]
	return lm, ok
}

func buildLandmarks() []Landmark {
	paTop := (Width - penaltyAreaWidth) / 2
	paBottom := Width - paTop
	gaTop := (Width - goalAreaWidth) / 2
	gaBottom := Width - gaTop
	postTop := (Width - goalMouthWidth) / 2
	postBottom := Width - postTop

	lms := []Landmark{
		{"corner_tl", geometry.Point{X: 0, Y: 0}},
		{"corner_tr", geometry.Point{X: Length, Y: 0}},
		{"corner_br", geometry.Point{X: Length, Y: Width}},
		{"corner_bl", geometry.Point{X: 0, Y: Width}},

		{"halfway_top", geometry.Point{X: Length / 2, Y: 0}},
		{"halfway_bottom", geometry.Point{X: Length / 2, Y: Width}},
		{"center_spot", geometry.Point{X: Length / 2, Y: Width / 2}},

		{"penalty_area_left_tl", geometry.Point{X: 0, Y: paTop}},
		{"penalty_area_left_tr", geometry.Point{X: penaltyAreaDepth, Y: paTop}},
		{"penalty_area_left_br", geometry.Point{X: penaltyAreaDepth, Y: paBottom}},
		{"penalty_area_left_bl", geometry.Point{X: 0, Y: paBottom}},
		{"penalty_area_right_tl", geometry.Point{X: Length - penaltyAreaDepth, Y: paTop}},
		{"penalty_area_right_tr", geometry.Point{X: Length, Y: paTop}},
		{"penalty_area_right_br", geometry.Point{X: Length, Y: paBottom}},
		{"penalty_area_right_bl", geometry.Point{X: Length - penaltyAreaDepth, Y: paBottom}},

		{"goal_area_left_tl", geometry.Point{X: 0, Y: gaTop}},
		{"goal_area_left_tr", geometry.Point{X: goalAreaDepth, Y: gaTop}},
		{"goal_area_left_br", geometry.Point{X: goalAreaDepth, Y: gaBottom}},
		{"goal_area_left_bl", geometry.Point{X: 0, Y: gaBottom}},
		{"goal_area_right_tl", geometry.Point{X: Length - goalAreaDepth, Y: gaTop}},
		{"goal_area_right_tr", geometry.Point{X: Length, Y: gaTop}},
		{"goal_area_right_br", geometry.Point{X: Length, Y: gaBottom}},
		{"goal_area_right_bl", geometry.Point{X: Length - goalAreaDepth, Y: gaBottom}},

		{"penalty_spot_left", geometry.Point{X: penaltySpotDist, Y: Width / 2}},
		{"penalty_spot_right", geometry.Point{X: Length - penaltySpotDist, Y: Width / 2}},

		{"goal_left_post_top", geometry.Point{X: 0, Y: postTop}},
		{"goal_left_post_bottom", geometry.Point{X: 0, Y: postBottom}},
		{"goal_right_post_top", geometry.Point{X: Length, Y: postTop}},
		{"goal_right_post_bottom", geometry.Point{X: Length, Y: postBottom}},
	}

	for i := 0; i < centerCircleChords; i++ {
		theta := 2 * math.Pi * float64(i) / centerCircleChords
		lms = append(lms, Landmark{
			Name: circleName(i),
			Pos: geometry.Point{
				X: Length/2 + centerCircleR*math.Cos(theta),
				Y: Width/2 + centerCircleR*math.Sin(theta),
			},
		})
	}
	return lms
}

func buildTopology() []Edge {
	edges := []Edge{
		{"corner_tl", "corner_tr"},
		{"corner_tr", "corner_br"},
		{"corner_br", "corner_bl"},
		{"corner_bl", "corner_tl"},

		{"halfway_top", "halfway_bottom"},

		{"penalty_area_left_tl", "penalty_area_left_tr"},
		{"penalty_area_left_tr", "penalty_area_left_br"},
		{"penalty_area_left_br", "penalty_area_left_bl"},
		{"penalty_area_right_tl", "penalty_area_right_bl"},
		{"penalty_area_right_bl", "penalty_area_right_br"},
		{"penalty_area_right_tl", "penalty_area_right_tr"},

		{"goal_area_left_tl", "goal_area_left_tr"},
		{"goal_area_left_tr", "goal_area_left_br"},
		{"goal_area_left_br", "goal_area_left_bl"},
		{"goal_area_right_tl", "goal_area_right_bl"},
		{"goal_area_right_bl", "goal_area_right_br"},
		{"goal_area_right_tl", "goal_area_right_tr"},

		{"goal_left_post_top", "goal_left_post_bottom"},
		{"goal_right_post_top", "goal_right_post_bottom"},
	}

	for i := 0; i < centerCircleChords; i++ {
		edges = append(edges, Edge{circleName(i), circleName((i + 1) % centerCircleChords)})
	}
	return edges
}

func circleName(i int) string {
	return "center_circle_" + string(rune('a'+i))
}

// InBounds reports whether a pitch-space point lies on the playing surface,
// boundary inclusive.
func InBounds(p geometry.Point) bool {
	return p.X >= 0 && p.X <= Length && p.Y >= 0 && p.Y <= Width
}
