// Package style maps a detection's class and optional team assignment to
// the stroke/fill pair used to draw it. Resolution is a data-driven lookup,
// deterministic for a given detection and track map.
package style

import (
	"fmt"
	"image/color"

	"pitchcam/match"
)

// Style is a stroke/fill color pair.
type Style struct {
	Stroke color.RGBA
	Fill   color.RGBA
}

// Resolver holds the closed class and team lookup tables. Team entries may
// be overridden from configuration; class entries are fixed.
type Resolver struct {
	teams   map[int]Style
	classes map[match.Class]Style
	neutral Style
}

// NewResolver builds a resolver with the default palette.
func NewResolver() *Resolver {
	return &Resolver{
		teams: map[int]Style{
			0: pair(color.RGBA{220, 40, 40, 255}),   // red
			1: pair(color.RGBA{40, 90, 220, 255}),   // blue
			2: pair(color.RGBA{40, 190, 180, 255}),  // teal
			3: pair(color.RGBA{200, 60, 200, 255}),  // magenta
		},
		classes: map[match.Class]Style{
			match.ClassPlayer:     pair(color.RGBA{235, 235, 235, 255}), // neutral white
			match.ClassGoalkeeper: pair(color.RGBA{90, 200, 90, 255}),
			match.ClassReferee:    pair(color.RGBA{240, 210, 50, 255}),
			match.ClassBall:       pair(color.RGBA{255, 140, 0, 255}),
			match.ClassOther:      pair(color.RGBA{150, 150, 150, 255}),
		},
		neutral: pair(color.RGBA{150, 150, 150, 255}),
	}
}

func pair(c color.RGBA) Style {
	// Fill is the stroke at reduced intensity so filled markers stay
	// readable over grass and crowd alike.
	return Style{
		Stroke: c,
		Fill:   color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A},
	}
}

// SetTeam overrides or adds the style for a team id.
func (r *Resolver) SetTeam(teamID int, s Style) {
	r.teams[teamID] = s
}

// Resolve returns the style for a detection. A player whose object id maps
// to a team with a known palette entry gets the team pair; everything else
// gets its class pair, and an unrecognized class gets the neutral pair.
// A team id without a palette entry falls back to the class pair — it must
// never borrow another team's colors.
func (r *Resolver) Resolve(d match.Detection, tracks match.TrackMap) Style {
	if d.Class == match.ClassPlayer && d.ObjectID != nil {
		if teamID, ok := tracks.TeamFor(*d.ObjectID); ok {
			if s, ok := r.teams[teamID]; ok {
				return s
			}
		}
	}
	if s, ok := r.classes[d.Class]; ok {
		return s
	}
	return r.neutral
}

// Neutral returns the fallback style used when nothing about an object is
// known (e.g. a trail whose object has no detection in the window head).
func (r *Resolver) Neutral() Style {
	return r.neutral
}

// HexColor parses "#rrggbb" or "rrggbb" into an opaque RGBA, for team color
// overrides from configuration.
func HexColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("style: bad hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("style: bad hex color %q: %w", s, err)
	}
	return color.RGBA{r, g, b, 255}, nil
}

// TeamStyle builds the stroke/fill pair for a single base color, exposed so
// configuration overrides produce the same fill dimming as the defaults.
func TeamStyle(c color.RGBA) Style {
	return pair(c)
}
