// Package overlay renders the video-aligned surface: trajectory trails,
// per-class detection markers, object-id labels, and the optional on-video
// pitch skeleton. Every draw is recomputed from the scene snapshot; nothing
// is cached between frames, so a redraw triggered mid-refresh can never see
// stale geometry.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"pitchcam/geometry"
	"pitchcam/match"
	"pitchcam/pitch"
	"pitchcam/style"
	"pitchcam/trail"
)

// Ground-marker geometry: a truncated elliptical arc hugging the ground
// contact point of a detected person.
const (
	arcStartDeg  = -45.0
	arcEndDeg    = 235.0
	arcHeightPct = 0.12 // vertical radius as a fraction of box height

	labelTopClip = 10 // labels above this line flip below the box

	ballMarkerHalfWidth = 8
	ballMarkerHeight    = 14
)

var (
	skeletonColor = color.RGBA{255, 255, 255, 200}
	keypointColor = color.RGBA{255, 140, 0, 255}
)

// Scene is the full input of one overlay draw: the playback frame, the
// current data snapshot, the active homography segment (nil when no segment
// covers the frame), and the viewport scale.
type Scene struct {
	Frame       int
	Detections  match.FrameDetections
	Tracks      match.TrackMap
	Segment     *match.HomographySegment
	Scale       geometry.Scale
	TrailWindow int
}

// Renderer draws detection overlays onto video frames. It holds only
// configuration; per-frame state lives in the Scene.
type Renderer struct {
	styles       *style.Resolver
	showSkeleton bool
	log          zerolog.Logger
}

// NewRenderer builds an overlay renderer with the given palette.
func NewRenderer(styles *style.Resolver, log zerolog.Logger) *Renderer {
	return &Renderer{styles: styles, log: log}
}

// SetSkeleton toggles the on-video pitch skeleton.
func (r *Renderer) SetSkeleton(on bool) {
	r.showSkeleton = on
}

// Draw renders one frame's overlay onto img. The surface is assumed freshly
// cleared (for video that is the decoded frame itself). Individual failures
// skip only the affected geometry, never the rest of the frame.
func (r *Renderer) Draw(img *gocv.Mat, scene Scene) {
	window := scene.TrailWindow
	if window <= 0 {
		window = trail.DefaultWindow
	}

	r.drawTrails(img, scene, window)

	for _, d := range scene.Detections[scene.Frame] {
		s := r.styles.Resolve(d, scene.Tracks)
		switch d.Class {
		case match.ClassBall:
			r.drawBallMarker(img, d.Box, scene.Scale, s)
		default:
			r.drawGroundMarker(img, d.Box, scene.Scale, s)
		}
		r.drawLabel(img, d, scene.Scale, s)
	}

	if r.showSkeleton {
		r.drawSkeleton(img, scene)
	}
}

// drawTrails connects each object's windowed position history. The style
// comes from any detection in the window sharing the object id.
func (r *Renderer) drawTrails(img *gocv.Mat, scene Scene, window int) {
	trails := trail.Build(scene.Detections, scene.Frame, window, scene.Scale)
	if len(trails) == 0 {
		return
	}

	styles := r.windowStyles(scene, window)
	for objectID, pts := range trails {
		s, ok := styles[objectID]
		if !ok {
			s = r.styles.Neutral()
		}
		for i := 1; i < len(pts); i++ {
			gocv.Line(img, pts[i-1], pts[i], s.Stroke, 2)
		}
	}
}

// windowStyles resolves one style per object id seen in the trail window.
func (r *Renderer) windowStyles(scene Scene, window int) map[int]style.Style {
	first := scene.Frame - window
	if first < 0 {
		first = 0
	}
	styles := make(map[int]style.Style)
	for f := first; f <= scene.Frame; f++ {
		for _, d := range scene.Detections[f] {
			if d.ObjectID == nil {
				continue
			}
			if _, seen := styles[*d.ObjectID]; !seen {
				styles[*d.ObjectID] = r.styles.Resolve(d, scene.Tracks)
			}
		}
	}
	return styles
}

func (r *Renderer) drawGroundMarker(img *gocv.Mat, box match.Box, scale geometry.Scale, s style.Style) {
	center, axes := groundMarker(box, scale)
	if axes.X < 1 || axes.Y < 1 {
		return // box too small at this viewport scale to draw an arc
	}
	gocv.Ellipse(img, center, axes, 0, arcStartDeg, arcEndDeg, s.Stroke, 2)
}

func (r *Renderer) drawBallMarker(img *gocv.Mat, box match.Box, scale geometry.Scale, s style.Style) {
	tri := ballMarker(box, scale)
	pts := gocv.NewPointsVectorFromPoints([][]image.Point{tri})
	defer pts.Close()
	gocv.FillPoly(img, pts, s.Stroke)
}

func (r *Renderer) drawLabel(img *gocv.Mat, d match.Detection, scale geometry.Scale, s style.Style) {
	if d.ObjectID == nil {
		return
	}
	pos := labelOrigin(d.Box, scale)
	gocv.PutText(img, fmt.Sprintf("#%d", *d.ObjectID), pos, gocv.FontHersheySimplex, 0.45, s.Stroke, 1)
}

// drawSkeleton projects the canonical pitch model into the image through
// the inverted homography. A singular H skips the whole skeleton for the
// frame; a degenerate landmark skips only the geometry touching it.
func (r *Renderer) drawSkeleton(img *gocv.Mat, scene Scene) {
	if scene.Segment == nil {
		r.log.Debug().Int("frame", scene.Frame).Msg("no active segment, skeleton suppressed")
		return
	}

	inv, err := scene.Segment.H.Invert()
	if err != nil {
		r.log.Debug().Int("frame", scene.Frame).
			Int("segment_start", scene.Segment.FrameStart).
			Msg("singular homography, skeleton suppressed")
		return
	}

	projected := make(map[string]image.Point, len(pitch.Landmarks))
	for _, lm := range pitch.Landmarks {
		p, err := inv.Project(lm.Pos)
		if err != nil {
			continue // degenerate landmark, edges touching it drop out below
		}
		sp := scene.Scale.Apply(p)
		pt := image.Pt(int(sp.X), int(sp.Y))
		projected[lm.Name] = pt
		gocv.Circle(img, pt, 2, skeletonColor, -1)
	}

	for _, e := range pitch.Topology {
		a, okA := projected[e.A]
		b, okB := projected[e.B]
		if !okA || !okB {
			continue
		}
		gocv.Line(img, a, b, skeletonColor, 1)
	}

	// The correspondences the segment's homography was fitted from.
	for _, kp := range scene.Segment.KeypointsImg {
		p := scene.Scale.Apply(geometry.Point{X: kp.X, Y: kp.Y})
		gocv.Circle(img, image.Pt(int(p.X), int(p.Y)), 4, keypointColor, 1)
	}
}

// groundMarker computes the arc center and radii for a person-class box:
// centered at the bottom-mid-point, horizontal radius half the box width,
// vertical radius 12% of the box height.
func groundMarker(box match.Box, scale geometry.Scale) (center, axes image.Point) {
	bc := scale.Apply(box.BottomCenter())
	center = image.Pt(int(bc.X), int(bc.Y))
	axes = image.Pt(
		int(box.Width()*scale.X/2),
		int(box.Height()*scale.Y*arcHeightPct),
	)
	return center, axes
}

// ballMarker computes the downward triangle anchored at the box's top edge.
func ballMarker(box match.Box, scale geometry.Scale) []image.Point {
	top := scale.Apply(geometry.Point{X: (box.X1 + box.X2) / 2, Y: box.Y1})
	apex := image.Pt(int(top.X), int(top.Y))
	return []image.Point{
		apex,
		image.Pt(apex.X-ballMarkerHalfWidth, apex.Y-ballMarkerHeight),
		image.Pt(apex.X+ballMarkerHalfWidth, apex.Y-ballMarkerHeight),
	}
}

// labelOrigin places the object-id label just above the box, flipping it
// below when the baseline would clip off the top of the canvas.
func labelOrigin(box match.Box, scale geometry.Scale) image.Point {
	tl := scale.Apply(geometry.Point{X: box.X1, Y: box.Y1})
	y := int(tl.Y) - 6
	if y < labelTopClip {
		br := scale.Apply(geometry.Point{X: box.X1, Y: box.Y2})
		y = int(br.Y) + 16
	}
	return image.Pt(int(tl.X), y)
}
