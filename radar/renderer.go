// Package radar renders the synthetic top-down pitch view: the canonical
// pitch skeleton fitted to a fixed-aspect canvas, plus detections projected
// from image space into pitch meters through the active homography.
package radar

import (
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"pitchcam/geometry"
	"pitchcam/match"
	"pitchcam/pitch"
	"pitchcam/style"
)

// Canvas defaults; the pitch keeps its own aspect ratio regardless of the
// video's.
const (
	DefaultWidth  = 840
	DefaultHeight = 560

	edgeMargin   = 20 // canvas pixels kept clear around the pitch rectangle
	markerRadius = 6
	ballRadius   = 4
)

var (
	grassColor = color.RGBA{30, 110, 40, 255}
	lineColor  = color.RGBA{230, 230, 230, 255}
)

// Renderer draws the radar surface. The canvas is fully cleared on every
// draw; last writer wins, which is the intended semantics for re-entrant
// playback signals.
type Renderer struct {
	width  int
	height int
	styles *style.Resolver
	log    zerolog.Logger
}

// NewRenderer builds a radar renderer for a canvas of the given size.
// Non-positive dimensions fall back to the defaults.
func NewRenderer(width, height int, styles *style.Resolver, log zerolog.Logger) *Renderer {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	return &Renderer{width: width, height: height, styles: styles, log: log}
}

// NewCanvas allocates a canvas matching the renderer's dimensions. The
// caller owns the Mat.
func (r *Renderer) NewCanvas() gocv.Mat {
	return gocv.NewMatWithSize(r.height, r.width, gocv.MatTypeCV8UC3)
}

// Width returns the canvas width in pixels.
func (r *Renderer) Width() int { return r.width }

// Height returns the canvas height in pixels.
func (r *Renderer) Height() int { return r.height }

// Draw renders the pitch and the current frame's projected detections onto
// canvas. With no active segment only the pitch is drawn; with a singular
// homography the markers are suppressed for this frame and the next frame
// starts clean.
func (r *Renderer) Draw(canvas *gocv.Mat, frame int, dets match.FrameDetections, tracks match.TrackMap, segment *match.HomographySegment) {
	// OpenCV scalar order is BGRA.
	canvas.SetTo(gocv.NewScalar(float64(grassColor.B), float64(grassColor.G), float64(grassColor.R), 255))

	f := fitTransform(r.width, r.height, edgeMargin)
	r.drawPitch(canvas, f)

	if segment == nil {
		r.log.Debug().Int("frame", frame).Msg("no active segment, radar markers suppressed")
		return
	}

	for _, d := range dets[frame] {
		if !radarClass(d.Class) {
			continue
		}
		pitchPos, err := segment.H.Project(d.Box.BottomCenter())
		if err != nil {
			r.log.Debug().Int("frame", frame).Msg("degenerate projection, marker skipped")
			continue
		}
		if !pitch.InBounds(pitchPos) {
			continue
		}

		s := r.styles.Resolve(d, tracks)
		pt := f.toCanvas(pitchPos)
		radius := markerRadius
		if d.Class == match.ClassBall {
			radius = ballRadius
		}
		gocv.Circle(canvas, pt, radius, s.Fill, -1)
		gocv.Circle(canvas, pt, radius, s.Stroke, 1)
	}
}

// radarClass reports whether a detection class appears on the radar.
// Goalkeepers are field players for radar purposes; the ball is drawn
// smaller. Referees and unclassified objects stay off the radar.
func radarClass(c match.Class) bool {
	switch c {
	case match.ClassPlayer, match.ClassGoalkeeper, match.ClassBall:
		return true
	}
	return false
}

func (r *Renderer) drawPitch(canvas *gocv.Mat, f fit) {
	for _, e := range pitch.Topology {
		a, okA := pitch.ByName(e.A)
		b, okB := pitch.ByName(e.B)
		if !okA || !okB {
			continue
		}
		gocv.Line(canvas, f.toCanvas(a.Pos), f.toCanvas(b.Pos), lineColor, 2)
	}

	// Spots read better as dots than as topology.
	for _, name := range []string{"center_spot", "penalty_spot_left", "penalty_spot_right"} {
		if lm, ok := pitch.ByName(name); ok {
			gocv.Circle(canvas, f.toCanvas(lm.Pos), 3, lineColor, -1)
		}
	}
}

// fit maps pitch meters onto canvas pixels: uniform scale (min of the two
// fit ratios) with offsets centering the pitch rectangle.
type fit struct {
	scale float64
	offX  float64
	offY  float64
}

func fitTransform(canvasW, canvasH, margin int) fit {
	availW := float64(canvasW - 2*margin)
	availH := float64(canvasH - 2*margin)

	scale := availW / pitch.Length
	if v := availH / pitch.Width; v < scale {
		scale = v
	}
	return fit{
		scale: scale,
		offX:  (float64(canvasW) - pitch.Length*scale) / 2,
		offY:  (float64(canvasH) - pitch.Width*scale) / 2,
	}
}

func (f fit) toCanvas(p geometry.Point) image.Point {
	return image.Pt(
		int(f.offX+p.X*f.scale),
		int(f.offY+p.Y*f.scale),
	)
}
