// pitchcam replays a match video with the vision pipeline's output overlaid
// on it, and renders the synchronized top-down radar view. The decoder clock
// is the playback-time signal: every decoded frame triggers one overlay draw
// and one radar draw, each a pure function of the loaded data snapshot plus
// the current time.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"pitchcam/config"
	"pitchcam/geometry"
	"pitchcam/match"
	"pitchcam/overlay"
	"pitchcam/radar"
	"pitchcam/style"
	"pitchcam/timeline"
)

var (
	inputPath      = flag.String("input", "", "Match video file (required)")
	detectionsPath = flag.String("detections", "", "Per-match detections JSON (required)")
	tracksPath     = flag.String("tracks", "", "Per-match team assignments JSON (optional)")
	homographyPath = flag.String("homography", "", "Per-match homography segments JSON (optional)")
	configPath     = flag.String("config", "pitchcam.yaml", "Optional YAML config file")

	overlayOut = flag.String("overlay-out", "", "Output video file for the overlay surface")
	radarOut   = flag.String("radar-out", "", "Output video file for the radar surface")
	display    = flag.Bool("display", false, "Show both surfaces in live windows")
	displayW   = flag.Int("display-width", 0, "Downscale the overlay surface to this width (0 = native)")

	skeletonFlag = flag.Bool("skeleton", false, "Draw the pitch skeleton on the video surface")
	debugMode    = flag.Bool("debug", false, "Log skipped geometry and per-frame details")
)

// session is one render run over an immutable data snapshot. Draws keep no
// state between invocations; refreshing the snapshot mid-run only changes
// what the next draw sees.
type session struct {
	detections match.FrameDetections
	tracks     match.TrackMap
	segments   []match.HomographySegment

	samplingRate int
	trailWindow  int

	overlay *overlay.Renderer
	radar   *radar.Renderer
	log     zerolog.Logger
}

// renderAt handles one playback-time signal: both surfaces are redrawn for
// the frame index the clock maps the time to.
func (s *session) renderAt(seconds float64, video *gocv.Mat, radarCanvas *gocv.Mat, scale geometry.Scale) {
	frame := timeline.FrameIndex(seconds, s.samplingRate)

	var segment *match.HomographySegment
	if seg, ok := timeline.SelectSegment(s.segments, frame); ok {
		segment = &seg
	}

	s.overlay.Draw(video, overlay.Scene{
		Frame:       frame,
		Detections:  s.detections,
		Tracks:      s.tracks,
		Segment:     segment,
		Scale:       scale,
		TrailWindow: s.trailWindow,
	})
	s.radar.Draw(radarCanvas, frame, s.detections, s.tracks, segment)
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pitchcam: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *inputPath == "" || *detectionsPath == "" {
		flag.Usage()
		return fmt.Errorf("-input and -detections are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	if *debugMode {
		level = zerolog.DebugLevel
	}
	log = log.Level(level)

	styles, err := buildPalette(cfg)
	if err != nil {
		return err
	}

	sess := &session{
		samplingRate: cfg.SamplingRate,
		trailWindow:  cfg.TrailWindow,
		overlay:      overlay.NewRenderer(styles, log.With().Str("surface", "overlay").Logger()),
		radar:        radar.NewRenderer(cfg.Radar.Width, cfg.Radar.Height, styles, log.With().Str("surface", "radar").Logger()),
		log:          log,
	}
	sess.overlay.SetSkeleton(cfg.Skeleton || *skeletonFlag)

	if err := sess.loadData(); err != nil {
		return err
	}

	return sess.replay(log)
}

// loadData pulls the three per-match files into memory. Tracks and
// homography are optional: without tracks every player keeps the class
// style, without homography all pitch-space overlays stay suppressed.
func (s *session) loadData() error {
	dets, err := match.LoadDetections(*detectionsPath)
	if err != nil {
		return err
	}
	s.detections = match.IndexByFrame(dets)
	s.log.Info().Int("detections", len(dets)).Msg("detections loaded")

	s.tracks = match.TrackMap{}
	if *tracksPath != "" {
		tracks, err := match.LoadTracks(*tracksPath)
		if err != nil {
			return err
		}
		s.tracks = match.BuildTrackMap(tracks)
		s.log.Info().Int("tracks", len(tracks)).Msg("team assignments loaded")
	}

	if *homographyPath != "" {
		segs, err := match.LoadSegments(*homographyPath)
		if err != nil {
			return err
		}
		s.segments = segs
		s.log.Info().Int("segments", len(segs)).Msg("homography segments loaded")
	}
	return nil
}

// replay decodes the input video and feeds each frame's timestamp to the
// renderers, writing and/or displaying both surfaces.
func (s *session) replay(log zerolog.Logger) error {
	capture, err := gocv.OpenVideoCapture(*inputPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", *inputPath, err)
	}
	defer capture.Close()

	nativeW := int(capture.Get(gocv.VideoCaptureFrameWidth))
	nativeH := int(capture.Get(gocv.VideoCaptureFrameHeight))
	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = float64(s.samplingRate)
	}

	outW, outH := nativeW, nativeH
	if *displayW > 0 && *displayW < nativeW {
		outW = *displayW
		outH = nativeH * *displayW / nativeW
	}
	scale := geometry.ScaleFor(float64(outW), float64(outH), float64(nativeW), float64(nativeH))

	log.Info().
		Int("native_width", nativeW).Int("native_height", nativeH).
		Float64("fps", fps).Int("sampling_rate", s.samplingRate).
		Msg("replay starting")

	var overlayWriter, radarWriter *gocv.VideoWriter
	if *overlayOut != "" {
		overlayWriter, err = gocv.VideoWriterFile(*overlayOut, "avc1", fps, outW, outH, true)
		if err != nil {
			return fmt.Errorf("opening overlay writer: %w", err)
		}
		defer overlayWriter.Close()
	}
	if *radarOut != "" {
		radarWriter, err = gocv.VideoWriterFile(*radarOut, "avc1", fps, s.radar.Width(), s.radar.Height(), true)
		if err != nil {
			return fmt.Errorf("opening radar writer: %w", err)
		}
		defer radarWriter.Close()
	}

	var overlayWin, radarWin *gocv.Window
	if *display {
		overlayWin = gocv.NewWindow("pitchcam overlay")
		defer overlayWin.Close()
		radarWin = gocv.NewWindow("pitchcam radar")
		defer radarWin.Close()
	}

	frame := gocv.NewMat()
	defer frame.Close()
	scaled := gocv.NewMat()
	defer scaled.Close()
	radarCanvas := s.radar.NewCanvas()
	defer radarCanvas.Close()

	frames := 0
	for {
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			break
		}

		surface := &frame
		if outW != nativeW {
			gocv.Resize(frame, &scaled, image.Pt(outW, outH), 0, 0, gocv.InterpolationLinear)
			surface = &scaled
		}

		seconds := capture.Get(gocv.VideoCapturePosMsec) / 1000.0
		s.renderAt(seconds, surface, &radarCanvas, scale)

		if overlayWriter != nil {
			if err := overlayWriter.Write(*surface); err != nil {
				return fmt.Errorf("writing overlay frame: %w", err)
			}
		}
		if radarWriter != nil {
			if err := radarWriter.Write(radarCanvas); err != nil {
				return fmt.Errorf("writing radar frame: %w", err)
			}
		}
		if *display {
			overlayWin.IMShow(*surface)
			radarWin.IMShow(radarCanvas)
			if overlayWin.WaitKey(1) == 27 { // ESC
				break
			}
		}
		frames++
	}

	log.Info().Int("frames", frames).Msg("replay finished")
	return nil
}

// buildPalette applies configured team color overrides on the defaults.
func buildPalette(cfg *config.Config) (*style.Resolver, error) {
	styles := style.NewResolver()
	for key, hex := range cfg.TeamColors {
		teamID, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("bad team id %q in team_colors: %w", key, err)
		}
		c, err := style.HexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("team %d: %w", teamID, err)
		}
		styles.SetTeam(teamID, style.TeamStyle(c))
	}
	return styles, nil
}
