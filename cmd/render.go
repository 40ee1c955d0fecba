package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/render"
	"github.com/philipparndt/tokenviz/pkg/scene"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

// frameInterval is the simulated time between rendered ticks
const frameInterval = time.Second / 60

type renderOptions struct {
	output             string
	ticks              int
	width, height      int
	radius, theta, phi float64
	highlight          int
	pointer            []float64
}

func newRenderCommand(opts *rootOptions) *cobra.Command {
	ro := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render the records to a PNG image",
		Long: `Render the records without a window. The loop runs for the given
number of ticks on a simulated clock, so the rotation, hover and highlight
state of the image is reproducible.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("highlight") {
				ro.highlight = hover.None
			}
			return runRender(cmd, opts, ro, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&ro.output, "output", "o", "tokenviz.png", "output PNG file")
	f.IntVar(&ro.ticks, "ticks", 1, "number of loop ticks before writing the image")
	f.IntVar(&ro.width, "width", 1280, "image width in pixels")
	f.IntVar(&ro.height, "height", 800, "image height in pixels")
	f.Float64Var(&ro.radius, "radius", camera.DefaultRadius, "camera distance from the origin")
	f.Float64Var(&ro.theta, "theta", camera.DefaultTheta, "camera azimuth in radians")
	f.Float64Var(&ro.phi, "phi", camera.DefaultPhi, "camera polar angle in radians")
	f.IntVar(&ro.highlight, "highlight", 0, "token ID to highlight")
	f.Float64SliceVar(&ro.pointer, "pointer", nil, "hover pointer position as x,y")
	return cmd
}

func runRender(cmd *cobra.Command, opts *rootOptions, ro *renderOptions, file string) error {
	if ro.ticks < 1 {
		return errors.New("--ticks must be at least 1")
	}
	if len(ro.pointer) != 0 && len(ro.pointer) != 2 {
		return fmt.Errorf("--pointer needs x,y, got %d values", len(ro.pointer))
	}

	set, err := tokens.Parse(file)
	if err != nil {
		return err
	}
	display, err := opts.cfg.Settings()
	if err != nil {
		return err
	}

	raster, err := render.NewRaster(ro.width, ro.height)
	if err != nil {
		return err
	}
	defer raster.Close()

	sched := loop.NewManualScheduler()
	clock := hover.NewMockClock(time.Unix(0, 0).UTC())
	sess := scene.New(display,
		scene.WithScheduler(sched),
		scene.WithTarget(raster),
		scene.WithClock(clock),
		scene.WithLogger(opts.logger),
		scene.WithViewport(float64(ro.width), float64(ro.height)),
		scene.WithCamera(ro.radius, ro.theta, ro.phi),
	)
	defer sess.Close()

	if err := sess.Load(set.Records); err != nil {
		return err
	}
	if ro.highlight != hover.None {
		if _, err := sess.HighlightToken(ro.highlight); err != nil {
			return err
		}
	}
	if len(ro.pointer) == 2 {
		sess.PointerMoved(ro.pointer[0], ro.pointer[1])
	}
	if err := sess.Start(); err != nil {
		return err
	}

	for range ro.ticks {
		sched.Step()
		clock.Advance(frameInterval)
	}

	if err := raster.SavePNG(ro.output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d, %d tokens)\n", ro.output, ro.width, ro.height, sess.Len())
	return nil
}
