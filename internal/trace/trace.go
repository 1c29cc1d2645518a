// Package trace replays a scripted input against an arena without a
// terminal and records the player's state every frame as CSV.
package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/arena2d/internal/config"
	"github.com/vovakirdan/arena2d/internal/core"
	"github.com/vovakirdan/arena2d/internal/world"
)

// Frame is one recorded tick of a run.
type Frame struct {
	Tick       int     `csv:"tick"`
	Time       float64 `csv:"t"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	VX         float64 `csv:"vx"`
	VY         float64 `csv:"vy"`
	Iterations int     `csv:"iterations"`
	Hits       int     `csv:"hits"`
	Rejected   bool    `csv:"rejected"`
	NX         float64 `csv:"nx"`
	NY         float64 `csv:"ny"`
}

// Result is a finished headless run.
type Result struct {
	Frames  []Frame
	Summary core.RunSummary
}

// Runner replays scripts against levels.
type Runner struct {
	Physics config.PhysicsConfig
	DT      float64 // seconds per frame
	Script  Script
	Logger  *log.Logger
}

// Run replays the script against one level.
func (r Runner) Run(ctx context.Context, level config.Level) (Result, error) {
	if r.DT <= 0 {
		return Result{}, fmt.Errorf("trace: frame time must be positive, got %v", r.DT)
	}
	dt := min(r.DT, r.Physics.MaxDT)

	w, err := world.New(level, r.Physics, world.WithLogger(r.Logger))
	if err != nil {
		return Result{}, fmt.Errorf("trace: %w", err)
	}

	frames := make([]Frame, 0, r.Script.Frames())
	for _, seg := range r.Script {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for i := 0; i < seg.Frames; i++ {
			res := w.Step(dt, seg.Direction)
			p := w.Player().Body
			n, _ := res.LastNormal()
			stats := w.Stats()
			frames = append(frames, Frame{
				Tick:       stats.Ticks,
				Time:       stats.Elapsed,
				X:          p.Position.X,
				Y:          p.Position.Y,
				VX:         p.Velocity.X,
				VY:         p.Velocity.Y,
				Iterations: res.Iterations,
				Hits:       res.Hits,
				Rejected:   res.Rejected,
				NX:         n.X,
				NY:         n.Y,
			})
		}
	}

	stats := w.Stats()
	return Result{
		Frames: frames,
		Summary: core.RunSummary{
			GameID:      level.ID,
			Fingerprint: level.FingerprintHex(),
			Ticks:       stats.Ticks,
			Elapsed:     stats.Elapsed,
			Distance:    stats.Distance,
			Contacts:    stats.Contacts,
			Rejections:  stats.Rejections,
		},
	}, nil
}

// RunAll replays the script against every level concurrently. When dir is
// not empty each trace is written to dir/<level id>.csv. Results keep the
// order of levels.
func (r Runner) RunAll(ctx context.Context, levels []config.Level, dir string) ([]Result, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace: creating output directory: %w", err)
		}
	}

	results := make([]Result, len(levels))
	g, ctx := errgroup.WithContext(ctx)
	for i, level := range levels {
		g.Go(func() error {
			res, err := r.Run(ctx, level)
			if err != nil {
				return fmt.Errorf("level %s: %w", level.ID, err)
			}
			results[i] = res
			if dir == "" {
				return nil
			}
			return WriteFile(filepath.Join(dir, level.ID+".csv"), res.Frames)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Write encodes frames as CSV with a header row.
func Write(w io.Writer, frames []Frame) error {
	if err := gocsv.Marshal(frames, w); err != nil {
		return fmt.Errorf("trace: writing frames: %w", err)
	}
	return nil
}

// WriteFile writes frames to a CSV file, replacing it if it exists.
func WriteFile(path string, frames []Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: creating %s: %w", path, err)
	}
	if err := Write(f, frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
