package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/ctxplay/internal/adapters/render/summary"
	"github.com/bnema/ctxplay/internal/adapters/render/transcript"
	"github.com/bnema/ctxplay/internal/adapters/schedule/loop"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/config"
	"github.com/bnema/ctxplay/internal/domain"
	"github.com/spf13/cobra"
)

type simulation struct {
	loaded      application.LoadedScript
	playback    config.Playback
	logger      *slog.Logger
	start       time.Time
	speed       float64
	cancelAfter time.Duration
	// progress, when set, hears about every change of state, message or capacity label.
	progress func(playbackProgress)
}

type simulationResult struct {
	snapshot   application.Snapshot
	transcript transcript.View
	text       string
	elapsed    time.Duration
}

// runSimulation plays the script on a virtual clock until it finishes or is cancelled.
// With a positive speed the clock is paced against real time.
func runSimulation(ctx context.Context, sim simulation) (simulationResult, error) {
	clock := loop.New(sim.start)
	view := transcript.New()

	seq, err := application.NewSequencer(application.Options{
		Script:        sim.loaded.Script,
		Renderer:      view,
		Scheduler:     clock,
		Clock:         clock,
		Timing:        sim.playback.Timing,
		CapacityLimit: sim.playback.CapacityLimit,
		Logger:        sim.logger,
	})
	if err != nil {
		return simulationResult{}, fmt.Errorf("build sequencer: %w", err)
	}
	defer seq.Close()

	seq.Start()
	if sim.cancelAfter > 0 {
		timer := clock.AfterFunc(sim.cancelAfter, seq.Cancel)
		defer timer.Stop()
	}

	var last playbackProgress
	running := func() bool {
		if sim.progress != nil {
			if current := progressOf(seq.Snapshot()); visibleChange(last, current) {
				last = current
				sim.progress(current)
			}
		}
		return seq.State().Running()
	}
	if err := clock.RunWhile(ctx, sim.speed, running); err != nil {
		return simulationResult{}, fmt.Errorf("run playback: %w", err)
	}

	return simulationResult{
		snapshot:   seq.Snapshot(),
		transcript: view.Snapshot(),
		text:       view.Text(),
		elapsed:    clock.Now().Sub(sim.start),
	}, nil
}

func visibleChange(before, after playbackProgress) bool {
	return before.State != after.State ||
		before.Message != after.Message ||
		before.Capacity.Label() != after.Capacity.Label()
}

type simulateSweep struct {
	Message int `json:"message"`
	Units   int `json:"units"`
}

type simulateOutput struct {
	RunID      string               `json:"run_id"`
	Title      string               `json:"title"`
	Source     string               `json:"source"`
	State      domain.PlaybackState `json:"state"`
	Messages   int                  `json:"messages"`
	Cursor     int                  `json:"cursor"`
	Consumed   float64              `json:"consumed"`
	Limit      float64              `json:"limit"`
	Percentage float64              `json:"percentage"`
	Label      string               `json:"label"`
	Level      domain.CapacityLevel `json:"level"`
	Units      int                  `json:"units"`
	Sweeps     []simulateSweep      `json:"sweeps"`
	UnitVisits int                  `json:"unit_visits"`
	ElapsedMS  int64                `json:"elapsed_ms"`
	Transcript string               `json:"transcript,omitempty"`
}

func newSimulateOutput(loaded application.LoadedScript, result simulationResult, withTranscript bool) simulateOutput {
	snapshot := result.snapshot
	out := simulateOutput{
		RunID:      snapshot.RunID,
		Title:      loaded.Title,
		Source:     loaded.Source,
		State:      snapshot.State,
		Messages:   snapshot.Messages,
		Cursor:     snapshot.Cursor,
		Consumed:   snapshot.Capacity.Consumed,
		Limit:      snapshot.Capacity.Limit,
		Percentage: snapshot.Capacity.Percentage(),
		Label:      snapshot.Capacity.Label(),
		Level:      snapshot.Capacity.Level(),
		Units:      snapshot.Units,
		Sweeps:     make([]simulateSweep, 0, len(snapshot.Sweeps)),
		UnitVisits: snapshot.UnitVisits(),
		ElapsedMS:  result.elapsed.Milliseconds(),
	}
	for _, sweep := range snapshot.Sweeps {
		out.Sweeps = append(out.Sweeps, simulateSweep{Message: sweep.Message + 1, Units: sweep.Units})
	}
	if withTranscript {
		out.Transcript = result.text
	}
	return out
}

func newSimulateCmd(app *app) *cobra.Command {
	var (
		scriptPath     string
		asJSON         bool
		showTranscript bool
		cancelAfter    time.Duration
		speed          float64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play the conversation headless and print a summary",
		Long: "Play the conversation on a virtual clock and print where the context window ended up. " +
			"By default the run completes instantly; --speed paces it against the wall clock.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cancelAfter < 0 {
				return fmt.Errorf("--cancel-after must not be negative, got %s", cancelAfter)
			}
			if speed < 0 {
				return fmt.Errorf("--speed must not be negative, got %g", speed)
			}

			service, err := app.scriptService(scriptPath)
			if err != nil {
				return err
			}
			loaded, err := service.Load(cmd.Context())
			if err != nil {
				return err
			}
			playback, err := app.playback()
			if err != nil {
				return err
			}

			sim := simulation{
				loaded:      loaded,
				playback:    playback,
				logger:      app.logger.With("script", loaded.Source),
				start:       app.now(),
				speed:       speed,
				cancelAfter: cancelAfter,
			}

			var result simulationResult
			play := func(ctx context.Context, report func(playbackProgress)) error {
				sim.progress = report
				var err error
				result, err = runSimulation(ctx, sim)
				return err
			}

			if speed > 0 {
				label := fmt.Sprintf("Playing %s at %gx", loaded.Source, speed)
				err = runPlaybackSpinner(cmd.Context(), cmd.ErrOrStderr(), label, play)
			} else {
				err = play(cmd.Context(), nil)
			}
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newSimulateOutput(loaded, result, showTranscript))
			}

			rendered, err := app.summaryRenderer(summary.Report{
				Title:      loaded.Title,
				Source:     loaded.Source,
				RunID:      result.snapshot.RunID,
				State:      result.snapshot.State,
				Capacity:   result.snapshot.Capacity,
				Sweeps:     len(result.snapshot.Sweeps),
				UnitVisits: result.snapshot.UnitVisits(),
				Elapsed:    result.elapsed,
				Transcript: result.transcript,
			}, summary.RenderOptions{ShowTranscript: showTranscript})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "script TOML file (overrides script.path)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&showTranscript, "transcript", false, "include the rendered conversation")
	cmd.Flags().DurationVar(&cancelAfter, "cancel-after", 0, "cancel playback after this much playback time")
	cmd.Flags().Float64Var(&speed, "speed", 0, "pace playback against real time (0 runs instantly)")

	return cmd
}
