package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/ctxplay/internal/adapters/render/chat"
	"github.com/bnema/ctxplay/internal/adapters/render/summary"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/ports"
	"github.com/spf13/cobra"
)

func newPlayCmd(app *app) *cobra.Command {
	var (
		scriptPath string
		speed      float64
		autoStart  bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the conversation in the terminal",
		Long: "Play the conversation in an interactive terminal view. Press s to start, c to cancel, " +
			"r to reset and space to advance; q quits and prints a summary of the run.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if speed <= 0 {
				return fmt.Errorf("--speed must be positive, got %g", speed)
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

			// The terminal belongs to the TUI, so records only go to log.file.
			logger, err := app.newLogger(nil)
			if err != nil {
				return err
			}
			defer logger.Close()

			factory := func(renderer ports.Renderer, scheduler ports.Scheduler, navigation ports.NavigationPort) (*application.Sequencer, error) {
				return application.NewSequencer(application.Options{
					Script:        loaded.Script,
					Renderer:      renderer,
					Scheduler:     scheduler,
					Navigation:    navigation,
					Timing:        playback.Timing,
					CapacityLimit: playback.CapacityLimit,
					Logger:        logger.With("script", loaded.Source),
				})
			}

			started := app.now()
			final, err := chat.Run(cmd.Context(), chat.Options{
				Title:        loaded.Title,
				NewSequencer: factory,
				AutoStart:    autoStart,
				Speed:        speed,
			})
			if err != nil {
				return err
			}

			snapshot := final.Snapshot()
			rendered, err := app.summaryRenderer(summary.Report{
				Title:      loaded.Title,
				Source:     loaded.Source,
				RunID:      snapshot.RunID,
				State:      snapshot.State,
				Capacity:   snapshot.Capacity,
				Sweeps:     len(snapshot.Sweeps),
				UnitVisits: snapshot.UnitVisits(),
				Elapsed:    app.now().Sub(started).Round(time.Millisecond),
			}, summary.RenderOptions{})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "script TOML file (overrides script.path)")
	cmd.Flags().Float64Var(&speed, "speed", 1, "playback speed multiplier")
	cmd.Flags().BoolVar(&autoStart, "autostart", false, "start playback as soon as the view opens")

	return cmd
}
