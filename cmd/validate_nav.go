package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/ctxplay/internal/adapters/markup/html"
	slidesfs "github.com/bnema/ctxplay/internal/adapters/slides/fs"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/config"
	"github.com/spf13/cobra"
)

var errNavInconsistent = errors.New("navigation is inconsistent")

func newValidateNavCmd(app *app) *cobra.Command {
	var order []string

	cmd := &cobra.Command{
		Use:   "validate-nav [dir]",
		Short: "Check the navigation markup of every slide in the deck",
		Long: "Check that each slide's nav dots, active dot, prev/next links and progress bar agree with " +
			"the deck order. dir defaults to nav.slides_dir.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg == nil {
				return errNotLoaded
			}

			settings := config.NavSettings(app.cfg)
			dir := settings.SlidesDir
			if len(args) == 1 {
				dir = args[0]
			}
			if len(order) > 0 {
				settings.Order = order
			}

			checker := application.NewNavCheckService(slidesfs.NewOSSource(dir), html.NewParser(), settings.Order)
			report, err := checker.Check(cmd.Context())
			if err != nil {
				return fmt.Errorf("check navigation in %s: %w", dir, err)
			}

			if report.OK() {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "navigation OK: %d slides consistent\n", report.Slides)
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "navigation check failed with %d errors:\n", len(report.Diagnostics))
			for _, diagnostic := range report.Diagnostics {
				fmt.Fprintf(stderr, "  %s\n", diagnostic)
			}
			return fmt.Errorf("%w: %d errors in %s", errNavInconsistent, len(report.Diagnostics), dir)
		},
	}

	cmd.Flags().StringSliceVar(&order, "order", nil, "slide names in deck order (overrides nav.order)")

	return cmd
}
