package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bnema/ctxplay/internal/adapters/render/summary"
	tomlrepo "github.com/bnema/ctxplay/internal/adapters/repo/toml"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/spf13/cobra"
)

func newScriptCmd(app *app) *cobra.Command {
	scriptCmd := &cobra.Command{
		Use:   "script",
		Short: "Inspect and manage conversation scripts",
	}

	scriptCmd.AddCommand(
		newScriptShowCmd(app),
		newScriptValidateCmd(app),
		newScriptInitCmd(),
	)

	return scriptCmd
}

type outlineEntryOutput struct {
	Index      int     `json:"index"`
	Role       string  `json:"role"`
	Words      int     `json:"words"`
	Units      int     `json:"units"`
	Weight     float64 `json:"weight"`
	Attachment string  `json:"attachment,omitempty"`
	Cumulative float64 `json:"cumulative"`
	Label      string  `json:"label"`
	Level      string  `json:"level"`
}

func newScriptShowCmd(app *app) *cobra.Command {
	var (
		scriptPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the script with weights and projected capacity per message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			entries := application.Outline(loaded.Script, playback.CapacityLimit)

			if asJSON {
				out := make([]outlineEntryOutput, 0, len(entries))
				for _, entry := range entries {
					item := outlineEntryOutput{
						Index:      entry.Index,
						Role:       string(entry.Role),
						Words:      entry.Words,
						Units:      entry.Units,
						Weight:     entry.Weight,
						Cumulative: entry.Cumulative,
						Label:      entry.Capacity.Label(),
						Level:      string(entry.Capacity.Level()),
					}
					if entry.Attachment != nil {
						item.Attachment = entry.Attachment.Name
					}
					out = append(out, item)
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			rendered, err := app.outlineRenderer(summary.Outline{
				Title:   loaded.Title,
				Source:  loaded.Source,
				Limit:   playback.CapacityLimit,
				Entries: entries,
			})
			if err != nil {
				return fmt.Errorf("render outline: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "script TOML file (overrides script.path)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the outline as JSON")

	return cmd
}

func newScriptValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a script file loads and every message is well formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			service, err := app.scriptService(path)
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

			entries := application.Outline(loaded.Script, playback.CapacityLimit)
			final := "0%"
			level := "normal"
			if n := len(entries); n > 0 {
				final = entries[n-1].Capacity.Label()
				level = string(entries[n-1].Capacity.Level())
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d messages, %g tokens, ends at %s (%s)\n",
				loaded.Source, loaded.Script.Len(), loaded.Script.TotalWeight(), final, level)
			return err
		},
	}
}

func newScriptInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <file>",
		Short: "Write the built-in script to a TOML file to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", path, err)
				}
			}

			doc, err := tomlrepo.DefaultDocument()
			if err != nil {
				return err
			}
			repo, err := tomlrepo.NewFileRepository(path)
			if err != nil {
				return err
			}
			if err := repo.Save(cmd.Context(), doc); err != nil {
				return fmt.Errorf("write script: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d messages to %s\n", len(doc.Messages), repo.Path())
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
