package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := wireApp()

	rootCmd := &cobra.Command{
		Use:   "ctxplay",
		Short: "ctxplay: replay a chat to show how a model consumes its context window",
		Long: "ctxplay replays a scripted conversation word by word. Before every generated word it sweeps " +
			"over everything already in the conversation, and a capacity bar tracks how full the simulated " +
			"context window gets.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.load(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configFile, "config", app.configFile, "config file (default $HOME/.config/ctxplay/config.toml)")
	flags.StringVar(&app.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newPlayCmd(app),
		newSimulateCmd(app),
		newScriptCmd(app),
		newValidateNavCmd(app),
	)

	return rootCmd
}
