package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bnema/ctxplay/internal/adapters/render/summary"
	tomlrepo "github.com/bnema/ctxplay/internal/adapters/repo/toml"
	"github.com/bnema/ctxplay/internal/application"
	"github.com/bnema/ctxplay/internal/config"
	"github.com/bnema/ctxplay/internal/logging"
	"github.com/spf13/viper"
)

var errNotLoaded = errors.New("configuration not loaded")

type app struct {
	configFile string
	logLevel   string

	cfg    *viper.Viper
	logger *logging.Logger

	summaryRenderer func(summary.Report, summary.RenderOptions) (string, error)
	outlineRenderer func(summary.Outline) (string, error)
	now             func() time.Time
}

func wireApp() *app {
	return &app{
		configFile:      envOrDefault("CTXPLAY_CONFIG", ""),
		summaryRenderer: summary.Render,
		outlineRenderer: summary.RenderOutline,
		now:             time.Now,
	}
}

// load resolves configuration and the console logger once flags are parsed.
func (a *app) load(stderr io.Writer) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := a.newLogger(stderr)
	if err != nil {
		return err
	}
	a.logger = logger

	return nil
}

// newLogger builds a logger from the loaded configuration. A nil console keeps records
// off the terminal.
func (a *app) newLogger(console io.Writer) (*logging.Logger, error) {
	if a.cfg == nil {
		return nil, errNotLoaded
	}

	level := a.logLevel
	if level == "" {
		level = a.cfg.GetString(config.KeyLogLevel)
	}

	logger, err := logging.New(logging.Options{
		Level:   level,
		File:    a.cfg.GetString(config.KeyLogFile),
		Console: console,
	})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}
	return logger, nil
}

func (a *app) close() error {
	if a.logger == nil {
		return nil
	}
	return a.logger.Close()
}

// scriptService reads path when set, otherwise the configured script.path.
func (a *app) scriptService(path string) (*application.ScriptService, error) {
	if a.cfg == nil {
		return nil, errNotLoaded
	}

	var (
		repo *tomlrepo.Repository
		err  error
	)
	if path != "" {
		repo, err = tomlrepo.NewFileRepository(path)
	} else {
		repo, err = tomlrepo.NewRepository(a.cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("wire script repository: %w", err)
	}

	return application.NewScriptService(repo), nil
}

func (a *app) playback() (config.Playback, error) {
	if a.cfg == nil {
		return config.Playback{}, errNotLoaded
	}
	return config.PlaybackSettings(a.cfg)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
