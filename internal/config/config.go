// Package config resolves settings from the config file, CTXPLAY_* environment variables and
// built-in defaults, in that order of precedence (lowest last).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/ctxplay"
	envPrefix  = "CTXPLAY"

	KeyScriptPath    = "script.path"
	KeyCapacityLimit = "playback.capacity_limit"
	KeyNavSlidesDir  = "nav.slides_dir"
	KeyNavOrder      = "nav.order"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"

	KeyWordDelay               = "timing.word_delay"
	KeySweepStep               = "timing.sweep_step"
	KeySweepStepWithAttachment = "timing.sweep_step_with_attachment"
	KeyAttachmentPerWeight     = "timing.attachment_per_weight"
	KeySweepHold               = "timing.sweep_hold"
	KeyUserPause               = "timing.user_pause"
	KeyAssistantPause          = "timing.assistant_pause"
)

// Load reads file when set, otherwise $HOME/.config/ctxplay/config.toml if it exists.
func Load(file string) (*viper.Viper, error) {
	cfg := viper.New()
	setDefaults(cfg)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if file != "" {
		cfg.SetConfigFile(file)
		if err := cfg.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults(cfg *viper.Viper) {
	timing := domain.DefaultTiming()

	cfg.SetDefault(KeyScriptPath, "")
	cfg.SetDefault(KeyCapacityLimit, domain.DefaultCapacityLimit)
	cfg.SetDefault(KeyNavSlidesDir, "slides")
	cfg.SetDefault(KeyNavOrder, domain.DefaultSlideOrder)
	cfg.SetDefault(KeyLogLevel, "info")
	cfg.SetDefault(KeyLogFile, "")

	cfg.SetDefault(KeyWordDelay, timing.WordDelay)
	cfg.SetDefault(KeySweepStep, timing.SweepStep)
	cfg.SetDefault(KeySweepStepWithAttachment, timing.SweepStepWithAttachment)
	cfg.SetDefault(KeyAttachmentPerWeight, timing.AttachmentPerWeight)
	cfg.SetDefault(KeySweepHold, timing.SweepHold)
	cfg.SetDefault(KeyUserPause, timing.UserPause)
	cfg.SetDefault(KeyAssistantPause, timing.AssistantPause)
}

type Playback struct {
	Timing        domain.Timing
	CapacityLimit float64
}

// PlaybackSettings returns validated timing and capacity settings.
func PlaybackSettings(cfg *viper.Viper) (Playback, error) {
	playback := Playback{
		Timing: domain.Timing{
			WordDelay:               cfg.GetDuration(KeyWordDelay),
			SweepStep:               cfg.GetDuration(KeySweepStep),
			SweepStepWithAttachment: cfg.GetDuration(KeySweepStepWithAttachment),
			AttachmentPerWeight:     cfg.GetDuration(KeyAttachmentPerWeight),
			SweepHold:               cfg.GetDuration(KeySweepHold),
			UserPause:               cfg.GetDuration(KeyUserPause),
			AssistantPause:          cfg.GetDuration(KeyAssistantPause),
		},
		CapacityLimit: cfg.GetFloat64(KeyCapacityLimit),
	}

	if err := domain.ValidateCapacityLimit(playback.CapacityLimit); err != nil {
		return Playback{}, fmt.Errorf("%s: %w", KeyCapacityLimit, err)
	}
	if err := playback.Timing.Validate(); err != nil {
		return Playback{}, fmt.Errorf("timing: %w", err)
	}

	return playback, nil
}

type Nav struct {
	SlidesDir string
	Order     []string
}

func NavSettings(cfg *viper.Viper) Nav {
	return Nav{
		SlidesDir: cfg.GetString(KeyNavSlidesDir),
		Order:     cfg.GetStringSlice(KeyNavOrder),
	}
}
