package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gamematch/internal/config"
	"gamematch/internal/engine"
	"gamematch/internal/logging"
	"gamematch/internal/mlfilter"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger, _ = logging.New(logging.Options{Level: "info", Format: "console"})
		}
		c.logger = logger
	})
	return c.logger
}

// buildEngine assembles the match pipeline. A missing or unreadable model
// artifact disables the filter stage rather than failing the command.
func (c *commandContext) buildEngine() (*engine.Engine, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(c.buildFilter(cfg)), nil
}

func (c *commandContext) buildFilter(cfg *config.Config) *mlfilter.Filter {
	if cfg == nil || cfg.Model.Path == "" {
		return nil
	}
	artifact, err := mlfilter.Load(cfg.Model.Path)
	if err != nil {
		c.ensureLogger().Warn("model artifact unavailable, running heuristics only",
			"component", "model", "path", cfg.Model.Path, "error", err)
		return nil
	}
	return mlfilter.New(artifact, filterOptions(cfg))
}

func filterOptions(cfg *config.Config) mlfilter.Options {
	return mlfilter.Options{
		Policy:                 cfg.Model.Policy,
		AcceptThreshold:        cfg.Model.AcceptThreshold,
		RejectThreshold:        cfg.Model.RejectThreshold,
		TrustAcceptThresholds:  cfg.Model.TrustAcceptThresholds,
		TrustRejectThresholds:  cfg.Model.TrustRejectThresholds,
		SourceAcceptThresholds: cfg.Model.SourceAcceptThresholds,
		SourceRejectThresholds: cfg.Model.SourceRejectThresholds,
		ReviewSources:          cfg.Model.ReviewSources,
	}
}

func verdictLabel(matches bool) string {
	if matches {
		return "match"
	}
	return "no match"
}

func loadArtifact(cfg *config.Config, pathFlag string) (*mlfilter.Artifact, string, error) {
	path := strings.TrimSpace(pathFlag)
	if path == "" && cfg != nil {
		path = cfg.Model.Path
	}
	if path == "" {
		return nil, "", fmt.Errorf("no model artifact configured; set model.path or pass --model")
	}
	artifact, err := mlfilter.Load(path)
	if err != nil {
		return nil, "", err
	}
	return artifact, path, nil
}
