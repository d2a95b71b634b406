package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinMatchScore < 1 || c.Matching.MinMatchScore > 150 {
		return errors.New("matching.min_match_score must be between 1 and 150")
	}
	if c.Matching.NewReleaseWindowDays < 1 {
		return errors.New("matching.new_release_window_days must be >= 1")
	}
	return nil
}

func (c *Config) validateModel() error {
	switch c.Model.Policy {
	case "gate", "triage":
	default:
		return fmt.Errorf("model.policy must be gate or triage, got %q", c.Model.Policy)
	}
	if err := validateThreshold("model.accept_threshold", c.Model.AcceptThreshold); err != nil {
		return err
	}
	if err := validateThreshold("model.reject_threshold", c.Model.RejectThreshold); err != nil {
		return err
	}
	for _, thresholds := range []struct {
		name   string
		values map[string]float64
	}{
		{"model.trust_accept_thresholds", c.Model.TrustAcceptThresholds},
		{"model.trust_reject_thresholds", c.Model.TrustRejectThresholds},
		{"model.source_accept_thresholds", c.Model.SourceAcceptThresholds},
		{"model.source_reject_thresholds", c.Model.SourceRejectThresholds},
	} {
		for key, value := range thresholds.values {
			if value <= 0 || value >= 1 {
				return fmt.Errorf("%s[%s] must be inside (0,1), got %v", thresholds.name, key, value)
			}
		}
	}
	return nil
}

// validateThreshold allows zero, which means "use the artifact default".
func validateThreshold(name string, value float64) error {
	if value == 0 {
		return nil
	}
	if value <= 0 || value >= 1 {
		return fmt.Errorf("%s must be inside (0,1), got %v", name, value)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
}
