package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// envPrefix is the namespace for environment overrides. A .env file in the
// working directory is honoured the same way; explicit environment wins.
const envPrefix = "GAMEMATCH_"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.applyEnvOverrides(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeModel()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Corpus.DatabasePath) == "" {
		c.Corpus.DatabasePath = defaultCorpusDatabasePath
	}
	if c.Corpus.DatabasePath, err = expandPath(c.Corpus.DatabasePath); err != nil {
		return fmt.Errorf("corpus.database_path: %w", err)
	}
	return nil
}

// applyEnvOverrides layers GAMEMATCH_* variables over the file values. The
// .env load never sets variables that already exist in the environment.
func (c *Config) applyEnvOverrides() error {
	_ = godotenv.Load()

	if value, ok := lookupEnv("MODEL_PATH"); ok {
		c.Model.Path = value
	}
	if value, ok := lookupEnv("POLICY"); ok {
		c.Model.Policy = value
	}
	if value, ok := lookupEnv("REVIEW_SOURCES"); ok {
		c.Model.ReviewSources = splitList(value)
	}
	if err := overrideInt(&c.Matching.MinMatchScore, "MIN_MATCH_SCORE"); err != nil {
		return err
	}
	if err := overrideInt(&c.Matching.NewReleaseWindowDays, "NEW_RELEASE_DAYS"); err != nil {
		return err
	}
	if err := overrideFloat(&c.Model.AcceptThreshold, "ACCEPT_THRESHOLD"); err != nil {
		return err
	}
	if err := overrideFloat(&c.Model.RejectThreshold, "REJECT_THRESHOLD"); err != nil {
		return err
	}

	var err error
	if c.Model.TrustAcceptThresholds, err = overrideThresholdMap(c.Model.TrustAcceptThresholds, "ACCEPT_THRESHOLD_TRUST_"); err != nil {
		return err
	}
	if c.Model.SourceAcceptThresholds, err = overrideThresholdMap(c.Model.SourceAcceptThresholds, "ACCEPT_THRESHOLD_SOURCE_"); err != nil {
		return err
	}
	if c.Model.TrustRejectThresholds, err = overrideThresholdMap(c.Model.TrustRejectThresholds, "REJECT_THRESHOLD_TRUST_"); err != nil {
		return err
	}
	if c.Model.SourceRejectThresholds, err = overrideThresholdMap(c.Model.SourceRejectThresholds, "REJECT_THRESHOLD_SOURCE_"); err != nil {
		return err
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func overrideInt(target *int, key string) error {
	value, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*target = parsed
	return nil
}

func overrideFloat(target *float64, key string) error {
	value, ok := lookupEnv(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*target = parsed
	return nil
}

// overrideThresholdMap collects per-trust or per-source overrides from the
// environment. The variable suffix becomes the map key, lowercased with
// underscores read as dots so source keys like "hydra.fitgirl" fit an
// environment variable name.
func overrideThresholdMap(existing map[string]float64, keyPrefix string) (map[string]float64, error) {
	prefix := envPrefix + keyPrefix
	for _, entry := range os.Environ() {
		name, value, found := strings.Cut(entry, "=")
		if !found || !strings.HasPrefix(name, prefix) {
			continue
		}
		suffix := strings.TrimPrefix(name, prefix)
		value = strings.TrimSpace(value)
		if suffix == "" || value == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return existing, fmt.Errorf("%s: %w", name, err)
		}
		if existing == nil {
			existing = make(map[string]float64)
		}
		key := strings.ReplaceAll(strings.ToLower(suffix), "_", ".")
		existing[key] = parsed
	}
	return existing, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) normalizeMatching() {
	if c.Matching.MinMatchScore <= 0 {
		c.Matching.MinMatchScore = defaultMinMatchScore
	}
	if c.Matching.NewReleaseWindowDays <= 0 {
		c.Matching.NewReleaseWindowDays = defaultNewReleaseWindowDays
	}
}

func (c *Config) normalizeModel() {
	c.Model.Policy = strings.ToLower(strings.TrimSpace(c.Model.Policy))
	if c.Model.Policy == "" {
		c.Model.Policy = defaultModelPolicy
	}
	c.Model.Path = strings.TrimSpace(c.Model.Path)
	if c.Model.Path != "" {
		if expanded, err := expandPath(c.Model.Path); err == nil {
			c.Model.Path = expanded
		}
	}
	c.Model.TrustAcceptThresholds = lowercaseKeys(c.Model.TrustAcceptThresholds)
	c.Model.TrustRejectThresholds = lowercaseKeys(c.Model.TrustRejectThresholds)
	c.Model.SourceAcceptThresholds = lowercaseKeys(c.Model.SourceAcceptThresholds)
	c.Model.SourceRejectThresholds = lowercaseKeys(c.Model.SourceRejectThresholds)

	sources := make([]string, 0, len(c.Model.ReviewSources))
	seen := make(map[string]struct{}, len(c.Model.ReviewSources))
	for _, source := range c.Model.ReviewSources {
		normalized := strings.ToLower(strings.TrimSpace(source))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		sources = append(sources, normalized)
	}
	c.Model.ReviewSources = sources
}

func lowercaseKeys(values map[string]float64) map[string]float64 {
	if len(values) == 0 {
		return values
	}
	out := make(map[string]float64, len(values))
	for key, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(key))
		if normalized == "" {
			continue
		}
		out[normalized] = value
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
