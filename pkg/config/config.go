package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"f1racepredictor/pkg/estimator"
	"f1racepredictor/pkg/telemetry"
)

const (
	DefaultCacheDir      = "f1_cache"
	DefaultListenAddress = ":8080"

	ProfileSeason  = "season"
	ProfileHistory = "history"

	EnvAPIDomain     = "F1_API_DOMAIN"
	EnvCacheDir      = "F1_CACHE_DIR"
	EnvListenAddress = "WEBSERVER_ADDRESS"

	// FirstSeason is the oldest season OpenF1 has race laps for.
	FirstSeason = 2023

	maxFileSize = 1 * 1024 * 1024 // 1MB
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Profile is a named set of seasons and model parameters.
type Profile struct {
	Name         string
	Years        []int
	Trees        int
	LearningRate float64
	Seed         int64
}

var profiles = map[string]Profile{
	// last season only
	ProfileSeason: {Name: ProfileSeason, Years: []int{2024}, Trees: 200, LearningRate: 0.1, Seed: 38},
	// pool of the last three seasons
	ProfileHistory: {Name: ProfileHistory, Years: []int{2022, 2023, 2024}, Trees: 300, LearningRate: 0.05, Seed: 42},
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Config struct {
	APIDomain     string  `json:"api_domain"`
	CacheDir      string  `json:"cache_dir"`
	Profile       string  `json:"profile"`
	Years         []int   `json:"years"`
	Trees         int     `json:"trees"`
	LearningRate  float64 `json:"learning_rate"`
	MaxDepth      int     `json:"max_depth"`
	TestFraction  float64 `json:"test_fraction"`
	Seed          int64   `json:"seed"`
	ListenAddress string  `json:"listen_address"`
}

// fileConfig mirrors Config with pointer fields so omitted keys keep their value.
type fileConfig struct {
	APIDomain     *string  `json:"api_domain,omitempty"`
	CacheDir      *string  `json:"cache_dir,omitempty"`
	Profile       *string  `json:"profile,omitempty"`
	Years         []int    `json:"years,omitempty"`
	Trees         *int     `json:"trees,omitempty"`
	LearningRate  *float64 `json:"learning_rate,omitempty"`
	MaxDepth      *int     `json:"max_depth,omitempty"`
	TestFraction  *float64 `json:"test_fraction,omitempty"`
	Seed          *int64   `json:"seed,omitempty"`
	ListenAddress *string  `json:"listen_address,omitempty"`
}

func Default() *Config {
	c, _ := ForProfile(ProfileHistory)
	return c
}

func LookupProfile(name string) (Profile, error) {
	p, found := profiles[name]
	if !found {
		return Profile{}, errors.Wrapf(ErrInvalidConfig, "unknown profile %q (valid: %v)", name, ProfileNames())
	}
	return p, nil
}

func ForProfile(name string) (*Config, error) {
	p, err := LookupProfile(name)
	if err != nil {
		return nil, err
	}
	defaults := estimator.DefaultParams()
	c := &Config{
		APIDomain:     telemetry.DefaultAPIDomain,
		CacheDir:      DefaultCacheDir,
		MaxDepth:      defaults.MaxDepth,
		TestFraction:  defaults.TestFraction,
		ListenAddress: DefaultListenAddress,
	}
	c.ApplyProfile(p)
	return c, nil
}

// ApplyProfile overwrites the seasons and model parameters with the profile's.
func (c *Config) ApplyProfile(p Profile) {
	c.Profile = p.Name
	c.Years = append([]int(nil), p.Years...)
	c.Trees = p.Trees
	c.LearningRate = p.LearningRate
	c.Seed = p.Seed
}

// LoadFile merges a JSON file over c. Only keys present in the file change c;
// a "profile" key is applied first so explicit keys win over it.
func (c *Config) LoadFile(path string) error {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return errors.Wrap(err, "failed to stat config file")
	}
	if fileInfo.Size() > maxFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", cleanPath)
	}

	if fc.Profile != nil {
		p, err := LookupProfile(*fc.Profile)
		if err != nil {
			return err
		}
		c.ApplyProfile(p)
	}
	if fc.APIDomain != nil {
		c.APIDomain = *fc.APIDomain
	}
	if fc.CacheDir != nil {
		c.CacheDir = *fc.CacheDir
	}
	if fc.Years != nil {
		c.Years = fc.Years
	}
	if fc.Trees != nil {
		c.Trees = *fc.Trees
	}
	if fc.LearningRate != nil {
		c.LearningRate = *fc.LearningRate
	}
	if fc.MaxDepth != nil {
		c.MaxDepth = *fc.MaxDepth
	}
	if fc.TestFraction != nil {
		c.TestFraction = *fc.TestFraction
	}
	if fc.Seed != nil {
		c.Seed = *fc.Seed
	}
	if fc.ListenAddress != nil {
		c.ListenAddress = *fc.ListenAddress
	}
	return nil
}

// ApplyEnv overrides the connection settings from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvAPIDomain); v != "" {
		c.APIDomain = v
	}
	if v, found := lookup(getenv, EnvCacheDir); found {
		c.CacheDir = v
	}
	if v := getenv(EnvListenAddress); v != "" {
		c.ListenAddress = v
	}
}

// lookup treats "-" as an explicit empty value, which disables the cache.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	switch v {
	case "":
		return "", false
	case "-":
		return "", true
	}
	return v, true
}

// MissingSeasons lists the configured years OpenF1 can't serve. They are
// skipped at retrieval.
func (c *Config) MissingSeasons() []int {
	var missing []int
	for _, y := range c.Years {
		if y < FirstSeason {
			missing = append(missing, y)
		}
	}
	return missing
}

func (c *Config) Params() estimator.Params {
	return estimator.Params{
		Trees:          c.Trees,
		LearningRate:   c.LearningRate,
		MaxDepth:       c.MaxDepth,
		MinSamplesLeaf: 1,
		TestFraction:   c.TestFraction,
		Seed:           c.Seed,
	}
}

func (c *Config) Validate() error {
	if len(c.Years) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one season year is required")
	}
	seen := map[int]bool{}
	for _, y := range c.Years {
		if y < 1950 {
			return errors.Wrapf(ErrInvalidConfig, "invalid season %d", y)
		}
		if seen[y] {
			return errors.Wrapf(ErrInvalidConfig, "season %d listed twice", y)
		}
		seen[y] = true
	}
	if c.APIDomain == "" {
		return errors.Wrap(ErrInvalidConfig, "api domain is required")
	}
	if err := c.Params().Validate(); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}
