// Package config loads server configuration from environment variables
// and optional .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the render service.
type Config struct {
	Server ServerConfig
	Render RenderConfig
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// RenderConfig bounds render jobs and names the preset sources.
type RenderConfig struct {
	// PresetPaths are files or directories of waveform preset files
	// loaded at startup.
	PresetPaths []string

	// MaxHarmonics caps the truncation order a request may ask for.
	MaxHarmonics int

	// MaxSamples caps the grid size a request may ask for.
	MaxSamples int

	// MaxImagePixels caps width*height of a requested canvas.
	MaxImagePixels int

	// Workers bounds concurrently executing render jobs.
	Workers int

	// JobTTL is how long finished jobs and their images stay available.
	JobTTL time.Duration
}

// Defaults applied when the environment leaves a variable unset.
const (
	defaultPort           = "8080"
	defaultEnv            = "dev"
	defaultOrigins        = "http://localhost:5173,http://localhost:3000"
	defaultMaxHarmonics   = 100000
	defaultMaxSamples     = 1 << 20
	defaultMaxImagePixels = 16 << 20
	defaultWorkers        = 4
	defaultJobTTL         = 15 * time.Minute
)

// Load reads configuration from environment variables, with an optional
// .env.<environment> file underneath. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("ENVIRONMENT", defaultEnv)
	v.SetDefault("ALLOWED_ORIGINS", defaultOrigins)
	v.SetDefault("PRESET_PATHS", "")
	v.SetDefault("MAX_HARMONICS", defaultMaxHarmonics)
	v.SetDefault("MAX_SAMPLES", defaultMaxSamples)
	v.SetDefault("MAX_IMAGE_PIXELS", defaultMaxImagePixels)
	v.SetDefault("RENDER_WORKERS", defaultWorkers)
	v.SetDefault("JOB_TTL", defaultJobTTL.String())

	v.AutomaticEnv()

	env := v.GetString("ENVIRONMENT")
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // the file is optional

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = env
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Render.PresetPaths = splitList(v.GetString("PRESET_PATHS"))
	config.Render.MaxHarmonics = v.GetInt("MAX_HARMONICS")
	config.Render.MaxSamples = v.GetInt("MAX_SAMPLES")
	config.Render.MaxImagePixels = v.GetInt("MAX_IMAGE_PIXELS")
	config.Render.Workers = v.GetInt("RENDER_WORKERS")
	config.Render.JobTTL = v.GetDuration("JOB_TTL")

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch {
	case c.Server.Port == "":
		return fmt.Errorf("config: port must not be empty")
	case c.Render.MaxHarmonics <= 0:
		return fmt.Errorf("config: MAX_HARMONICS must be positive, got %d", c.Render.MaxHarmonics)
	case c.Render.MaxSamples < 2:
		return fmt.Errorf("config: MAX_SAMPLES must be at least 2, got %d", c.Render.MaxSamples)
	case c.Render.MaxImagePixels <= 0:
		return fmt.Errorf("config: MAX_IMAGE_PIXELS must be positive, got %d", c.Render.MaxImagePixels)
	case c.Render.Workers <= 0:
		return fmt.Errorf("config: RENDER_WORKERS must be positive, got %d", c.Render.Workers)
	case c.Render.JobTTL <= 0:
		return fmt.Errorf("config: JOB_TTL must be positive, got %s", c.Render.JobTTL)
	}
	return nil
}

// splitList splits a comma-separated variable into trimmed, non-empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
