package seedbot

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	PLACEHOLDER_API_KEY = "YOUR_DOUBAO_API_KEY_HERE"

	DEFAULT_MODEL          = "doubao-seedream-3-0-t2i-250415"
	DEFAULT_SIZE           = "1024x1024"
	DEFAULT_GUIDANCE_SCALE = 2.5
	DEFAULT_SEED           = 42
	DEFAULT_WATERMARK      = true
	DEFAULT_CACHE_MAX_SIZE = 10
)

type APIConfig struct {
	BaseURL               string `yaml:"base_url"`
	VolcanoGenerateAPIKey string `yaml:"volcano_generate_api_key"`
}

// GenerationConfig keeps the tunable defaults loose-typed: config files in
// the wild carry these as strings or ints interchangeably, and a typo here
// must not reject the whole request.
type GenerationConfig struct {
	DefaultModel         string `yaml:"default_model"`
	DefaultSize          string `yaml:"default_size"`
	DefaultGuidanceScale any    `yaml:"default_guidance_scale"`
	DefaultSeed          any    `yaml:"default_seed"`
	DefaultWatermark     any    `yaml:"default_watermark"`
}

type CacheConfig struct {
	Enabled *bool `yaml:"enabled"`
	MaxSize int   `yaml:"max_size"`
}

type Config struct {
	API        APIConfig        `yaml:"api"`
	Generation GenerationConfig `yaml:"generation"`
	Cache      CacheConfig      `yaml:"cache"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:               "https://ark.cn-beijing.volces.com/api/v3",
			VolcanoGenerateAPIKey: PLACEHOLDER_API_KEY,
		},
		Generation: GenerationConfig{
			DefaultModel: DEFAULT_MODEL,
			DefaultSize:  DEFAULT_SIZE,
		},
		Cache: CacheConfig{
			MaxSize: DEFAULT_CACHE_MAX_SIZE,
		},
	}
}

// LoadConfig reads a YAML config file over the defaults. A missing file is
// not an error; the defaults are returned as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("config file %s not found, using defaults", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// GuidanceScale coerces the configured guidance scale, falling back to the
// fixed default on any bad value.
func (c *Config) GuidanceScale() float64 {
	v := c.Generation.DefaultGuidanceScale
	if v == nil {
		return DEFAULT_GUIDANCE_SCALE
	}
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
	}
	log.Printf("default_guidance_scale 值无效 (%v)，使用默认值 %v", v, DEFAULT_GUIDANCE_SCALE)
	return DEFAULT_GUIDANCE_SCALE
}

// Seed coerces the configured seed, falling back to the fixed default.
func (c *Config) Seed() int {
	v := c.Generation.DefaultSeed
	if v == nil {
		return DEFAULT_SEED
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	log.Printf("default_seed 值无效 (%v)，使用默认值 %d", v, DEFAULT_SEED)
	return DEFAULT_SEED
}

// Watermark coerces the configured watermark flag, falling back to true.
func (c *Config) Watermark() bool {
	v := c.Generation.DefaultWatermark
	if v == nil {
		return DEFAULT_WATERMARK
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(strings.TrimSpace(val), "true")
	}
	log.Printf("default_watermark 值无效 (%v)，使用默认值 %v", v, DEFAULT_WATERMARK)
	return DEFAULT_WATERMARK
}

func (c *Config) DefaultModel() string {
	if c.Generation.DefaultModel == "" {
		return DEFAULT_MODEL
	}
	return c.Generation.DefaultModel
}

func (c *Config) DefaultSize() string {
	if c.Generation.DefaultSize == "" {
		return DEFAULT_SIZE
	}
	return c.Generation.DefaultSize
}

func (c *Config) CacheEnabled() bool {
	if c.Cache.Enabled == nil {
		return true
	}
	return *c.Cache.Enabled
}

func (c *Config) CacheMaxSize() int {
	if c.Cache.MaxSize <= 0 {
		return DEFAULT_CACHE_MAX_SIZE
	}
	return c.Cache.MaxSize
}
