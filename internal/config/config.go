package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port             int              `json:"port"`
	Database         DatabaseConfig   `json:"database"`
	LogConfig        logger.LogConfig `json:"log_config"`
	Matching         MatchingConfig   `json:"matching"`
	Archive          ArchiveConfig    `json:"archive"`
	CORSAllowOrigins []string         `json:"cors_allow_origins"`
	RateLimitSeconds int              `json:"rate_limit_seconds"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// MatchingConfig carries the chunking geometry and matcher tuning knobs.
// Classification thresholds are deployment constants, not computed values;
// a bad value here is a deployment error.
type MatchingConfig struct {
	WindowWords      int `json:"window_words"`
	OverlapWords     int `json:"overlap_words"`
	FuzzyTopK        int `json:"fuzzy_top_k"`
	FuzzyConcurrency int `json:"fuzzy_concurrency"`
	CacheSize        int `json:"cache_size"`
}

type ArchiveConfig struct {
	Enabled       bool        `json:"enabled"`
	Type          string      `json:"type"`
	Data          interface{} `json:"data"`
	RetentionDays int         `json:"retention_days"`
	CleanupSpec   string      `json:"cleanup_spec"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Matching.WindowWords == 0 {
		cfg.Matching.WindowWords = 600
	}
	if cfg.Matching.OverlapWords == 0 {
		cfg.Matching.OverlapWords = 120
	}
	if cfg.Matching.OverlapWords >= cfg.Matching.WindowWords {
		return nil, fmt.Errorf("matching.overlap_words must be smaller than window_words")
	}
	if cfg.Matching.FuzzyTopK == 0 {
		cfg.Matching.FuzzyTopK = 5
	}
	if cfg.Matching.FuzzyConcurrency == 0 {
		cfg.Matching.FuzzyConcurrency = 8
	}
	if cfg.Matching.CacheSize == 0 {
		cfg.Matching.CacheSize = 256
	}
	if cfg.Archive.Enabled {
		if cfg.Archive.Type == "" {
			return nil, fmt.Errorf("archive.type is required when archive is enabled")
		}
		if cfg.Archive.RetentionDays == 0 {
			cfg.Archive.RetentionDays = 90
		}
		if cfg.Archive.CleanupSpec == "" {
			cfg.Archive.CleanupSpec = "0 4 * * *"
		}
	}
	return &cfg, nil
}
