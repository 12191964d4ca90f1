package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Poster  PosterConfig  `mapstructure:"poster"`
	Trailer TrailerConfig `mapstructure:"trailer"`
	Server  ServerConfig  `mapstructure:"server"`
	Rows    []RowConfig   `mapstructure:"rows"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	URL      string        `mapstructure:"url"`
	APIKey   string        `mapstructure:"api_key"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// PosterConfig controls where poster images are loaded from
type PosterConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// TrailerConfig controls trailer lookups
type TrailerConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// ServerConfig contains web server settings
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	Concurrency int      `mapstructure:"concurrency"`
}

// RowConfig describes one poster row
type RowConfig struct {
	Title    string `mapstructure:"title"`
	FetchURL string `mapstructure:"fetch_url"`
	Large    bool   `mapstructure:"large"`
	Filter   string `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
