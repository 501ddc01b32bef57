package config

import (
	"os"
	"path"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Dbname            string   `yaml:"dbname"`
	ImagesDir         string   `yaml:"images_dir"`
	MaxImageSizeBytes int64    `yaml:"max_image_size_bytes"`
	DefaultChunkLimit int64    `yaml:"default_chunk_limit"`
	MaxChunkLimit     int64    `yaml:"max_chunk_limit"`
	AllowedOrigins    []string `yaml:"allowed_origins"`
	LogLevel          string   `yaml:"log_level"`
	LogJSON           bool     `yaml:"log_json"`
}

type Private struct {
	MongoURI string `yaml:"mongo_uri"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.Dbname == "" {
		c.Public.Dbname = "neon"
	}
	if c.Public.ImagesDir == "" {
		c.Public.ImagesDir = "images"
	}
	if c.Public.MaxImageSizeBytes == 0 {
		c.Public.MaxImageSizeBytes = 4 << 20
	}
	if c.Public.DefaultChunkLimit == 0 {
		c.Public.DefaultChunkLimit = 10
	}
	if c.Public.MaxChunkLimit == 0 {
		c.Public.MaxChunkLimit = 100
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
	if c.Private.MongoURI == "" {
		c.Private.MongoURI = "mongodb://127.0.0.1:27017"
	}
}
