package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultRawDir = "artifacts/raw"

type IngestionFile struct {
	DataIngestion DataIngestionConfig `yaml:"data_ingestion"`
}

type DataIngestionConfig struct {
	BucketName string         `yaml:"bucket_name"`
	FileNames  []string       `yaml:"bucket_file_name"`
	RawDir     string         `yaml:"raw_dir"`
	MaxRows    map[string]int `yaml:"max_rows"`
}

// LoadIngestion reads the data_ingestion section of a YAML config file.
func LoadIngestion(path string) (*DataIngestionConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file IngestionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := file.DataIngestion
	if cfg.BucketName == "" {
		return nil, errors.New("missing data_ingestion.bucket_name")
	}
	if len(cfg.FileNames) == 0 {
		return nil, errors.New("missing data_ingestion.bucket_file_name")
	}
	if cfg.RawDir == "" {
		cfg.RawDir = defaultRawDir
	}

	return &cfg, nil
}
