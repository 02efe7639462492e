package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RatingsSourceMemory   = "memory"
	RatingsSourcePostgres = "postgres"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Artifacts      ArtifactConfig
	Recommendation RecommendationConfig
	Database       DatabaseConfig
	Redis          RedisConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port    string
	WebPort string
}

// ArtifactConfig points at the precomputed tables produced by training.
type ArtifactConfig struct {
	Dir           string
	UserEncoded   string
	UserDecoded   string
	AnimeEncoded  string
	AnimeDecoded  string
	UserWeights   string
	AnimeWeights  string
	AnimeMetadata string
	Ratings       string
	RatingsSource string
}

type RecommendationConfig struct {
	UserWeight       float64
	ContentWeight    float64
	SimilarUsers     int
	Candidates       int
	ContentNeighbors int
	TopN             int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	num := func(key string, def int) int {
		v, err := getInt(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}
	float := func(key string, def float64) float64 {
		v, err := getFloat(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	dir := getEnv("ARTIFACTS_DIR", "artifacts")
	processed := filepath.Join(dir, "processed")
	weights := filepath.Join(dir, "weights")

	redisTTL, err := time.ParseDuration(getEnv("REDIS_TTL", "10m"))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid REDIS_TTL: %w", err))
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Anime Recommendation API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8000"),
			WebPort: getEnv("WEB_PORT", "5000"),
		},
		Artifacts: ArtifactConfig{
			Dir:           dir,
			UserEncoded:   getEnv("USER2USER_ENCODED", filepath.Join(processed, "user2user_encoded.json")),
			UserDecoded:   getEnv("USER2USER_DECODED", filepath.Join(processed, "user2user_decoded.json")),
			AnimeEncoded:  getEnv("ANIME2ANIME_ENCODED", filepath.Join(processed, "anime2anime_encoded.json")),
			AnimeDecoded:  getEnv("ANIME2ANIME_DECODED", filepath.Join(processed, "anime2anime_decoded.json")),
			UserWeights:   getEnv("USER_WEIGHTS_PATH", filepath.Join(weights, "user_weights.json")),
			AnimeWeights:  getEnv("ANIME_WEIGHTS_PATH", filepath.Join(weights, "anime_weights.json")),
			AnimeMetadata: getEnv("ANIME_DF", filepath.Join(processed, "anime_df.csv")),
			Ratings:       getEnv("RATING_DF", filepath.Join(processed, "rating_df.csv")),
			RatingsSource: strings.ToLower(getEnv("RATINGS_SOURCE", RatingsSourceMemory)),
		},
		Recommendation: RecommendationConfig{
			UserWeight:       float("RECO_USER_WEIGHT", 0.5),
			ContentWeight:    float("RECO_CONTENT_WEIGHT", 0.5),
			SimilarUsers:     num("RECO_SIMILAR_USERS", 10),
			Candidates:       num("RECO_CANDIDATES", 10),
			ContentNeighbors: num("RECO_CONTENT_NEIGHBORS", 10),
			TopN:             num("RECO_TOP_N", 10),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "anime_recommender"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:       strings.EqualFold(getEnv("REDIS_ENABLED", "false"), "true"),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       num("REDIS_DB", 0),
			TTL:           redisTTL,
		},
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	switch cfg.Artifacts.RatingsSource {
	case RatingsSourceMemory:
	case RatingsSourcePostgres:
		if cfg.Database.Password == "" {
			return nil, errors.New("missing database password")
		}
	default:
		return nil, fmt.Errorf("unknown ratings source %q", cfg.Artifacts.RatingsSource)
	}

	if cfg.Recommendation.SimilarUsers <= 0 || cfg.Recommendation.TopN <= 0 {
		return nil, errors.New("similar users and top n must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
