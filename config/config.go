package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ubi-analysis/models"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaselineDir string
	ReformDir   string
	SSVarsFile  string
	ParamsFile  string
	OutputDir   string

	IncomeGroupLabels []string
	BaseSuffix        string
	ReformSuffix      string
	ShareTolerance    float64
	CompareTolerance  float64
	DisplayDecimals   int

	LogLevel string

	PostgresEnabled     bool
	PostgresHost        string
	PostgresPort        string
	PostgresUser        string
	PostgresPassword    string
	PostgresDB          string
	PostgresSSLMode     string
	PostgresTablePrefix string
	MaxRetries          int
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		BaselineDir: getEnv("BASELINE_DIR", "./data/baseline"),
		ReformDir:   getEnv("REFORM_DIR", "./data/ubi"),
		SSVarsFile:  getEnv("SS_VARS_FILE", "ss_vars.yaml"),
		ParamsFile:  getEnv("PARAMS_FILE", "model_params.yaml"),
		OutputDir:   getEnv("OUTPUT_DIR", "./output"),

		IncomeGroupLabels: getEnvList("INCOME_GROUP_LABELS", models.DefaultIncomeGroupLabels),
		BaseSuffix:        getEnv("BASE_SUFFIX", "_base"),
		ReformSuffix:      getEnv("REFORM_SUFFIX", "_reform"),
		ShareTolerance:    getEnvFloat("SHARE_TOLERANCE", 1e-6),
		CompareTolerance:  getEnvFloat("COMPARE_TOLERANCE", 1e-9),
		DisplayDecimals:   getEnvInt("DISPLAY_DECIMALS", 2),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		PostgresEnabled:     getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:        getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:        getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:        getEnv("POSTGRES_USER", "ogusa"),
		PostgresPassword:    getEnv("POSTGRES_PASSWORD", "ogusa123"),
		PostgresDB:          getEnv("POSTGRES_DB", "ubi_analysis"),
		PostgresSSLMode:     getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTablePrefix: getEnv("POSTGRES_TABLE_PREFIX", "ubi_"),
		MaxRetries:          getEnvInt("MAX_RETRIES", 5),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value; blank entries are dropped.
func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		out := make([]string, len(fallback))
		copy(out, fallback)
		return out
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
