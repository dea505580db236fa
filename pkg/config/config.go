package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// PDF rendering
	ChromiumPath string        // optional explicit browser binary, empty means lookup from PATH
	PDFTimeout   time.Duration // per-request budget for a headless render
	PDFRateLimit string        // ulule/limiter formatted rate, e.g. "10-M"

	// CORS
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CHROMIUM_PATH", "")
	viper.SetDefault("PDF_TIMEOUT", "30s")
	viper.SetDefault("PDF_RATE_LIMIT", "10-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ChromiumPath = viper.GetString("CHROMIUM_PATH")

	pdfTimeoutStr := viper.GetString("PDF_TIMEOUT")
	pdfTimeout, err := time.ParseDuration(pdfTimeoutStr)
	if err != nil {
		pdfTimeout = 30 * time.Second
		if pdfTimeoutStr != "" {
			log.Printf("Warning: Invalid value for PDF_TIMEOUT ('%s'). Defaulting to %s.\n", pdfTimeoutStr, pdfTimeout.String())
		}
	}
	cfg.PDFTimeout = pdfTimeout

	cfg.PDFRateLimit = viper.GetString("PDF_RATE_LIMIT")
	if cfg.PDFRateLimit == "" {
		cfg.PDFRateLimit = "10-M"
	}

	origins := viper.GetString("CORS_ALLOW_ORIGINS")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}

	return cfg, nil
}
