package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `json:"server"`
	Database     DatabaseConfig     `json:"database"`
	Scoring      ScoringConfig      `json:"scoring"`
	Reports      ReportsConfig      `json:"reports"`
	Tokenization TokenizationConfig `json:"tokenization"`
	Logging      LoggingConfig      `json:"logging"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Host           string        `json:"host"`
	Port           int           `json:"port"`
	User           string        `json:"user"`
	Password       string        `json:"password"`
	DBName         string        `json:"db_name"`
	SSLMode        string        `json:"ssl_mode"`
	MaxConnections int           `json:"max_connections"`
	MaxIdleConns   int           `json:"max_idle_conns"`
	MaxLifetime    time.Duration `json:"max_lifetime"`
}

// ScoringConfig tunes the composite scoring policy. Zero values fall back to
// the engine defaults.
type ScoringConfig struct {
	ReferenceVersion         string  `json:"reference_version"`
	SROIWeight               float64 `json:"sroi_weight"`
	FiscalWeight             float64 `json:"fiscal_weight"`
	CreditScaleFactor        float64 `json:"credit_scale_factor"`
	CreditFloor              int     `json:"credit_floor"`
	DisableCrimeImpact       bool    `json:"disable_crime_impact"`
	DisableEnvironmental     bool    `json:"disable_environmental"`
	CrimeBudgetShare         float64 `json:"crime_budget_share"`
	EnvironmentalBudgetShare float64 `json:"environmental_budget_share"`
}

// ReportsConfig configures report generation and the periodic export job.
type ReportsConfig struct {
	OutputDir    string `json:"output_dir"`
	ExportCron   string `json:"export_cron"`
	Organization string `json:"organization"`
}

// TokenizationConfig configures the Stellar issuance client.
type TokenizationConfig struct {
	HorizonURL        string `json:"horizon_url"`
	NetworkPassphrase string `json:"network_passphrase"`
	AssetCode         string `json:"asset_code"`
	IssuerSecretKey   string `json:"issuer_secret_key"`
	DistributorSecret string `json:"distributor_secret_key"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "impact_portal",
			SSLMode: "disable",
		},
		Reports: ReportsConfig{
			OutputDir:    "reports",
			ExportCron:   "0 6 * * 1",
			Organization: "Impact Ledger",
		},
		Tokenization: TokenizationConfig{
			HorizonURL:        "https://horizon-testnet.stellar.org",
			NetworkPassphrase: "Test SDF Network ; September 2015",
			AssetCode:         "UISV",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DATABASE_PORT"); dbPort != "" {
		if p, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = p
		}
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if secret := os.Getenv("STELLAR_ISSUER_SECRET"); secret != "" {
		config.Tokenization.IssuerSecretKey = secret
	}
	if secret := os.Getenv("STELLAR_DISTRIBUTOR_SECRET"); secret != "" {
		config.Tokenization.DistributorSecret = secret
	}
	if horizon := os.Getenv("STELLAR_HORIZON_URL"); horizon != "" {
		config.Tokenization.HorizonURL = horizon
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if dir := os.Getenv("REPORTS_OUTPUT_DIR"); dir != "" {
		config.Reports.OutputDir = dir
	}
}

// GetDatabaseURL returns the database connection string
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
