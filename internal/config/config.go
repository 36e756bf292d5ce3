package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Mmodarre/AusHealthSim/internal/logging"
)

var log = logging.GetLogger()

// DefaultDatabase is the operational database the simulation writes to.
const DefaultDatabase = "HealthInsuranceAU"

// DBConfig holds SQL Server connection settings.
type DBConfig struct {
	Server   string
	Port     int
	Database string
	Username string
	Password string
}

// Load builds a DBConfig from the environment, optionally seeded from a
// dotenv file. Values already present in the environment win over the file.
func Load(envFile string) (*DBConfig, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case err == nil:
			log.Debug("Loaded environment file", "path", envFile)
		case os.IsNotExist(err):
			log.Debug("No environment file, using process environment", "path", envFile)
		default:
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := &DBConfig{
		Server:   os.Getenv("DB_SERVER"),
		Port:     1433,
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	return cfg, nil
}

// Validate reports the settings without which a connection cannot be made.
func (c *DBConfig) Validate() error {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "DB_SERVER")
	}
	if c.Username == "" {
		missing = append(missing, "DB_USERNAME")
	}
	if c.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing database configuration: %v", missing)
	}
	return nil
}

// ConnectionString renders the go-mssqldb ADO-style connection string.
func (c *DBConfig) ConnectionString() string {
	return fmt.Sprintf(
		"server=%s;port=%d;database=%s;user id=%s;password=%s;TrustServerCertificate=true",
		c.Server, c.Port, c.Database, c.Username, c.Password,
	)
}
