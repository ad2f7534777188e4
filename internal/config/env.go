package config

import (
	"fmt"
	"os"
	"strconv"
)

// applyEnvOverrides lets environment variables win over file values and
// defaults. Overrides are listed explicitly so the supported surface is
// visible in one place.
func applyEnvOverrides(config *Config) error {
	overrideString(&config.Server.Port, "SERVER_PORT")
	overrideString(&config.Server.Mode, "SERVER_MODE")

	overrideString(&config.Database.Driver, "DB_DRIVER")
	overrideString(&config.Database.Host, "DB_HOST")
	overrideString(&config.Database.Port, "DB_PORT")
	overrideString(&config.Database.User, "DB_USER")
	overrideString(&config.Database.Password, "DB_PASSWORD")
	overrideString(&config.Database.DBName, "DB_NAME")
	overrideString(&config.Database.SSLMode, "DB_SSLMODE")
	overrideString(&config.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")
	if err := overrideInt(&config.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return err
	}
	if err := overrideInt(&config.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return err
	}

	overrideString(&config.JWT.Secret, "JWT_SECRET")
	overrideString(&config.JWT.AccessTokenExpiration, "JWT_ACCESS_TOKEN_EXPIRATION")
	overrideString(&config.JWT.RefreshTokenExpiration, "JWT_REFRESH_TOKEN_EXPIRATION")
	overrideString(&config.JWT.Issuer, "JWT_ISSUER")

	overrideString(&config.Logging.Level, "LOG_LEVEL")
	overrideString(&config.Logging.Format, "LOG_FORMAT")

	return nil
}

func overrideString(target *string, key string) {
	if value, exists := os.LookupEnv(key); exists {
		*target = value
	}
}

func overrideInt(target *int, key string) error {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	*target = parsed
	return nil
}
