package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Seed     Seed
	LogLevel string
}

type Server struct {
	Port         string
	APIPrefix    string
	GinMode      string
	AllowOrigins []string
}

type Database struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type Auth struct {
	JWTSecret      string
	AccessTokenTTL time.Duration
}

type Seed struct {
	AdminPassword string
	SampleData    bool
}

// DSN builds the PostgreSQL connection string for the pgx driver.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("API_PREFIX", "/api/v1")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5433")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "postgres")
	viper.SetDefault("DATABASE_NAME", "quiz_db")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8)

	viper.SetDefault("SEED_ADMIN_PASSWORD", "")
	viper.SetDefault("SEED_SAMPLE_DATA", false)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file, using environment and defaults")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.APIPrefix = "/" + strings.Trim(viper.GetString("API_PREFIX"), "/")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.AllowOrigins = splitList(viper.GetString("CORS_ALLOW_ORIGINS"))
	config.LogLevel = viper.GetString("LOG_LEVEL")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.MaxOpenConns = viper.GetInt("DATABASE_MAX_OPEN_CONNS")
	config.Database.MaxIdleConns = viper.GetInt("DATABASE_MAX_IDLE_CONNS")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.AccessTokenTTL = time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute

	config.Seed.AdminPassword = viper.GetString("SEED_ADMIN_PASSWORD")
	config.Seed.SampleData = viper.GetBool("SEED_SAMPLE_DATA")

	if config.Server.Port == "" {
		return nil, fmt.Errorf("SERVER_PORT must not be empty")
	}
	if config.Auth.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES"))
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("api_prefix", config.Server.APIPrefix).
		Str("db_host", config.Database.Host).
		Str("db_name", config.Database.Name).
		Bool("seed_sample_data", config.Seed.SampleData).
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
