package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ZJUSCT/resolver/internal/resolver"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Listen  string  `yaml:"listen"`
	Admin   Admin   `yaml:"admin"`
	Logger  Logger  `yaml:"logger"`
	Storage Storage `yaml:"storage"`
	Minio   Minio   `yaml:"minio"`
	DMOJ    DMOJ    `yaml:"dmoj"`
	Auth    Auth    `yaml:"auth"`
	CORS    CORS    `yaml:"cors"`
	Contest Contest `yaml:"contest"`
	Scoring Scoring `yaml:"scoring"`
}

type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Storage struct {
	Database string `yaml:"database"`
}

// Minio configures the object store used for s3:// dataset and image sources.
type Minio struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// DMOJ points at the MySQL database of a DMOJ installation.
type DMOJ struct {
	DSN string `yaml:"dsn"`
}

type Auth struct {
	JWT       JWT       `yaml:"jwt"`
	Presenter Presenter `yaml:"presenter"`
}

type JWT struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

// Presenter is the single account allowed to drive the ceremony.
type Presenter struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

type Admin struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

const (
	SourceFile     = "file"
	SourceDatabase = "database"
)

type Contest struct {
	// Source is "file" (Data is a path or URL) or "database".
	Source string `yaml:"source"`
	Data   string `yaml:"data"`
	// Images is a JSON rank->image map or a directory of <rank>.png files.
	Images string `yaml:"images"`
	// FreezeTime is the offset from the contest start after which
	// submissions are hidden. An explicit 0s hides every submission.
	FreezeTime     *time.Duration `yaml:"freeze_time"`
	Unofficial     []string       `yaml:"unofficial"`
	HideUnofficial *bool          `yaml:"hide_unofficial"`
}

// DefaultFreezeTime applies when freeze_time is not set.
const DefaultFreezeTime = 240 * time.Minute

// Freeze returns the configured freeze offset.
func (c Contest) Freeze() time.Duration {
	if c.FreezeTime == nil {
		return DefaultFreezeTime
	}
	return *c.FreezeTime
}

// HidesUnofficial defaults to true when the option is not set.
func (c Contest) HidesUnofficial() bool {
	return c.HideUnofficial == nil || *c.HideUnofficial
}

type Scoring struct {
	PenaltyUnit         *float64 `yaml:"penalty_unit"`
	PenaltyTime         string   `yaml:"penalty_time"`
	PenaltyAccumulation string   `yaml:"penalty_accumulation"`
	ScoreClasses        string   `yaml:"score_classes"`
}

// Policy converts the scoring section into a resolver policy.
func (s Scoring) Policy() (resolver.Policy, error) {
	policy := resolver.DefaultPolicy()
	if s.PenaltyUnit != nil {
		policy.Penalty.Unit = *s.PenaltyUnit
	}
	if s.PenaltyTime != "" {
		policy.Penalty.Time = resolver.PenaltyTime(s.PenaltyTime)
	}
	if s.PenaltyAccumulation != "" {
		policy.Penalty.Accumulation = resolver.Accumulation(s.PenaltyAccumulation)
	}
	if err := policy.Penalty.Validate(); err != nil {
		return resolver.Policy{}, err
	}

	classifier, err := resolver.ClassifierByName(s.ScoreClasses)
	if err != nil {
		return resolver.Policy{}, err
	}
	policy.Classifier = classifier
	return policy, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Admin.Listen == "" {
		c.Admin.Listen = "127.0.0.1:8081"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Storage.Database == "" {
		c.Storage.Database = "data/resolver.db"
	}
	if c.Auth.JWT.ExpireHours == 0 {
		c.Auth.JWT.ExpireHours = 24
	}
	if c.Contest.Source == "" {
		c.Contest.Source = SourceFile
	}
}

// applyEnv lets secrets and addresses be overridden from the environment.
// With RESOLVER_ENV=dev a .env file in the working directory is read first.
func (c *Config) applyEnv() {
	if os.Getenv("RESOLVER_ENV") == "dev" {
		godotenv.Load()
	}

	overrides := map[string]*string{
		"RESOLVER_LISTEN":           &c.Listen,
		"RESOLVER_ADMIN_LISTEN":     &c.Admin.Listen,
		"RESOLVER_JWT_SECRET":       &c.Auth.JWT.Secret,
		"RESOLVER_DATABASE":         &c.Storage.Database,
		"RESOLVER_DMOJ_DSN":         &c.DMOJ.DSN,
		"RESOLVER_MINIO_ACCESS_KEY": &c.Minio.AccessKey,
		"RESOLVER_MINIO_SECRET_KEY": &c.Minio.SecretKey,
	}
	for key, field := range overrides {
		if value, ok := os.LookupEnv(key); ok {
			*field = value
		}
	}
}
