package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Listen struct {
	BindIP string `yaml:"bind_ip" env:"GATEPASS_BIND_IP" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env:"GATEPASS_PORT" env-default:"8080"`
}

// Postgres configures the shared backing store. An empty URL selects the
// in-memory stores, which only make sense for a single-station deployment
// or local development.
type Postgres struct {
	URL          string        `yaml:"url" env:"GATEPASS_POSTGRES_URL" env-default:""`
	MaxOpenConns int           `yaml:"max_open_conns" env-default:"16"`
	MaxIdleConns int           `yaml:"max_idle_conns" env-default:"4"`
	ConnTimeout  time.Duration `yaml:"conn_timeout" env-default:"5s"`
}

type Redis struct {
	URL          string        `yaml:"url" env:"GATEPASS_REDIS_URL" env-default:""`
	PoolSize     int           `yaml:"pool_size" env-default:"8"`
	MinIdleConns int           `yaml:"min_idle_conns" env-default:"1"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"3s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"2s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"2s"`
}

type Auth struct {
	SigningKey string `yaml:"signing_key" env:"GATEPASS_SIGNING_KEY" env-default:"dev-secret-change-in-production"`
	Issuer     string `yaml:"issuer" env-default:"gatepass"`
}

// Checkin tunes the duplicate-suppression window. "memory" keeps the window
// process-local (the observed guarantee); "redis" shares it across stations.
type Checkin struct {
	SuppressionTTL   time.Duration `yaml:"suppression_ttl" env-default:"10s"`
	SuppressionStore string        `yaml:"suppression_store" env:"GATEPASS_SUPPRESSION_STORE" env-default:"memory"`
	SweepInterval    time.Duration `yaml:"sweep_interval" env-default:"30s"`
}

type Config struct {
	Env      string   `yaml:"env" env:"GATEPASS_ENV" env-default:"local"`
	Listen   Listen   `yaml:"listen"`
	Postgres Postgres `yaml:"postgres"`
	Redis    Redis    `yaml:"redis"`
	Auth     Auth     `yaml:"auth"`
	Checkin  Checkin  `yaml:"checkin"`
}

var instance *Config
var once sync.Once

// MustLoad reads configuration from the YAML file at path, overlaying
// environment variables. A missing file falls back to env-only config so
// containerized deployments need no file at all.
func MustLoad(path string) *Config {
	once.Do(func() {
		instance = &Config{}
		var err error
		if _, statErr := os.Stat(path); statErr == nil {
			err = cleanenv.ReadConfig(path, instance)
		} else {
			err = cleanenv.ReadEnv(instance)
		}
		if err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Fatal(fmt.Errorf("config: %w; %s", err, desc))
		}
	})
	return instance
}
