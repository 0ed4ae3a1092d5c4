package config

import (
	"net"
	"net/url"
	"strconv"
)

// DBConfig contains PostgreSQL connection settings (DB_ prefix).
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"agenda"`
	Password string `env:"PASSWORD" envDefault:"agenda"`
	Name     string `env:"NAME"     envDefault:"agenda"`
	// SSLMode is passed through as sslmode; use "require" outside local development.
	SSLMode string `env:"SSL_MODE" envDefault:"disable"`
	// RunMigrationsOnStart controls whether the admin CLI applies migrations before each command.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// DSN renders a postgres:// URL. Credentials are escaped so passwords may contain
// any character.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig selects the session store topology (REDIS_ prefix). UseCluster wins
// over UseSentinel; with neither set, URI names a single node.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"`
}
