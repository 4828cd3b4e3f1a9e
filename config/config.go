package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	Port string `envconfig:"PORT" default:"3000"`

	DBHost        string `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string `envconfig:"DB_PORT" default:"5432"`
	DBUser        string `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string `envconfig:"DB_PASSWORD"`
	DBName        string `envconfig:"DB_NAME" default:"sbook"`
	DBSSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	DBAutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`

	// Root admin bootstrap credentials, applied once on an empty accounts
	// table.
	AdminUsername string `envconfig:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	// Parlay leg bounds enforced by the odds compositor.
	MinParlayLegs int `envconfig:"MIN_PARLAY_LEGS" default:"2"`
	MaxParlayLegs int `envconfig:"MAX_PARLAY_LEGS" default:"12"`

	// ResultsFeedURL is the external match-result source polled by the
	// settlement sweep. Empty disables the poller; manual settles still work.
	ResultsFeedURL  string `envconfig:"RESULTS_FEED_URL"`
	SettleCronSpec  string `envconfig:"SETTLE_CRON_SPEC" default:"@every 5m"`
	TxRetryAttempts int    `envconfig:"TX_RETRY_ATTEMPTS" default:"3"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
