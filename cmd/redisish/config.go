package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type config struct {
	Server struct {
		Addr          string        `envconfig:"LISTEN_ADDR" default:"127.0.0.1:7878"`
		MaxLineLength int           `envconfig:"MAX_LINE_LENGTH" default:"4096"`
		IdleTimeout   time.Duration `envconfig:"IDLE_TIMEOUT" default:"5m"`
	}
	// One of memory, redis, mongo or mysql
	Store string `envconfig:"STORE" default:"memory"`
	Log   struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
		File  string `envconfig:"LOG_FILE"`
	}
	Redis struct {
		Host string `envconfig:"REDIS_HOST" default:"localhost:6379"`
		Pass string `envconfig:"REDIS_PASS"`
		DB   int    `envconfig:"REDIS_DB" default:"0"`
		Key  string `envconfig:"REDIS_KEY" default:"redisish:last"`
	}
	Mongo struct {
		Host string `envconfig:"MONGO_HOST" default:"localhost:27017"`
		User string `envconfig:"MONGO_USER"`
		Pass string `envconfig:"MONGO_PASS"`
		DB   string `envconfig:"MONGO_DB" default:"redisish"`
	}
	MySQL struct {
		Host string `envconfig:"MYSQL_HOST" default:"localhost:3306"`
		User string `envconfig:"MYSQL_USER"`
		Pass string `envconfig:"MYSQL_PASS"`
		DB   string `envconfig:"MYSQL_DB" default:"redisish"`
	}
	History struct {
		// Zero disables pruning
		Retention time.Duration `envconfig:"HISTORY_RETENTION" default:"0"`
		Schedule  string        `envconfig:"HISTORY_SCHEDULE" default:"@hourly"`
	}
}

func buildConfig() error {
	_ = godotenv.Load(".config/.env")

	cfg = new(config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return errors.Wrap(err, "failed to config env")
	}

	return nil
}
