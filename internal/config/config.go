package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"STACKY_LOG_LEVEL" env-default:"info"`
	HTTPPort   string   `yaml:"http-port" env:"STACKY_HTTP_PORT" env-default:"8000"`
	SocketPort string   `yaml:"socket-port" env:"STACKY_SOCKET_PORT" env-default:"3000"`
	BaseURL    string   `yaml:"base-url" env:"STACKY_BASE_URL" env-default:"http://localhost:8000/"`
	Game       Game     `yaml:"game"`
	Redis      Redis    `yaml:"redis"`
	Postgres   Postgres `yaml:"postgres"`
}

type Game struct {
	BoardSize           int  `yaml:"board-size" env:"STACKY_GAME_BOARD_SIZE" env-default:"7"`
	WinLength           int  `yaml:"win-length" env:"STACKY_GAME_WIN_LENGTH" env-default:"4"`
	HorizontalIsolation bool `yaml:"horizontal-isolation" env:"STACKY_GAME_HORIZONTAL_ISOLATION" env-default:"true"`
}

type Redis struct {
	Host string `yaml:"host" env:"STACKY_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"STACKY_REDIS_PORT" env-default:"6379"`
}

// Postgres is optional; finished games are archived only when DSN is set.
type Postgres struct {
	DSN string `yaml:"dsn" env:"STACKY_POSTGRES_DSN" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
