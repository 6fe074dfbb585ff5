// FILE: internal/server/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	API     API     `yaml:"api"`
	Storage Storage `yaml:"storage"`
	PIDFile string  `yaml:"pid-file" env:"CHESS_PID_FILE" env-default:"/tmp/chess-server.pid"`
	Dev     bool    `yaml:"dev" env:"CHESS_DEV" env-default:"false"`
}

type API struct {
	Host string `yaml:"host" env:"CHESS_API_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"CHESS_API_PORT" env-default:"8080"`
}

type Storage struct {
	Enabled bool   `yaml:"enabled" env:"CHESS_STORAGE_ENABLED" env-default:"true"`
	Path    string `yaml:"path" env:"CHESS_STORAGE_PATH" env-default:"chess.db"`
}

// Load reads configuration from the given YAML file, falling back to
// environment variables and defaults when the file is absent.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return config, nil
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	return config, nil
}

func (a *API) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}
