package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Console  Console  `yaml:"console"`
	Snapshot Snapshot `yaml:"snapshot"`
}

type Console struct {
	Locale      string `yaml:"locale" env:"LOCALE" env-default:"en"`
	MessagesDir string `yaml:"messages-dir" env:"MESSAGES_DIR" env-default:""`
	NoColor     bool   `yaml:"no-color" env:"NO_COLOR"`
}

type Snapshot struct {
	Path     string `yaml:"path" env:"SNAPSHOT_PATH" env-default:""`
	CellSize int    `yaml:"cell-size" env:"SNAPSHOT_CELL_SIZE" env-default:"120"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when there is no file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("read config from env: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	return config, nil
}

func (that *Snapshot) Enabled() bool {
	return that.Path != ""
}
