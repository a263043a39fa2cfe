package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/log"
)

const (
	configDirPathEnv     = "GJCLI_CONFIG_DIR_PATH"
	defaultConfigDirPath = "."
	configFileName       = "gjcli.yaml"
)

// Config is everything gjcli reads from gjcli.yaml and the environment.
type Config struct {
	API gamejolt.Config `yaml:"api"`
	Log log.Config      `yaml:"log"`

	StoragePath string `yaml:"storage_path" env:"GJCLI_STORAGE_PATH" env-default:"gjcli.db"`
	MetricsAddr string `yaml:"metrics_addr" env:"GJCLI_METRICS_ADDR"` // empty disables the /metrics listener
}

// LoadConfig reads <config dir>/gjcli.yaml and <config dir>/.env, both
// optional, then the environment. The environment wins over .env, and both
// win over the YAML file.
func LoadConfig() (Config, bool, error) {
	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	dotEnvLoaded := godotenv.Load(filepath.Join(configDirPath, ".env")) == nil

	var conf Config
	if err := readConfigFile(filepath.Join(configDirPath, configFileName), &conf); err != nil {
		return Config{}, dotEnvLoaded, err
	}
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return Config{}, dotEnvLoaded, errors.Wrap(err, "failed to read environment")
	}
	if err := conf.Log.Validate(); err != nil {
		return Config{}, dotEnvLoaded, err
	}
	if err := conf.API.Validate(); err != nil {
		return Config{}, dotEnvLoaded, err
	}

	return conf, dotEnvLoaded, nil
}

// readConfigFile decodes path into conf. A missing or empty file is not an error.
func readConfigFile(path string, conf *Config) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}
