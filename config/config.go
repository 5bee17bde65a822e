package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"git.thinkinpower.net/bindb/data"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const envPrefix = "BINDB_"

type Config struct {
	Data   DataConfig   `yaml:"data"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type DataConfig struct {
	Path string `yaml:"path"`
	// URL is where the update command downloads the dataset from.
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	Mode         string        `yaml:"mode"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Config {
	return Config{
		Data: DataConfig{Path: data.DefaultBinDataFile, URL: data.DefaultBinDataURL},
		Server: ServerConfig{
			Port:         8080,
			Mode:         data.RunModeRelease,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then BINDB_* environment variables.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path != "" {
		var (
			content []byte
			err     error
		)
		if content, err = afero.ReadFile(fs, path); err != nil {
			return cfg, errors.Wrapf(err, "read config %s", path)
		}
		if err = yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "DATA_PATH"); ok {
		c.Data.Path = v
	}
	if v, ok := lookup(envPrefix + "DATA_URL"); ok {
		c.Data.URL = v
	}
	if v, ok := lookup(envPrefix + "PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("invalid %sPORT: %q", envPrefix, v)
		}
		c.Server.Port = port
	}
	if v, ok := lookup(envPrefix + "MODE"); ok {
		c.Server.Mode = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Data.Path == "" {
		return errors.New("data.path is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case data.RunModeDev, data.RunModeTest, data.RunModeRelease:
	default:
		return errors.Errorf("server.mode must be one of dev|test|release, got %q", c.Server.Mode)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return errors.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
