package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

// Config types implementing validator are checked right after loading.
type validator interface {
	Validate() error
}

var (
	envFlag     string
	envFlagOnce sync.Once
)

func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New exports the env file named by -env (or ./.env when present) into the
// process environment, then fills T from variables under prefix.
func New[T any](prefix string) (*T, error) {
	if err := loadEnvFile(envFilePath()); err != nil {
		return nil, err
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, fmt.Errorf("config %s: %w", label(prefix), err)
	}
	if v, ok := any(conf).(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("config %s: %w", label(prefix), err)
		}
	}
	return &conf, nil
}

func label(prefix string) string {
	if prefix == "" {
		return "(no prefix)"
	}
	return prefix
}

func envFilePath() string {
	envFlagOnce.Do(func() {
		if flag.Lookup("env") == nil {
			flag.StringVar(&envFlag, "env", "", "path to .env file")
		}
		if !flag.Parsed() {
			flag.Parse()
		}
	})
	return strings.TrimSpace(envFlag)
}

// loadEnvFile requires an explicit path to exist; the default .env is optional.
func loadEnvFile(path string) error {
	if path != "" {
		if err := exportEnvironment(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}

	info, err := os.Stat(defaultEnvFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", defaultEnvFile, err)
	case info.IsDir():
		return nil
	}
	if err := exportEnvironment(defaultEnvFile); err != nil {
		return fmt.Errorf("load default env file: %w", err)
	}
	return nil
}

func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("env")
	}
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for key, value := range v.AllSettings() {
		if err := os.Setenv(strings.ToUpper(key), fmt.Sprint(value)); err != nil {
			return err
		}
	}
	return nil
}
