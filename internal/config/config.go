package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable.
const Prefix = "PROJECTOR_"

type Config struct {
	Logger    Logger    `envPrefix:"LOGGER_"`
	Surface   Surface   `envPrefix:"SURFACE_"`
	Theme     Theme     `envPrefix:"THEME_"`
	Prompt    Prompt    `envPrefix:"PROMPT_"`
	Templates Templates `envPrefix:"TEMPLATES_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
}

// Parse loads the optional dotenv files, then reads the environment. Values
// already set in the environment win over dotenv entries.
func Parse(dotenv ...string) (*Config, error) {
	if err := loadDotEnv(dotenv...); err != nil {
		return nil, errors.WithStack(err)
	}

	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: Prefix,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

func loadDotEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return errors.Wrapf(err, "could not load %s", file)
		}
	}
	return nil
}
