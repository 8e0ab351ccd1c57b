package config

import "log/slog"

type Logger struct {
	Level slog.Level `env:"LEVEL,expand" envDefault:"info"`
	File  string     `env:"FILE,expand" envDefault:"projector.log"`
}
