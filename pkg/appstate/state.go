package appstate

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Key is the storage key the application state lives under.
const Key = "app"

// State is the application state kept between runs.
type State struct {
	LastTemplate string `yaml:"lastTemplate"`
	Theme        string `yaml:"theme"`
	Variant      string `yaml:"variant"`
	Surface      string `yaml:"surface"`
	Frames       uint64 `yaml:"frames"`
}

// Default is the state of a first run.
func Default() State {
	return State{
		Theme:   "default",
		Surface: "term",
	}
}

// Storage is a key/value sink for serialised state.
type Storage interface {
	// Get returns the payload stored under key. ok is false when the key is
	// absent.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

// Load reads the state under Key. An absent or malformed payload yields
// Default; only storage failures are returned as errors.
func Load(ctx context.Context, storage Storage) (State, error) {
	data, ok, err := storage.Get(ctx, Key)
	if err != nil {
		return Default(), errors.Wrap(err, "could not read app state")
	}
	if !ok {
		return Default(), nil
	}

	state := Default()
	if err := yaml.Unmarshal(data, &state); err != nil {
		slog.WarnContext(ctx, "discarding malformed app state", slog.Any("error", err))
		return Default(), nil
	}
	return state, nil
}

// Save writes state under Key.
func Save(ctx context.Context, storage Storage, state State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := storage.Set(ctx, Key, data); err != nil {
		return errors.Wrap(err, "could not write app state")
	}
	return nil
}
