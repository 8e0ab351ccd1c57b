// Package config reads the application settings from PROJECTOR_ prefixed
// environment variables and optional dotenv files.
package config
