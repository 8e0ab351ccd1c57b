// Package app wires configuration, persisted state, templates and the
// chosen surface into the Projector application.
package app
