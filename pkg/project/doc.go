// Package project holds generation templates: a titled form plus the action
// that turns the filled form into output. Templates are collected in an
// ordered Registry; Load builds the startup set from the bundled example,
// declarative definition files and OpenAPI operations.
package project
