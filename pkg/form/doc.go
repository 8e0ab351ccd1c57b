// Package form defines the typed dynamic form model: a closed set of field
// values (booleans, ranged scalars, text, file paths, choices, option sets,
// nested structs and optionals) composed into ordered forms. Every value knows
// how to draw itself onto a Surface, mutate itself from the surface's
// interaction, and reset itself to its default.
//
// The Surface is the only dependency on a host toolkit. Implementations live
// under pkg/surface: a recording surface for tests and snapshots, an
// interactive terminal host, a sequential prompt surface and a static HTML
// preview.
//
// Forms are owned trees. A Form owns its fields, a field owns its value, and
// struct values own their nested forms, so no value is ever shared between two
// parents and no locking is needed while a frame renders.
package form
