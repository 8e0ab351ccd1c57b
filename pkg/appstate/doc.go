// Package appstate persists the host application's own state between runs:
// the last selected template, the palette and the surface in use. Form data
// is never stored here.
package appstate
