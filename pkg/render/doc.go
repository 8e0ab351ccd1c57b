// Package render wraps a pongo2 template set. The HTML surface renders frame
// previews with it and Defined templates render the paths and bodies of the
// files they generate.
package render
