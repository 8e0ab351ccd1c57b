package render

import (
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"
)

// pongo2 filters are process wide.
func registerFilters() {
	if !pongo2.FilterExists("slug") {
		_ = pongo2.RegisterFilter("slug", filterSlug)
	}
}

// filterSlug lowercases and joins runs of letters and digits with dashes so
// labels can be used as file names.
func filterSlug(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(in.String()) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return pongo2.AsValue(b.String()), nil
}
