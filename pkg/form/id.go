package form

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

// ID identifies a field within its form and scopes widget identity on the
// surface.
type ID string

// idNamespace seeds identifiers derived from caller supplied sources.
var idNamespace = uuid.MustParse("6f1c2f0e-3c55-4f5e-9a59-4c1d2b8f7a10")

// NewID returns a time-ordered identifier. Consecutive calls never collide
// within a process: xid embeds a per-process counter next to the timestamp.
func NewID() ID {
	return ID(xid.New().String())
}

// IDFrom derives a stable identifier from source. Equal sources yield equal
// identifiers.
func IDFrom(source any) ID {
	return ID(uuid.NewSHA1(idNamespace, []byte(fmt.Sprint(source))).String())
}

// String implements fmt.Stringer.
func (id ID) String() string {
	return string(id)
}
