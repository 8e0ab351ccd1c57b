package form

// Kind tags the active variant of a Value.
type Kind int

const (
	KindEmpty Kind = iota
	KindBoolean
	KindInteger
	KindUnsigned
	KindReal
	KindText
	KindFile
	KindChoice
	KindMultiOption
	KindStruct
	KindOptionalStruct
	KindOptional
)

var kindNames = [...]string{
	KindEmpty:          "empty",
	KindBoolean:        "boolean",
	KindInteger:        "integer",
	KindUnsigned:       "unsigned",
	KindReal:           "real",
	KindText:           "text",
	KindFile:           "file",
	KindChoice:         "choice",
	KindMultiOption:    "options",
	KindStruct:         "struct",
	KindOptionalStruct: "optional_struct",
	KindOptional:       "optional",
}

// String returns the lower-case variant name used by definitions.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind resolves a variant name produced by Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindEmpty, false
}

// Value is the closed set of field variants. The unexported snapshot method
// seals the interface: only this package can add variants, which keeps the
// type switches in this package exhaustive.
type Value interface {
	// Kind reports the variant tag.
	Kind() Kind
	// Render draws the control bound to the value and applies the surface's
	// interaction for this frame.
	Render(s Surface) Response
	// Reset reverts the value to its default.
	Reset()

	snapshot() any
}

// Empty is a placeholder value. It renders as a visible error so that a
// field left without a real value is noticed.
type Empty struct{}

// NewEmpty returns the placeholder value.
func NewEmpty() *Empty { return &Empty{} }

func (*Empty) Kind() Kind { return KindEmpty }

func (*Empty) Render(s Surface) Response {
	return s.Warning("Empty")
}

func (*Empty) Reset() {}

func (*Empty) snapshot() any { return nil }

// Boolean is an on/off value; the default is false.
type Boolean struct {
	Value bool
}

// NewBoolean returns a Boolean holding value.
func NewBoolean(value bool) *Boolean {
	return &Boolean{Value: value}
}

func (*Boolean) Kind() Kind { return KindBoolean }

func (b *Boolean) Render(s Surface) Response {
	text := "Turn On"
	if b.Value {
		text = "Turn Off"
	}
	return s.Toggle(&b.Value, text)
}

func (b *Boolean) Reset() {
	b.Value = false
}

func (b *Boolean) snapshot() any { return b.Value }

// File holds a filesystem path. It never touches the filesystem; the path is
// edited as text until a picker exists.
type File struct {
	Path string
}

// NewFile returns a File holding path.
func NewFile(path string) *File {
	return &File{Path: path}
}

func (*File) Kind() Kind { return KindFile }

func (f *File) Render(s Surface) Response {
	return s.TextEdit(&f.Path, false)
}

func (f *File) Reset() {
	f.Path = ""
}

func (f *File) snapshot() any { return f.Path }
