package config

type Surface struct {
	Kind  string `env:"KIND" envDefault:""`
	Out   string `env:"OUT,expand" envDefault:"projector.html"`
	Title string `env:"TITLE" envDefault:"Projector"`
}

type Theme struct {
	Dir     string `env:"DIR,expand"`
	Name    string `env:"NAME"`
	Variant string `env:"VARIANT"`
}

type Prompt struct {
	PageSize      int    `env:"PAGE_SIZE" envDefault:"7"`
	HeadingPrefix string `env:"HEADING_PREFIX" envDefault:"=="`
	WarningPrefix string `env:"WARNING_PREFIX" envDefault:"!!"`
}

type Templates struct {
	Definitions  string `env:"DEFINITIONS,expand"`
	OpenAPI      string `env:"OPENAPI,expand"`
	Operation    string `env:"OPERATION"`
	ExternalRefs bool   `env:"EXTERNAL_REFS" envDefault:"false"`
	Validate     bool   `env:"VALIDATE" envDefault:"true"`
	OutputDir    string `env:"OUTPUT_DIR,expand" envDefault:"."`
}
