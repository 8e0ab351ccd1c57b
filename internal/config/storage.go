package config

type Storage struct {
	Kind     string   `env:"KIND" envDefault:"file"`
	File     File     `envPrefix:"FILE_"`
	Database Database `envPrefix:"DATABASE_"`
	Redis    Redis    `envPrefix:"REDIS_"`
}

type File struct {
	Path string `env:"PATH,expand" envDefault:".projector/state.yaml"`
}

type Database struct {
	DSN string `env:"DSN,expand" envDefault:".projector/state.sqlite"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}
