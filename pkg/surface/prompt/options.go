package prompt

// Theme carries the prefixes printed before informational lines.
type Theme struct {
	HeadingPrefix string
	WarningPrefix string
}

// DefaultTheme is used unless WithTheme overrides it.
var DefaultTheme = Theme{
	HeadingPrefix: "==",
	WarningPrefix: "!!",
}

// Option configures the surface.
type Option func(*Surface)

// WithDriver overrides the survey driver.
func WithDriver(driver Driver) Option {
	return func(s *Surface) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Surface) {
		s.theme = theme
	}
}

// WithPageSize limits how many combo options are listed at once.
func WithPageSize(n int) Option {
	return func(s *Surface) {
		if n > 0 {
			s.pageSize = n
		}
	}
}
