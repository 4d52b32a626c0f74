package internal

// Option configures Run before the application starts.
type Option func(*application)

// application collects everything the options set; Run reads it once and
// never mutates it afterwards.
type application struct {
	config *Config
}

// WithConfig supplies the application configuration. Run fails without it.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}
