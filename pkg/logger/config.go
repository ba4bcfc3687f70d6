package logger

// Config holds environment-driven logger settings.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug, info, warn or error
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json or text
}
