// Package logger builds the process-wide slog logger for guestpass binaries.
//
// Output format and level are environment-driven so the same binary logs
// human-readable text in development and JSON in production:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log := logger.New(cfg, os.Stdout)
//	logger.SetAsDefault(log)
package logger
