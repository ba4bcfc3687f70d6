// Package config loads guestpass configuration structs from environment
// variables, optionally seeded from a .env file in development.
//
// Fields are declared with caarlos0/env tags:
//
//	type appConfig struct {
//	    HTTPAddr string         `env:"HTTP_ADDR" envDefault:":8080"`
//	    Visitor  visitor.Config `envPrefix:""`
//	}
//
//	var cfg appConfig
//	config.MustLoad(&cfg)
//
// The .env file is loaded at most once per process and is allowed to be
// absent; real environment variables always win.
package config
