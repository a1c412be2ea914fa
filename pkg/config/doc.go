// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Every configurable component in the module describes its settings as a
// struct with `env` tags (see github.com/caarlos0/env) and is populated via
// Load or MustLoad at construction time. There is no global configuration
// object; each package owns its own Config type.
//
//	var cfg email.Config
//	config.MustLoad(&cfg)
//	sender, err := email.New(cfg, environment.Production)
package config
