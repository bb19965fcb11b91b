// Package config loads typed configuration from the environment.
//
// Load reads optional dotenv files with github.com/joho/godotenv and then
// parses the target struct with github.com/caarlos0/env/v11, so every
// package can declare its own Config struct with `env` tags and the binary
// composes them:
//
//	type App struct {
//		HTTP  httpserver.Config
//		Email email.Config
//	}
//
// Errors wrap ErrParsingConfig.
package config
