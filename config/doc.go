// Package config provides layered configuration resolution for genforge.
//
// This package supports layered configuration with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables
//  3. Local config (.genforge.yaml in the working directory)
//  4. Global config (~/.config/genforge/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// # Basic Usage
//
// Use the genforge resolver and read the resolved values:
//
//	cfg := config.Default().Resolve()
//	fmt.Println(cfg.Get(config.KeyEndpoint))    // "http://localhost:8000"
//	fmt.Println(cfg.Source(config.KeyEndpoint)) // "default"
//
// # Environment Variables
//
// Environment variables are detected using the GENFORGE_ prefix:
//
//	GENFORGE_ENDPOINT=https://gen.example.com  # sets "endpoint"
//	GENFORGE_LISTEN=:9090                      # sets "listen"
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "global": ~/.config/genforge/config.yaml
//   - "local": .genforge.yaml in the working directory
//   - "env": Environment variable
//   - "flag": Command-line flag (set via ResolveWithFlags)
package config
