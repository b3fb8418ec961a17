// Package config handles configuration loading, parsing, and validation
// from defaults, an optional YAML file and SHOP_-prefixed environment
// variables. It provides type-safe access to the settings needed by the
// HTTP server and both store adapters.
package config
