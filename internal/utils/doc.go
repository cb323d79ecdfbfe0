// Package utils provides shared infrastructure for the CLI: configuration
// loading backed by Viper, zap logger construction, and writer helpers.
package utils
