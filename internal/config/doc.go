// Package config loads server settings from config.yaml and RUSTILI_*
// environment variables and validates them before anything starts.
package config
