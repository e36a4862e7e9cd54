// Package config handles configuration loading for the suiterun CLI.
//
// It provides functionality for:
//   - Loading configuration from .suiterun.yml files
//   - Default configuration values
//   - Merging file values under CLI flags
package config
