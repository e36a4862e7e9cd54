// Package cmd implements the suiterun CLI: running, validating, and
// listing YAML suite files.
package cmd
