// Package env provides the variable layer for suite files: .env file
// parsing and {{variable}} resolution inside shell commands.
//
// Two reference forms are supported: {{name}} looks up a suite-file
// variable, {{$NAME}} reads the OS environment. Unresolved references
// are left intact and reported through the optional warn callback.
package env
