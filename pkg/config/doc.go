// Package config defines the per-instance widget configuration, decoded from
// YAML, and the server configuration, decoded from the environment.
package config
