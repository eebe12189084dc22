// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, metrics and introspection layer for hioload-tcp processes.
//
// Provides:
//   - Config loading from YAML and HIOLOAD_* environment variables via viper
//   - Validation with go-playground/validator
//   - A reloadable ConfigStore with change listeners
//   - A Prometheus registry implementing api.ServerMetrics
//   - Debug probes exported as JSON
package control
