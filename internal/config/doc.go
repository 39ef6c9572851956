// Package config provides configuration loading, merging, and validation
// facilities for the lite wallet coordinator.
//
// Configuration is assembled from multiple sources; a field set by an
// earlier source is kept:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetStructuredConfig] for the raw merged view
// and [GetClientConfig] for the defaulted runtime configuration.
package config
