// Package config provides configuration management for the SAP report
// ingestion tools.
//
// Configuration is resolved in three layers: built-in defaults, an optional
// config.yaml file, and SAP_* environment variables, with later layers
// winning. The report list (logical name to file mapping) comes from the
// YAML file; scalar settings such as the detection window or log level can
// also be overridden through the environment.
package config
