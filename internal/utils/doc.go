// Package utils exposes reusable helpers consumed by the procsync commands.
//
// ConfigurationLoader merges the embedded defaults, an optional YAML file and
// PROCSYNC_* environment variables through Viper. LoggerFactory builds the zap
// loggers every command logs through.
package utils
