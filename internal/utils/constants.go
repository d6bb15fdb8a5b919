package utils

const (
	// ConfigFileName is the configuration file looked up locally and globally.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".blueprint"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal execution errors.
	ApplicationExecutionFailedMessage = "blueprint failed"
)
