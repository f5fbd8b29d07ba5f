package envvar

const (
	// ModelcapEnv is the environment variable used to determine the environment
	ModelcapEnv = "MODELCAP_ENV"

	// ModelcapConfig is the environment variable used to override the config file path
	ModelcapConfig = "MODELCAP_CONFIG"

	// ModelcapLogLevel is the environment variable used to override the log level
	ModelcapLogLevel = "MODELCAP_LOG_LEVEL"
)
