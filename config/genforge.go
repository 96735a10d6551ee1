package config

// Configuration keys understood by genforge.
const (
	// KeyEndpoint is the generation service base URL.
	KeyEndpoint = "endpoint"

	// KeyListen is the local address the web UI listens on.
	KeyListen = "listen"

	// KeyArtifactDir is where generated archives are written. Empty means
	// a private temporary directory.
	KeyArtifactDir = "artifact_dir"

	// KeyWebhookURL receives generation events as JSON POSTs. Empty
	// disables the webhook notifier.
	KeyWebhookURL = "webhook_url"

	// KeySlackWebhook is a Slack incoming-webhook URL for generation
	// events. Empty disables the Slack notifier.
	KeySlackWebhook = "slack_webhook"

	// KeySlackChannel overrides the channel of the Slack webhook.
	KeySlackChannel = "slack_channel"

	// KeyLogLevel is the minimum log level: debug, info, warn or error.
	KeyLogLevel = "log_level"
)

// EnvPrefix is the prefix for genforge environment variables, so
// "endpoint" is overridden by GENFORGE_ENDPOINT.
const EnvPrefix = "GENFORGE_"

// Default file locations.
const (
	GlobalConfigDir = "genforge"
	LocalConfigName = ".genforge.yaml"
)

// Defaults returns the built-in default values.
func Defaults() map[string]string {
	return map[string]string{
		KeyEndpoint:     "http://localhost:8000",
		KeyListen:       ":8080",
		KeyArtifactDir:  "",
		KeyWebhookURL:   "",
		KeySlackWebhook: "",
		KeySlackChannel: "",
		KeyLogLevel:     "info",
	}
}

// Default returns a resolver configured for genforge's standard
// locations: built-in defaults, ~/.config/genforge/config.yaml,
// .genforge.yaml in the working directory, and GENFORGE_* environment
// variables.
func Default() *Resolver {
	return NewResolver(ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults(),
		ValidKeys: []string{
			KeyEndpoint,
			KeyListen,
			KeyArtifactDir,
			KeyWebhookURL,
			KeySlackWebhook,
			KeySlackChannel,
			KeyLogLevel,
		},
	})
}
