package messaging

// Config holds configuration for the NATS connection.
type Config struct {
	// Enabled turns the subscriber on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// URL is the NATS server URL.
	URL string `mapstructure:"url" default:"nats://localhost:4222"`
	// DeletionSubject carries out-of-band blob deletion events.
	DeletionSubject string `mapstructure:"deletion_subject" default:"media.blob.deleted"`
	// QueueGroup load-balances events across service replicas.
	QueueGroup string `mapstructure:"queue_group" default:"listing-media"`
	// HandlerTimeoutSeconds bounds the handling of a single message.
	HandlerTimeoutSeconds int `mapstructure:"handler_timeout_seconds" default:"30"`
}
