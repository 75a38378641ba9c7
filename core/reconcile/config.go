package reconcile

import "time"

// Config holds reconcile tuning and scheduling settings.
type Config struct {
	// Concurrency bounds parallel existence probes.
	Concurrency int `mapstructure:"concurrency" default:"8"`
	// ProbeTimeoutMs bounds a single probe in milliseconds.
	ProbeTimeoutMs int `mapstructure:"probe_timeout_ms" default:"5000"`
	// Schedule is a cron spec for the full pass. Empty disables scheduling.
	Schedule string `mapstructure:"schedule" default:"@every 6h"`
	// ListenBucketEvents enables the storage notification listener.
	ListenBucketEvents bool `mapstructure:"listen_bucket_events" default:"false"`
}

// ProbeTimeout returns the probe timeout as a duration.
func (c Config) ProbeTimeout() time.Duration {
	if c.ProbeTimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ProbeTimeoutMs) * time.Millisecond
}
