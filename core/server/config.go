package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitBytes caps request bodies; batch uploads must fit inside it.
	BodyLimitBytes int `mapstructure:"body_limit_bytes" default:"104857600"`
	// ShutdownSeconds bounds graceful shutdown.
	ShutdownSeconds int `mapstructure:"shutdown_seconds" default:"15"`
}

// BodyLimit returns the configured body limit, falling back to fiber's default.
func (c Config) BodyLimit() int {
	if c.BodyLimitBytes <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitBytes
}
