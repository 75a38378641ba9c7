package cache

// Config holds configuration for the Redis read mirror.
type Config struct {
	// Enabled turns the mirror on. When off, reads go straight to the database.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the Redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password authenticates the connection.
	Password string `mapstructure:"password" default:""`
	// DB selects the logical database.
	DB int `mapstructure:"db" default:"0"`
	// TTLSeconds is how long mirrored values live.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"3600"`
	// KeyPrefix namespaces every key written by this service.
	KeyPrefix string `mapstructure:"key_prefix" default:"listing-media:"`
}
