package config

import (
	"reflect"
	"strings"

	"listing-media/core/cache"
	"listing-media/core/database"
	"listing-media/core/logger"
	"listing-media/core/messaging"
	"listing-media/core/reconcile"
	"listing-media/core/server"
	"listing-media/core/storage"
	"listing-media/feature/listing"
	"listing-media/feature/media"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Allocator holds the listing identifier counter settings.
	Allocator listing.AllocatorConfig `mapstructure:"allocator"`
	// Media holds upload limits and image pipeline settings.
	Media media.Config `mapstructure:"media"`
	// Reconcile holds probe tuning and the maintenance schedule.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Cache holds the Redis summary mirror settings.
	Cache cache.Config `mapstructure:"cache"`
	// Messaging holds the NATS deletion-event subscriber settings.
	Messaging messaging.Config `mapstructure:"messaging"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Defaults come from struct tags so every key is registered for AutomaticEnv
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. MEDIA_MAX_UPLOAD_BYTES -> media.max_upload_bytes)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
