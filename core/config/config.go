package config

import (
	"reflect"
	"strings"

	"nc-usersync/core/history"
	"nc-usersync/core/logger"
	"nc-usersync/core/nextcloud"
	"nc-usersync/core/report"
	"nc-usersync/core/roster"
	"nc-usersync/core/server"
	"nc-usersync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Nextcloud holds the connection details of the target instance.
	Nextcloud nextcloud.Config `mapstructure:"nextcloud"`
	// Roster holds configuration for the CSV input file.
	Roster roster.Config `mapstructure:"roster"`
	// Report holds configuration for credential sheets and the audit log.
	Report report.Config `mapstructure:"report"`
	// Storage holds configuration for the report archive bucket.
	Storage storage.Config `mapstructure:"storage"`
	// History holds configuration for the run history database.
	History history.Config `mapstructure:"history"`
	// Server holds configuration for the run history HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Sync holds run behavior settings.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig holds the run behavior settings shared by the import and sync
// commands.
type SyncConfig struct {
	// Protected lists usernames that are never deleted. The admin account is
	// always protected regardless of this list.
	Protected []string `mapstructure:"protected" default:""`
	// ProtectedGroups lists groups whose members are never deleted.
	ProtectedGroups []string `mapstructure:"protected_groups" default:""`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. NEXTCLOUD_URL -> nextcloud.url)
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
