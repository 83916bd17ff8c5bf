package storage

// Config holds configuration for the S3-compatible bucket that archives
// credential reports and audit logs.
type Config struct {
	// Enabled turns report archival on. Off by default: archival is optional.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint of the S3-compatible service (host:port, scheme optional).
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey for the service.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey for the service.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL enables TLS towards the service.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Bucket receiving the archived reports.
	Bucket string `mapstructure:"bucket" default:"nc-usersync-reports"`
	// Region of the bucket.
	Region string `mapstructure:"region" default:"us-east-1"`
	// TimeoutSeconds bounds every storage call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
