package nextcloud

// Config holds connection settings for the Nextcloud instance.
type Config struct {
	// URL is the base URL of the Nextcloud server. A missing scheme defaults to https.
	URL string `mapstructure:"url" default:""`
	// AdminUser is the account used for provisioning API calls.
	AdminUser string `mapstructure:"admin_user" default:""`
	// AdminPass is the password (or app password) of the admin account.
	AdminPass string `mapstructure:"admin_pass" default:""`
	// Language is the default UI language assigned to created users.
	Language string `mapstructure:"language" default:"en"`
	// TimeoutSeconds bounds every single API call. A call that exceeds it fails terminally.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify" default:"false"`
}
