// Package config provides configuration management for the user sync tool.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Nextcloud: target instance URL and admin credentials
//   - Roster: CSV input file location and parsing options
//   - Report: credential sheet and audit log output
//   - Storage: S3/MinIO credentials and bucket settings for report archival
//   - History: run history database connection
//   - Server: HTTP server settings for the history API
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Nextcloud.URL)
package config
