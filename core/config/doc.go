// Package config provides configuration management for the Document Browser.
//
// It utilizes Viper for loading configuration from environment variables
// and .env files, with struct-tag defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, schema profile)
//   - Database: Postgres (Supabase) connection details for the synced records
//   - Storage: S3/MinIO credentials and bucket settings for mirrored content
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
