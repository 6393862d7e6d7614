package database

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"postgres"`
	// SSLMode is the Postgres sslmode parameter (disable, require, verify-full).
	// Hosted Supabase projects require TLS; local stacks usually disable it.
	SSLMode string `mapstructure:"ssl_mode" default:"require"`
	// TimeoutSeconds is the connection setup timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
