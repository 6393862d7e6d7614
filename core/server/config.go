package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Profile selects the sync schema generation (modern, legacy) the
	// records table follows.
	Profile string `mapstructure:"profile" default:"modern"`
}

const (
	// ProfileModern is the current sync schema (google_sources table).
	ProfileModern = "modern"
	// ProfileLegacy is the pre-migration schema (sources_google table).
	ProfileLegacy = "legacy"
)

// IsValidProfile checks if the configured schema profile is valid.
func (c Config) IsValidProfile() bool {
	switch c.Profile {
	case ProfileModern, ProfileLegacy:
		return true
	default:
		return false
	}
}
