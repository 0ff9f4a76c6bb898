package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Metrics exposes /metrics when true.
	Metrics bool `mapstructure:"metrics" default:"true"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
