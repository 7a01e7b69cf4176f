package http

type Config struct {
	Port uint `mapstructure:"port"`
	// APIKeyHash is the bcrypt hash of the operator API key. Requests
	// without the matching X-API-Key are rejected.
	APIKeyHash string `mapstructure:"api_key_hash"`
}
