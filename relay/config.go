package relay

import "os"

// APIKeyVar names the environment variable holding the upstream bearer
// token. The relay refuses chat requests when it is unset.
const APIKeyVar = "POE_API_KEY"

// Config is the relay server configuration.
type Config struct {
	// Address to listen on (e.g., ":8080")
	ListenAddr string

	// UpstreamURL is the chat-completions endpoint of the upstream provider
	// (e.g., "https://api.poe.com/v1/chat/completions")
	UpstreamURL string

	// Model is the fixed model identifier sent with every upstream request.
	Model string

	// ProfilePath is the path to the profile TOML file. Empty uses the
	// built-in placeholder profile.
	ProfilePath string

	// DBPath is the path to the SQLite database for contact messages.
	// Empty uses an in-memory store.
	DBPath string

	// LookupEnv resolves process configuration (the upstream credential).
	// Nil defaults to os.LookupEnv; tests substitute their own.
	LookupEnv func(key string) (string, bool)
}

func (c Config) lookupEnv(key string) (string, bool) {
	if c.LookupEnv != nil {
		return c.LookupEnv(key)
	}
	return os.LookupEnv(key)
}
