package engine

// Config holds configuration for opening libduckdb
type Config struct {
	// Path is the shared library to load. Empty means DefaultLibrary,
	// resolved through the platform's library search path.
	Path string
}

func (c Config) path() string {
	if c.Path != "" {
		return c.Path
	}
	return DefaultLibrary
}
