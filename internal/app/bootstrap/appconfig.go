// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS). AppConfig is everything specific to EduNaija.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: edunaija-session)
	SessionDomain string // Cookie domain (blank means current host)
	SessionTTL    string // Session lifetime (e.g., "720h")

	// File storage configuration
	StorageLocalPath string // Local storage path (e.g., "./uploads/resources")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/resources")

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks (e.g., "https://edunaija.ng")
	BaseURL string

	// Categories is the comma-separated list of accepted resource
	// categories for this deployment.
	Categories []string
}
