// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request limits. AppConfig is
// where everything specific to ClubHub lives: the MongoDB connection, and
// the structural constants the validators and credential path consume
// (higher-member limit, skills ceiling, domain list, hash costs).
type AppConfig struct {
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Structural constants; must be in place before the stores accept writes.
	HigherMemberLimit int
	SkillsArrayLimit  int
	DomainList        []string

	// Credential hashing.
	UserHashCost int
	ClubHashCost int
	HashBudget   string
}
