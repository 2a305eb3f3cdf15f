// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for ClubHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, skills_array_limit, etc.
//   - Environment variables: CLUBHUB_MONGO_URI, CLUBHUB_SKILLS_ARRAY_LIMIT, etc.
//   - Command-line flags: --mongo_uri, --skills_array_limit, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "clubhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Structural constants consumed by the validators.
	{Name: "higher_member_limit", Default: limits.DefaultHigherMemberLimit, Desc: "Max entries in each of a club's coordinator and assistant-coordinator lists"},
	{Name: "skills_array_limit", Default: limits.DefaultSkillsArrayLimit, Desc: "Max number of skills a user may declare"},
	{Name: "domain_list", Default: "", Desc: "Comma-separated list of allowed user domains (blank means built-in list)"},

	// Credential hashing.
	{Name: "user_hash_cost", Default: limits.DefaultUserHashCost, Desc: "bcrypt cost factor for user passwords"},
	{Name: "club_hash_cost", Default: limits.DefaultClubHashCost, Desc: "bcrypt cost factor for club service passwords"},
	{Name: "hash_budget", Default: "5s", Desc: "Wall-clock budget for a single password hash (e.g., 5s, 500ms)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built. The structural
// constants are pushed into the limits package here, before any store is
// constructed, so no write can be validated against unset limits.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLUBHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		HigherMemberLimit: appValues.Int("higher_member_limit"),
		SkillsArrayLimit:  appValues.Int("skills_array_limit"),
		DomainList:        splitList(appValues.String("domain_list")),

		UserHashCost: appValues.Int("user_hash_cost"),
		ClubHashCost: appValues.Int("club_hash_cost"),
		HashBudget:   appValues.String("hash_budget"),
	}

	budget, err := time.ParseDuration(appCfg.HashBudget)
	if err != nil {
		return nil, AppConfig{}, fmt.Errorf("invalid hash_budget %q: %w", appCfg.HashBudget, err)
	}

	limits.Configure(limits.Config{
		HigherMemberLimit: appCfg.HigherMemberLimit,
		SkillsArrayLimit:  appCfg.SkillsArrayLimit,
		UserHashCost:      appCfg.UserHashCost,
		ClubHashCost:      appCfg.ClubHashCost,
		HashBudget:        budget,
		DomainList:        appCfg.DomainList,
	})

	return coreCfg, appCfg, nil
}

// splitList parses a comma-separated config value, dropping empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// ClubHub validates the MongoDB URI format and the hashing parameters to
// catch configuration errors early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	for _, cost := range []int{appCfg.UserHashCost, appCfg.ClubHashCost} {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
	}
	if appCfg.HigherMemberLimit <= 0 {
		return fmt.Errorf("higher_member_limit must be positive, got %d", appCfg.HigherMemberLimit)
	}
	if appCfg.SkillsArrayLimit <= 0 {
		return fmt.Errorf("skills_array_limit must be positive, got %d", appCfg.SkillsArrayLimit)
	}

	return nil
}
