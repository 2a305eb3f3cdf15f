// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/clubhub/internal/app/system/limits"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. The
// structural limits were configured in LoadConfig; this logs the effective
// values so a misconfigured deployment is visible in the startup output.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	cur := limits.Current()
	logger.Info("clubhub ready",
		zap.Int("higher_member_limit", cur.HigherMemberLimit),
		zap.Int("skills_array_limit", cur.SkillsArrayLimit),
		zap.Int("user_hash_cost", cur.UserHashCost),
		zap.Int("club_hash_cost", cur.ClubHashCost),
		zap.Duration("hash_budget", cur.HashBudget),
		zap.Int("domains", len(cur.DomainList)))
	return nil
}
