// Package limits provides centralized structural constants for the club and
// user collections.
//
// These values mirror the configuration the app loads at startup
// (higher_member_limit, skills_array_limit, hash costs, domain_list) and are
// consulted by the input validators and the credential path. They start with
// sensible defaults and can be overridden once via Configure() during
// bootstrap, before the stores accept writes.
package limits

import (
	"sync"
	"time"
)

// Default values (used if Configure is not called).
const (
	// DefaultHigherMemberLimit caps each of a club's coordinator and
	// assistant-coordinator lists.
	DefaultHigherMemberLimit = 2

	// DefaultSkillsArrayLimit caps the number of skills a user may declare.
	DefaultSkillsArrayLimit = 10

	// DefaultUserHashCost and DefaultClubHashCost are bcrypt cost factors.
	// The two record kinds are allowed distinct costs.
	DefaultUserHashCost = 10
	DefaultClubHashCost = 10

	// DefaultHashBudget bounds the wall-clock time a single hash may take.
	DefaultHashBudget = 5 * time.Second
)

// DefaultDomainList enumerates the domains a user may declare.
var DefaultDomainList = []string{
	"Web Development",
	"App Development",
	"Machine Learning",
	"Cloud Computing",
	"Cybersecurity",
	"Blockchain",
	"UI/UX",
	"Competitive Programming",
	"Robotics",
	"Content & Design",
}

// mu protects all configurable values from concurrent access.
var mu sync.RWMutex

var (
	higherMemberLimit = DefaultHigherMemberLimit
	skillsArrayLimit  = DefaultSkillsArrayLimit
	userHashCost      = DefaultUserHashCost
	clubHashCost      = DefaultClubHashCost
	hashBudget        = DefaultHashBudget
	domainList        = DefaultDomainList
	domainSet         = toSet(DefaultDomainList)
)

func toSet(list []string) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, d := range list {
		set[d] = struct{}{}
	}
	return set
}

// HigherMemberLimit returns the maximum entries allowed in each of a club's
// coordinator and assistant-coordinator lists.
func HigherMemberLimit() int {
	mu.RLock()
	defer mu.RUnlock()
	return higherMemberLimit
}

// SkillsArrayLimit returns the maximum number of skills a user may declare.
func SkillsArrayLimit() int {
	mu.RLock()
	defer mu.RUnlock()
	return skillsArrayLimit
}

// UserHashCost returns the bcrypt cost factor for user passwords.
func UserHashCost() int {
	mu.RLock()
	defer mu.RUnlock()
	return userHashCost
}

// ClubHashCost returns the bcrypt cost factor for club service passwords.
func ClubHashCost() int {
	mu.RLock()
	defer mu.RUnlock()
	return clubHashCost
}

// HashBudget returns the wall-clock budget for a single hash operation.
func HashBudget() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return hashBudget
}

// DomainList returns the configured domain enumeration.
func DomainList() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(domainList))
	copy(out, domainList)
	return out
}

// IsAllowedDomain reports whether value is in the configured domain list.
func IsAllowedDomain(value string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := domainSet[value]
	return ok
}

// Config holds limit configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	HigherMemberLimit int
	SkillsArrayLimit  int
	UserHashCost      int
	ClubHashCost      int
	HashBudget        time.Duration
	DomainList        []string
}

// Configure sets custom limit values. Zero values in the config are ignored,
// keeping the current (or default) values. This should be called during
// application startup before the stores accept writes.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.HigherMemberLimit > 0 {
		higherMemberLimit = cfg.HigherMemberLimit
	}
	if cfg.SkillsArrayLimit > 0 {
		skillsArrayLimit = cfg.SkillsArrayLimit
	}
	if cfg.UserHashCost > 0 {
		userHashCost = cfg.UserHashCost
	}
	if cfg.ClubHashCost > 0 {
		clubHashCost = cfg.ClubHashCost
	}
	if cfg.HashBudget > 0 {
		hashBudget = cfg.HashBudget
	}
	if len(cfg.DomainList) > 0 {
		domainList = cfg.DomainList
		domainSet = toSet(cfg.DomainList)
	}
}

// Reset restores all limits to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	higherMemberLimit = DefaultHigherMemberLimit
	skillsArrayLimit = DefaultSkillsArrayLimit
	userHashCost = DefaultUserHashCost
	clubHashCost = DefaultClubHashCost
	hashBudget = DefaultHashBudget
	domainList = DefaultDomainList
	domainSet = toSet(DefaultDomainList)
}

// Current returns the current limit configuration as a Config struct.
// Useful for logging or debugging.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		HigherMemberLimit: higherMemberLimit,
		SkillsArrayLimit:  skillsArrayLimit,
		UserHashCost:      userHashCost,
		ClubHashCost:      clubHashCost,
		HashBudget:        hashBudget,
		DomainList:        domainList,
	}
}
