package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/harukisb/raidloot/internal/config"
)

// CurrentWeek returns the 1-based raid week number for the configured tier:
// how many weekly resets (tier start included) have occurred up to now.
func CurrentWeek(cfg *config.Config) (int, error) {
	return weekAt(cfg, time.Now())
}

// weekAt computes the week number at an arbitrary instant.
func weekAt(cfg *config.Config, now time.Time) (int, error) {
	start, err := time.Parse("2006-01-02", cfg.TierStart)
	if err != nil {
		return 0, fmt.Errorf("invalid tier start date: %w", err)
	}

	if now.Before(start) {
		return 0, fmt.Errorf("tier start %s is in the future", cfg.TierStart)
	}

	rule, err := rrule.StrToRRule(cfg.ResetRuleOrDefault())
	if err != nil {
		return 0, fmt.Errorf("invalid reset rule: %w", err)
	}
	rule.DTStart(start)

	resets := rule.Between(start, now, true)
	if len(resets) == 0 {
		// Now falls between the tier start and the first recurrence.
		return 1, nil
	}

	return len(resets), nil
}
