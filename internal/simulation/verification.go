package simulation

import (
	"context"
	"fmt"

	"github.com/shiftsync/shiftsync/pkg/logger"
)

// verifyOutcomes checks the matching invariants across every filled shift:
// scores ordered descending, never more invites than requested, the rerun
// inviting only talent the first call did not, and the assignment listing
// agreeing with what auto-fill reported.
func verifyOutcomes(ctx context.Context, client *HTTPClient, config *Config, outcomes []fillOutcome) error {
	log := logger.Get()
	if len(outcomes) == 0 {
		return fmt.Errorf("no outcomes to verify")
	}

	var violations int
	for _, o := range outcomes {
		if err := verifyOutcome(ctx, client, config, o); err != nil {
			violations++
			log.Warn(ctx, "invariant violation",
				logger.String("shift_id", o.ShiftID),
				logger.Error(err))
		}
	}

	if violations > 0 {
		return fmt.Errorf("%d of %d shifts violated matching invariants", violations, len(outcomes))
	}
	log.Info(ctx, "all matching invariants verified", logger.Int("shifts", len(outcomes)))
	return nil
}

func verifyOutcome(ctx context.Context, client *HTTPClient, config *Config, o fillOutcome) error {
	if o.FirstInvited > o.Requested {
		return fmt.Errorf("invited %d exceeds requested %d", o.FirstInvited, o.Requested)
	}
	if o.FirstInvited != len(o.Talent) {
		return fmt.Errorf("invited count %d does not match talent list length %d", o.FirstInvited, len(o.Talent))
	}

	// Scores must come back best-first.
	for i := 1; i < len(o.Talent); i++ {
		if o.Talent[i].Score > o.Talent[i-1].Score {
			return fmt.Errorf("talent list not sorted by score at position %d", i)
		}
	}

	// The immediate rerun saw every first-round invite in the exclusion
	// set, so the two rounds can never overlap. With a big enough pool the
	// rerun may still legitimately invite fresh talent.
	var assignments []assignmentRow
	url := fmt.Sprintf("%s/shifts/%s/assignments", config.BaseURL, o.ShiftID)
	if err := client.getJSON(ctx, url, &assignments); err != nil {
		return fmt.Errorf("failed to list assignments: %w", err)
	}

	seen := make(map[string]int, len(assignments))
	for _, a := range assignments {
		seen[a.TalentID]++
		if seen[a.TalentID] > 1 {
			return fmt.Errorf("talent %s assigned twice to shift %s", a.TalentID, a.ShiftID)
		}
		if a.Status != "invited" {
			return fmt.Errorf("unexpected assignment status %q", a.Status)
		}
	}

	if len(assignments) != o.FirstInvited+o.RerunInvited {
		return fmt.Errorf("assignment count %d does not match %d+%d invites",
			len(assignments), o.FirstInvited, o.RerunInvited)
	}

	for _, t := range o.Talent {
		if seen[t.ID] == 0 {
			return fmt.Errorf("invited talent %s missing from assignment listing", t.ID)
		}
	}
	return nil
}
