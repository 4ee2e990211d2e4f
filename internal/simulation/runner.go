package simulation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/shiftsync/shiftsync/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0600
)

// Run executes the complete marketplace simulation: seed a talent pool and a
// batch of shifts over HTTP, auto-fill every shift twice, and verify the
// invariants the matching routine promises.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting marketplace simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("talent", config.NumTalent),
		logger.Int("shifts", config.NumShifts),
		logger.Int("fillCount", config.FillCount),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Seed the talent pool.
	talent := generateTalent(config.NumTalent)
	talentIDs, talentFailed := seedConcurrently(ctx, client, config.BaseURL+"/talent", talent, config.Workers)
	stats.TalentSeeded = config.NumTalent - int(talentFailed)
	log.Info(ctx, "talent pool seeded",
		logger.Int("created", stats.TalentSeeded),
		logger.Int("failed", int(talentFailed)))
	if stats.TalentSeeded == 0 {
		return fmt.Errorf("no talent profiles could be created")
	}

	// Seed the shifts.
	shifts := generateShifts(config.NumShifts)
	shiftIDs, shiftsFailed := seedConcurrently(ctx, client, config.BaseURL+"/shifts", shifts, config.Workers)
	stats.ShiftsSeeded = config.NumShifts - int(shiftsFailed)
	log.Info(ctx, "shifts seeded",
		logger.Int("created", stats.ShiftsSeeded),
		logger.Int("failed", int(shiftsFailed)))
	if stats.ShiftsSeeded == 0 {
		return fmt.Errorf("no shifts could be created")
	}

	outcomes, err := fillShifts(ctx, client, config, shiftIDs, stats)
	if err != nil {
		return fmt.Errorf("auto-fill phase failed: %w", err)
	}

	if err := verifyOutcomes(ctx, client, config, outcomes); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if config.OutputFile != "" {
		if err := saveDataset(config, talent, talentIDs, shifts, shiftIDs); err != nil {
			log.Warn(ctx, "failed to save dataset", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// fillShifts runs the auto-fill routine twice per seeded shift. The second
// call checks that re-invoking with no intervening state change never
// re-invites anyone.
func fillShifts(ctx context.Context, client *HTTPClient, config *Config, shiftIDs []string, stats *Stats) ([]fillOutcome, error) {
	log := logger.Get()
	outcomes := make([]fillOutcome, 0, len(shiftIDs))

	for _, shiftID := range shiftIDs {
		if shiftID == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body := map[string]any{"shiftId": shiftID, "count": config.FillCount}

		var first autofillResponse
		if err := client.postJSON(ctx, config.BaseURL+"/shifts/autofill", body, &first, http.StatusOK); err != nil {
			stats.FillFailures++
			log.Warn(ctx, "auto-fill call failed", logger.String("shift_id", shiftID), logger.Error(err))
			continue
		}
		stats.FillCalls++
		stats.InvitesCreated += first.Invited
		if first.Invited < config.FillCount {
			stats.UnderfilledCalls++
		}

		var rerun autofillResponse
		if err := client.postJSON(ctx, config.BaseURL+"/shifts/autofill", body, &rerun, http.StatusOK); err != nil {
			stats.FillFailures++
			continue
		}
		stats.FillCalls++
		stats.InvitesCreated += rerun.Invited

		outcomes = append(outcomes, fillOutcome{
			ShiftID:      shiftID,
			Requested:    config.FillCount,
			FirstInvited: first.Invited,
			RerunInvited: rerun.Invited,
			Talent:       first.Talent,
		})

		if config.Verbose {
			log.Info(ctx, "shift filled",
				logger.String("shift_id", shiftID),
				logger.Int("invited", first.Invited),
				logger.Int("rerun_invited", rerun.Invited))
		}
	}
	return outcomes, nil
}

// saveDataset writes the seeded entities with their assigned ids to a JSON
// file for later replay or inspection.
func saveDataset(config *Config, talent []talentRequest, talentIDs []string, shifts []shiftRequest, shiftIDs []string) error {
	type seededTalent struct {
		ID string `json:"id"`
		talentRequest
	}
	type seededShift struct {
		ID string `json:"id"`
		shiftRequest
	}
	dataset := struct {
		Talent []seededTalent `json:"talent"`
		Shifts []seededShift  `json:"shifts"`
	}{}

	for i, p := range talent {
		dataset.Talent = append(dataset.Talent, seededTalent{ID: talentIDs[i], talentRequest: p})
	}
	for i, s := range shifts {
		dataset.Shifts = append(dataset.Shifts, seededShift{ID: shiftIDs[i], shiftRequest: s})
	}

	raw, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(config.OutputFile, raw, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var fillsPerSecond float64
	if stats.Duration > 0 {
		fillsPerSecond = float64(stats.FillCalls) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("talentSeeded", stats.TalentSeeded),
		logger.Int("shiftsSeeded", stats.ShiftsSeeded),
		logger.Int("fillCalls", stats.FillCalls),
		logger.Int("fillFailures", stats.FillFailures),
		logger.Int("invitesCreated", stats.InvitesCreated),
		logger.Int("underfilledCalls", stats.UnderfilledCalls),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("fillsPerSecond", fillsPerSecond))
}
