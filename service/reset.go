package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/logging"
	"github.com/kaiyue77/arkledger/policy"
)

// WeeklyReset archives all of a user's active run records into history.
// It either archives the full set or leaves storage exactly as it found
// it: history is bulk-inserted first, the insert count is verified against
// the submitted count, and only then is the active set deleted. A partial
// insert is compensated by deleting the partially written history rows.
//
// Returns the number of records archived; 0 means the active set was
// empty and nothing was written.
func (s *Service) WeeklyReset(ctx context.Context, user domain.Principal) (int, error) {
	// Two racing resets would read the same active set and archive it
	// twice. Serialize per user within this process.
	if !s.resets.tryLock(user.UserID) {
		return 0, domain.ErrResetInProgress
	}
	defer s.resets.unlock(user.UserID)

	log := logging.FromContext(ctx).With("user_id", user.UserID)
	log.Info("weekly reset started")

	records, err := s.store.ListRecordsByUser(ctx, user.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to collect active records: %w", err)
	}

	if s.policy != nil {
		decision, reason, err := s.policy.Evaluate(ctx, policy.Input{
			Operation:   "weekly_reset",
			UserID:      user.UserID,
			Role:        user.Role,
			RecordCount: len(records),
			MaxBatch:    s.config.ResetMaxBatch,
		})
		if err != nil {
			return 0, fmt.Errorf("policy evaluation failed: %w", err)
		}
		if decision != policy.DecisionAllow {
			log.Warn("weekly reset blocked by policy", "decision", decision, "reason", reason, "record_count", len(records))
			return 0, fmt.Errorf("weekly reset of %d records: %w", len(records), domain.ErrForbidden)
		}
	}

	if len(records) == 0 {
		log.Info("weekly reset: no records to archive")
		return 0, nil
	}

	history, err := s.buildHistory(ctx, user.UserID, records)
	if err != nil {
		return 0, err
	}

	inserted, insErr := s.store.InsertHistoryBatch(ctx, history)
	if insErr != nil || len(inserted) != len(history) {
		if len(inserted) > 0 {
			if _, delErr := s.store.DeleteHistoryByIDs(ctx, inserted); delErr != nil {
				recErr := &domain.ReconciliationError{OrphanIDs: inserted, Err: delErr}
				log.Error("weekly reset: compensation failed, manual reconciliation required",
					"orphan_count", len(inserted), "error", delErr)
				return 0, recErr
			}
			log.Warn("weekly reset: rolled back partial history insert",
				"inserted", len(inserted), "submitted", len(history))
		}
		if len(inserted) < len(history) {
			return 0, &domain.PartialWriteError{Submitted: len(history), Inserted: len(inserted), Err: insErr}
		}
		return 0, fmt.Errorf("failed to insert history records: %w", insErr)
	}

	// History is durable; only now may the active set go.
	deleted, err := s.store.DeleteRecordsByUser(ctx, user.UserID)
	if err != nil {
		// Safe but non-terminal: the records now exist in both stores and
		// a retried reset will re-archive them.
		return 0, fmt.Errorf("history written but active records not deleted: %w", err)
	}

	log.Info("weekly reset complete", "archived", len(history), "deleted", deleted)
	return len(history), nil
}

// buildHistory constructs one history record per active record, resolving
// display fields against the live referenced entities. Any dangling
// reference or empty display field aborts the archive before a single
// write happens.
func (s *Service) buildHistory(ctx context.Context, userID string, records []domain.RunRecord) ([]domain.HistoryRecord, error) {
	now := time.Now()
	history := make([]domain.HistoryRecord, 0, len(records))
	var issues []string

	for i, rec := range records {
		character, err := s.store.GetCharacter(ctx, rec.CharacterID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve character for record %d: %w", i+1, err)
		}
		if character == nil {
			return nil, &domain.NotFoundError{Entity: "character", ID: rec.CharacterID}
		}

		account, err := s.store.GetGameAccount(ctx, rec.GameAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve game account for record %d: %w", i+1, err)
		}
		if account == nil {
			return nil, &domain.NotFoundError{Entity: "game account", ID: rec.GameAccountID}
		}

		dungeon, err := s.store.GetDungeon(ctx, rec.DungeonID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dungeon for record %d: %w", i+1, err)
		}
		if dungeon == nil {
			return nil, &domain.NotFoundError{Entity: "dungeon", ID: rec.DungeonID}
		}

		if character.Name == "" {
			issues = append(issues, fmt.Sprintf("record %d is missing the character name", i+1))
		}
		if account.AccountNumber == "" {
			issues = append(issues, fmt.Sprintf("record %d is missing the game account number", i+1))
		}
		if dungeon.Name == "" {
			issues = append(issues, fmt.Sprintf("record %d is missing the dungeon name", i+1))
		}

		history = append(history, domain.HistoryRecord{
			HistoryID:         "his_" + uuid.New().String()[:8],
			UserID:            userID,
			CharacterID:       rec.CharacterID,
			CharacterName:     character.Name,
			GameAccountID:     rec.GameAccountID,
			GameAccountNumber: account.AccountNumber,
			DungeonID:         rec.DungeonID,
			DungeonName:       dungeon.Name,
			IsSolo:            rec.IsSolo,
			IsCompleted:       rec.IsCompleted,
			HasReward:         rec.HasReward,
			Rewards:           rec.Rewards,
			OriginalCreatedAt: rec.CreatedAt,
			ArchivedAt:        now,
		})
	}

	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}
	return history, nil
}
