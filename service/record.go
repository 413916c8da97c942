package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/logging"
	"github.com/kaiyue77/arkledger/reward"
)

// CreateRecord creates a run record. Rewards are computed from the
// dungeon's rates at write time; display names are snapshotted from the
// referenced entities.
func (s *Service) CreateRecord(ctx context.Context, userID string, req domain.CreateRecordRequest) (*domain.RunRecord, error) {
	var issues []string
	if req.CharacterID == "" {
		issues = append(issues, "character_id is required")
	}
	if req.GameAccountID == "" {
		issues = append(issues, "game_account_id is required")
	}
	if req.DungeonID == "" {
		issues = append(issues, "dungeon_id is required")
	}
	if !req.IsCompleted && req.Progress == "" {
		issues = append(issues, "progress is required while the run is incomplete")
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	character, err := s.ownedCharacter(ctx, userID, req.CharacterID)
	if err != nil {
		return nil, err
	}
	account, err := s.ownedGameAccount(ctx, userID, req.GameAccountID)
	if err != nil {
		return nil, err
	}
	dungeon, err := s.ownedDungeon(ctx, userID, req.DungeonID)
	if err != nil {
		return nil, err
	}

	progress := req.Progress
	if req.IsCompleted {
		progress = ""
	}

	record := &domain.RunRecord{
		RecordID:        "rec_" + uuid.New().String()[:8],
		UserID:          userID,
		CharacterID:     character.CharacterID,
		CharacterName:   character.Name,
		GameAccountID:   account.AccountID,
		GameAccountName: account.AccountName,
		DungeonID:       dungeon.DungeonID,
		DungeonName:     dungeon.Name,
		IsSolo:          req.IsSolo,
		IsCompleted:     req.IsCompleted,
		Progress:        progress,
		HasReward:       req.HasReward,
		HasEster:        req.HasEster,
		Rewards:         reward.Compute(*dungeon, req.IsSolo, req.IsCompleted, req.HasReward),
		CreatedAt:       time.Now(),
	}

	if err := s.store.CreateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	logging.FromContext(ctx).Info("record created",
		"record_id", record.RecordID, "dungeon", record.DungeonName, "reward_total", record.Rewards.Total)
	return record, nil
}

// UpdateRecord replaces a record's mutable state and recomputes its
// rewards from the record's dungeon.
func (s *Service) UpdateRecord(ctx context.Context, userID, recordID string, req domain.UpdateRecordRequest) (*domain.RunRecord, error) {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if record == nil {
		return nil, &domain.NotFoundError{Entity: "record", ID: recordID}
	}
	if record.UserID != userID {
		return nil, domain.ErrForbidden
	}

	if !req.IsCompleted && req.Progress == "" {
		return nil, &domain.ValidationError{Issues: []string{"progress is required while the run is incomplete"}}
	}

	dungeon, err := s.store.GetDungeon(ctx, record.DungeonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dungeon: %w", err)
	}
	if dungeon == nil {
		return nil, &domain.NotFoundError{Entity: "dungeon", ID: record.DungeonID}
	}

	record.IsSolo = req.IsSolo
	record.IsCompleted = req.IsCompleted
	record.HasReward = req.HasReward
	record.HasEster = req.HasEster
	record.Progress = req.Progress
	if req.IsCompleted {
		record.Progress = ""
	}
	record.Rewards = reward.Compute(*dungeon, req.IsSolo, req.IsCompleted, req.HasReward)

	if err := s.store.UpdateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return record, nil
}

// DeleteRecord deletes a single run record owned by the user.
func (s *Service) DeleteRecord(ctx context.Context, userID, recordID string) error {
	record, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}
	if record == nil {
		return &domain.NotFoundError{Entity: "record", ID: recordID}
	}
	if record.UserID != userID {
		return domain.ErrForbidden
	}
	if err := s.store.DeleteRecord(ctx, recordID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// ListRecords retrieves a character's run records, newest first.
func (s *Service) ListRecords(ctx context.Context, userID, characterID string) ([]domain.RunRecord, error) {
	records, err := s.store.ListRecordsByCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// CompletedDungeons returns the distinct dungeon ids a character has
// records for.
func (s *Service) CompletedDungeons(ctx context.Context, userID, characterID string) ([]string, error) {
	ids, err := s.store.CompletedDungeonIDs(ctx, userID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed dungeons: %w", err)
	}
	return ids, nil
}

// RecordStats sums the stored rewards of a character's completed,
// rewarded records.
func (s *Service) RecordStats(ctx context.Context, userID, characterID string) (*domain.RecordStats, error) {
	records, err := s.store.ListRecordsByCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	stats := &domain.RecordStats{}
	for _, rec := range records {
		if !rec.IsCompleted || !rec.HasReward {
			continue
		}
		stats.TotalIncome += rec.Rewards.Total
		stats.BoundIncome += rec.Rewards.Bound
		stats.TradeableIncome += rec.Rewards.Tradeable
		stats.RecordCount++
	}
	return stats, nil
}
