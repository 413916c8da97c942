package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyue77/arkledger/domain"
)

func validateDungeon(req domain.CreateDungeonRequest) []string {
	var issues []string
	if req.Name == "" {
		issues = append(issues, "name is required")
	}
	if req.ItemLevel <= 0 {
		issues = append(issues, "item_level must be positive")
	}
	if req.BoundGoldIncome < 0 || req.TradeableGoldIncome < 0 {
		issues = append(issues, "income rates must be non-negative")
	}
	if req.RefreshInterval < 1 {
		issues = append(issues, "refresh_interval must be at least 1 week")
	}
	if req.HasSoloMode && req.SoloIncome <= 0 {
		issues = append(issues, "solo_income is required when has_solo_mode is set")
	}
	if !req.HasSoloMode && req.SoloIncome != 0 {
		issues = append(issues, "solo_income must be 0 without solo mode")
	}
	return issues
}

// CreateDungeon creates a dungeon definition. TotalIncome is derived from
// the two components so the total == bound + tradeable invariant holds by
// construction.
func (s *Service) CreateDungeon(ctx context.Context, userID string, req domain.CreateDungeonRequest) (*domain.Dungeon, error) {
	if issues := validateDungeon(req); len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	dungeon := &domain.Dungeon{
		DungeonID:           "dgn_" + uuid.New().String()[:8],
		Name:                req.Name,
		ItemLevel:           req.ItemLevel,
		TotalIncome:         req.BoundGoldIncome + req.TradeableGoldIncome,
		BoundGoldIncome:     req.BoundGoldIncome,
		TradeableGoldIncome: req.TradeableGoldIncome,
		HasEster:            req.HasEster,
		RefreshInterval:     req.RefreshInterval,
		HasSoloMode:         req.HasSoloMode,
		SoloIncome:          req.SoloIncome,
		UserID:              userID,
		CreatedAt:           time.Now(),
	}
	if err := s.store.CreateDungeon(ctx, dungeon); err != nil {
		return nil, fmt.Errorf("failed to create dungeon: %w", err)
	}
	return dungeon, nil
}

// GetDungeon retrieves one of the user's dungeon definitions.
func (s *Service) GetDungeon(ctx context.Context, userID, dungeonID string) (*domain.Dungeon, error) {
	return s.ownedDungeon(ctx, userID, dungeonID)
}

// ListDungeons retrieves all of the user's dungeon definitions.
func (s *Service) ListDungeons(ctx context.Context, userID string) ([]domain.Dungeon, error) {
	dungeons, err := s.store.ListDungeons(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	return dungeons, nil
}

// UpdateDungeon replaces a dungeon definition's rates and flags. Records
// already written keep their stored rewards; only future writes see the
// new rates.
func (s *Service) UpdateDungeon(ctx context.Context, userID, dungeonID string, req domain.CreateDungeonRequest) (*domain.Dungeon, error) {
	dungeon, err := s.ownedDungeon(ctx, userID, dungeonID)
	if err != nil {
		return nil, err
	}
	if issues := validateDungeon(req); len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	dungeon.Name = req.Name
	dungeon.ItemLevel = req.ItemLevel
	dungeon.TotalIncome = req.BoundGoldIncome + req.TradeableGoldIncome
	dungeon.BoundGoldIncome = req.BoundGoldIncome
	dungeon.TradeableGoldIncome = req.TradeableGoldIncome
	dungeon.HasEster = req.HasEster
	dungeon.RefreshInterval = req.RefreshInterval
	dungeon.HasSoloMode = req.HasSoloMode
	dungeon.SoloIncome = req.SoloIncome

	if err := s.store.UpdateDungeon(ctx, dungeon); err != nil {
		return nil, fmt.Errorf("failed to update dungeon: %w", err)
	}
	return dungeon, nil
}

// DeleteDungeon deletes a dungeon definition.
func (s *Service) DeleteDungeon(ctx context.Context, userID, dungeonID string) error {
	if _, err := s.ownedDungeon(ctx, userID, dungeonID); err != nil {
		return err
	}
	if err := s.store.DeleteDungeon(ctx, dungeonID); err != nil {
		return fmt.Errorf("failed to delete dungeon: %w", err)
	}
	return nil
}
