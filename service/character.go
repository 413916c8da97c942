package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/store"
)

// CharacterPage is one page of a character listing.
type CharacterPage struct {
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Characters []domain.Character `json:"characters"`
}

// CreateCharacter creates a character attached to one of the user's game
// accounts.
func (s *Service) CreateCharacter(ctx context.Context, userID string, req domain.CreateCharacterRequest) (*domain.Character, error) {
	var issues []string
	if req.Name == "" {
		issues = append(issues, "name is required")
	}
	if req.Profession == "" {
		issues = append(issues, "profession is required")
	}
	if req.ItemLevel <= 0 {
		issues = append(issues, "item_level must be positive")
	}
	if req.GameAccountID == "" {
		issues = append(issues, "game_account_id is required")
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	if _, err := s.ownedGameAccount(ctx, userID, req.GameAccountID); err != nil {
		return nil, err
	}

	character := &domain.Character{
		CharacterID:   "chr_" + uuid.New().String()[:8],
		Name:          req.Name,
		ItemLevel:     req.ItemLevel,
		Profession:    req.Profession,
		Equipment:     req.Equipment,
		GameAccountID: req.GameAccountID,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
	if err := s.store.CreateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to create character: %w", err)
	}
	return character, nil
}

// GetCharacter retrieves one of the user's characters.
func (s *Service) GetCharacter(ctx context.Context, userID, characterID string) (*domain.Character, error) {
	return s.ownedCharacter(ctx, userID, characterID)
}

// ListCharacters retrieves a page of the user's characters, item level
// descending.
func (s *Service) ListCharacters(ctx context.Context, userID string, filter store.CharacterFilter) (*CharacterPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	characters, total, err := s.store.ListCharacters(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return &CharacterPage{
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Characters: characters,
	}, nil
}

// UpdateCharacter updates a character's editable fields. Moving the
// character to another game account re-validates account ownership.
func (s *Service) UpdateCharacter(ctx context.Context, userID, characterID string, req domain.UpdateCharacterRequest) (*domain.Character, error) {
	character, err := s.ownedCharacter(ctx, userID, characterID)
	if err != nil {
		return nil, err
	}

	if req.GameAccountID != "" && req.GameAccountID != character.GameAccountID {
		if _, err := s.ownedGameAccount(ctx, userID, req.GameAccountID); err != nil {
			return nil, err
		}
		character.GameAccountID = req.GameAccountID
	}
	if req.Name != "" {
		character.Name = req.Name
	}
	if req.Profession != "" {
		character.Profession = req.Profession
	}
	if req.ItemLevel != nil {
		character.ItemLevel = *req.ItemLevel
	}
	if len(req.Equipment) > 0 {
		character.Equipment = req.Equipment
	}

	if err := s.store.UpdateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	return character, nil
}

// DeleteCharacter deletes a character.
func (s *Service) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	if _, err := s.ownedCharacter(ctx, userID, characterID); err != nil {
		return err
	}
	if err := s.store.DeleteCharacter(ctx, characterID); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}
