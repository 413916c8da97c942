package service

import (
	"context"
	"fmt"

	"github.com/kaiyue77/arkledger/domain"
)

// Owner-scoped lookups. A reference owned by another user is reported as
// missing rather than forbidden so ids cannot be probed across users.

func (s *Service) ownedGameAccount(ctx context.Context, userID, accountID string) (*domain.GameAccount, error) {
	account, err := s.store.GetGameAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game account: %w", err)
	}
	if account == nil || account.UserID != userID {
		return nil, &domain.NotFoundError{Entity: "game account", ID: accountID}
	}
	return account, nil
}

func (s *Service) ownedCharacter(ctx context.Context, userID, characterID string) (*domain.Character, error) {
	character, err := s.store.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if character == nil || character.UserID != userID {
		return nil, &domain.NotFoundError{Entity: "character", ID: characterID}
	}
	return character, nil
}

func (s *Service) ownedDungeon(ctx context.Context, userID, dungeonID string) (*domain.Dungeon, error) {
	dungeon, err := s.store.GetDungeon(ctx, dungeonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dungeon: %w", err)
	}
	if dungeon == nil || dungeon.UserID != userID {
		return nil, &domain.NotFoundError{Entity: "dungeon", ID: dungeonID}
	}
	return dungeon, nil
}
