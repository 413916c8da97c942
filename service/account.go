package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyue77/arkledger/domain"
)

// CreateGameAccount creates a game account for the user.
func (s *Service) CreateGameAccount(ctx context.Context, userID string, req domain.CreateAccountRequest) (*domain.GameAccount, error) {
	var issues []string
	if req.AccountNumber == "" {
		issues = append(issues, "account_number is required")
	}
	if req.AccountName == "" {
		issues = append(issues, "account_name is required")
	}
	if len(issues) > 0 {
		return nil, &domain.ValidationError{Issues: issues}
	}

	account := &domain.GameAccount{
		AccountID:     "acc_" + uuid.New().String()[:8],
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		UserID:        userID,
		CreatedAt:     time.Now(),
	}
	if err := s.store.CreateGameAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create game account: %w", err)
	}
	return account, nil
}

// GetGameAccount retrieves one of the user's game accounts.
func (s *Service) GetGameAccount(ctx context.Context, userID, accountID string) (*domain.GameAccount, error) {
	return s.ownedGameAccount(ctx, userID, accountID)
}

// ListGameAccounts retrieves all of the user's game accounts.
func (s *Service) ListGameAccounts(ctx context.Context, userID string) ([]domain.GameAccount, error) {
	accounts, err := s.store.ListGameAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game accounts: %w", err)
	}
	return accounts, nil
}

// UpdateGameAccount updates a game account's number and name.
func (s *Service) UpdateGameAccount(ctx context.Context, userID, accountID string, req domain.UpdateAccountRequest) (*domain.GameAccount, error) {
	account, err := s.ownedGameAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if req.AccountNumber != "" {
		account.AccountNumber = req.AccountNumber
	}
	if req.AccountName != "" {
		account.AccountName = req.AccountName
	}
	if err := s.store.UpdateGameAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update game account: %w", err)
	}
	return account, nil
}

// DeleteGameAccount deletes a game account.
func (s *Service) DeleteGameAccount(ctx context.Context, userID, accountID string) error {
	if _, err := s.ownedGameAccount(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.store.DeleteGameAccount(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete game account: %w", err)
	}
	return nil
}
