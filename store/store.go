// Package store defines the storage interface and implementations.
package store

import (
	"context"
	"time"

	"github.com/kaiyue77/arkledger/domain"
)

// Store defines the interface for data persistence. Every query and
// mutation is scoped by the owning user; callers never see another user's
// rows.
type Store interface {
	// Game account operations
	CreateGameAccount(ctx context.Context, account *domain.GameAccount) error
	GetGameAccount(ctx context.Context, accountID string) (*domain.GameAccount, error)
	ListGameAccounts(ctx context.Context, userID string) ([]domain.GameAccount, error)
	UpdateGameAccount(ctx context.Context, account *domain.GameAccount) error
	DeleteGameAccount(ctx context.Context, accountID string) error
	CountGameAccounts(ctx context.Context, userID string) (int, error)

	// Character operations
	CreateCharacter(ctx context.Context, character *domain.Character) error
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	ListCharacters(ctx context.Context, userID string, filter CharacterFilter) ([]domain.Character, int, error)
	UpdateCharacter(ctx context.Context, character *domain.Character) error
	DeleteCharacter(ctx context.Context, characterID string) error

	// Dungeon operations
	CreateDungeon(ctx context.Context, dungeon *domain.Dungeon) error
	GetDungeon(ctx context.Context, dungeonID string) (*domain.Dungeon, error)
	ListDungeons(ctx context.Context, userID string) ([]domain.Dungeon, error)
	UpdateDungeon(ctx context.Context, dungeon *domain.Dungeon) error
	DeleteDungeon(ctx context.Context, dungeonID string) error

	// Run record operations
	CreateRecord(ctx context.Context, record *domain.RunRecord) error
	GetRecord(ctx context.Context, recordID string) (*domain.RunRecord, error)
	ListRecordsByCharacter(ctx context.Context, userID, characterID string) ([]domain.RunRecord, error)
	ListRecordsByUser(ctx context.Context, userID string) ([]domain.RunRecord, error)
	ListRecords(ctx context.Context, userID string, filter RecordFilter) ([]domain.RunRecord, error)
	UpdateRecord(ctx context.Context, record *domain.RunRecord) error
	DeleteRecord(ctx context.Context, recordID string) error
	DeleteRecordsByUser(ctx context.Context, userID string) (int64, error)
	CompletedDungeonIDs(ctx context.Context, userID, characterID string) ([]string, error)

	// History operations. History is append-only: batch insert for the
	// archival workflow, delete-by-identity for its compensation path,
	// reads for reporting.
	InsertHistoryBatch(ctx context.Context, records []domain.HistoryRecord) ([]string, error)
	DeleteHistoryByIDs(ctx context.Context, historyIDs []string) (int64, error)
	ListHistory(ctx context.Context, userID string, filter RecordFilter) ([]domain.HistoryRecord, error)
	CountHistoryByUser(ctx context.Context, userID string) (int, error)

	// Lifecycle
	Close() error
}

// CharacterFilter narrows and pages character listings.
type CharacterFilter struct {
	GameAccountID string
	MinItemLevel  int
	Page          int // 1-based; 0 disables paging
	Limit         int
}

// RecordFilter narrows record and history listings for reporting. For
// active records the range applies to created_at, for history to
// original_created_at.
type RecordFilter struct {
	GameAccountID string
	Start         *time.Time
	End           *time.Time
}
