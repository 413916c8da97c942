// Package domain defines the core domain models for the ledger.
package domain

import (
	"encoding/json"
	"time"
)

// Principal is the authenticated caller resolved by the auth middleware.
// Token issuance lives in an external identity service; this is only the
// contract the rest of the system depends on.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Rewards is the gold yield of a run. Total == Bound + Tradeable always.
type Rewards struct {
	Total     int `json:"total"`
	Bound     int `json:"bound"`
	Tradeable int `json:"tradeable"`
}

// GameAccount is one game account owned by a user.
type GameAccount struct {
	AccountID     string    `json:"account_id"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Character is a playable character attached to a game account.
type Character struct {
	CharacterID   string          `json:"character_id"`
	Name          string          `json:"name"`
	ItemLevel     int             `json:"item_level"`
	Profession    string          `json:"profession"`
	Equipment     json.RawMessage `json:"equipment,omitempty"`
	GameAccountID string          `json:"game_account_id"`
	UserID        string          `json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Dungeon is reference data describing one dungeon and its income rates.
// SoloIncome is meaningful only when HasSoloMode is set; otherwise 0.
type Dungeon struct {
	DungeonID           string    `json:"dungeon_id"`
	Name                string    `json:"name"`
	ItemLevel           int       `json:"item_level"`
	TotalIncome         int       `json:"total_income"`
	BoundGoldIncome     int       `json:"bound_gold_income"`
	TradeableGoldIncome int       `json:"tradeable_gold_income"`
	HasEster            bool      `json:"has_ester"`
	RefreshInterval     int       `json:"refresh_interval"` // weeks
	HasSoloMode         bool      `json:"has_solo_mode"`
	SoloIncome          int       `json:"solo_income"`
	UserID              string    `json:"user_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// RunRecord is one dungeon attempt's current state, mutable until archived.
// The name fields are snapshots taken at write time and are intentionally
// stale relative to the referenced entities.
type RunRecord struct {
	RecordID        string    `json:"record_id"`
	UserID          string    `json:"user_id"`
	CharacterID     string    `json:"character_id"`
	CharacterName   string    `json:"character_name"`
	GameAccountID   string    `json:"game_account_id"`
	GameAccountName string    `json:"game_account_name"`
	DungeonID       string    `json:"dungeon_id"`
	DungeonName     string    `json:"dungeon_name"`
	IsSolo          bool      `json:"is_solo"`
	IsCompleted     bool      `json:"is_completed"`
	Progress        string    `json:"progress,omitempty"` // required only while incomplete
	HasReward       bool      `json:"has_reward"`
	HasEster        bool      `json:"has_ester"`
	Rewards         Rewards   `json:"rewards"`
	CreatedAt       time.Time `json:"created_at"`
}

// HistoryRecord is an immutable archived copy of a RunRecord. Rows are only
// ever created by the weekly reset (or deleted by its compensation path)
// and read by reporting. Display fields are re-resolved against the live
// entities at archive time.
type HistoryRecord struct {
	HistoryID         string    `json:"history_id"`
	UserID            string    `json:"user_id"`
	CharacterID       string    `json:"character_id"`
	CharacterName     string    `json:"character_name"`
	GameAccountID     string    `json:"game_account_id"`
	GameAccountNumber string    `json:"game_account_number"`
	DungeonID         string    `json:"dungeon_id"`
	DungeonName       string    `json:"dungeon_name"`
	IsSolo            bool      `json:"is_solo"`
	IsCompleted       bool      `json:"is_completed"`
	HasReward         bool      `json:"has_reward"`
	Rewards           Rewards   `json:"rewards"`
	OriginalCreatedAt time.Time `json:"original_created_at"`
	ArchivedAt        time.Time `json:"archived_at"`
}
