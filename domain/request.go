package domain

import (
	"encoding/json"
	"time"
)

// CreateAccountRequest creates a game account.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// UpdateAccountRequest updates a game account.
type UpdateAccountRequest struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// CreateCharacterRequest creates a character.
type CreateCharacterRequest struct {
	Name          string          `json:"name"`
	ItemLevel     int             `json:"item_level"`
	Profession    string          `json:"profession"`
	Equipment     json.RawMessage `json:"equipment,omitempty"`
	GameAccountID string          `json:"game_account_id"`
}

// UpdateCharacterRequest updates a character. Zero values leave the field
// unchanged except ItemLevel, which is always applied when >= 0.
type UpdateCharacterRequest struct {
	Name          string          `json:"name"`
	ItemLevel     *int            `json:"item_level,omitempty"`
	Profession    string          `json:"profession"`
	Equipment     json.RawMessage `json:"equipment,omitempty"`
	GameAccountID string          `json:"game_account_id"`
}

// CreateDungeonRequest creates a dungeon definition.
type CreateDungeonRequest struct {
	Name                string `json:"name"`
	ItemLevel           int    `json:"item_level"`
	BoundGoldIncome     int    `json:"bound_gold_income"`
	TradeableGoldIncome int    `json:"tradeable_gold_income"`
	HasEster            bool   `json:"has_ester"`
	RefreshInterval     int    `json:"refresh_interval"`
	HasSoloMode         bool   `json:"has_solo_mode"`
	SoloIncome          int    `json:"solo_income"`
}

// CreateRecordRequest creates a run record. Display names are snapshotted
// server-side from the referenced entities.
type CreateRecordRequest struct {
	CharacterID   string `json:"character_id"`
	GameAccountID string `json:"game_account_id"`
	DungeonID     string `json:"dungeon_id"`
	IsSolo        bool   `json:"is_solo"`
	IsCompleted   bool   `json:"is_completed"`
	Progress      string `json:"progress,omitempty"`
	HasReward     bool   `json:"has_reward"`
	HasEster      bool   `json:"has_ester"`
}

// UpdateRecordRequest replaces a record's mutable state. Rewards are
// recomputed from the record's dungeon on every update.
type UpdateRecordRequest struct {
	IsSolo      bool   `json:"is_solo"`
	IsCompleted bool   `json:"is_completed"`
	Progress    string `json:"progress,omitempty"`
	HasReward   bool   `json:"has_reward"`
	HasEster    bool   `json:"has_ester"`
}

// ResetResponse is the weekly reset result. Count is the number of records
// archived; 0 means the active set was empty.
type ResetResponse struct {
	Count int `json:"count"`
}

// RecordStats sums the stored rewards of a character's completed, rewarded
// records.
type RecordStats struct {
	TotalIncome     int `json:"total_income"`
	BoundIncome     int `json:"bound_income"`
	TradeableIncome int `json:"tradeable_income"`
	RecordCount     int `json:"record_count"`
}

// StatsQuery filters the statistics endpoint.
type StatsQuery struct {
	GameAccountID string
	RecordType    string // "active" (default) or "history"
	Start         *time.Time
	End           *time.Time
}

// StatsOverview is the headline block of the statistics response.
type StatsOverview struct {
	AccountCount    int `json:"account_count"`
	CharacterCount  int `json:"character_count"`
	RecordCount     int `json:"record_count"`
	TotalIncome     int `json:"total_income"`
	BoundIncome     int `json:"bound_income"`
	TradeableIncome int `json:"tradeable_income"`
}

// ItemLevelBucket is one row of the item-level distribution.
type ItemLevelBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// DungeonUsage is per-dungeon clear count and income.
type DungeonUsage struct {
	Name            string `json:"name"`
	Count           int    `json:"count"`
	BoundIncome     int    `json:"bound_income"`
	TradeableIncome int    `json:"tradeable_income"`
}

// DungeonIncome is per-dungeon income totals.
type DungeonIncome struct {
	Name      string `json:"name"`
	Bound     int    `json:"bound"`
	Tradeable int    `json:"tradeable"`
}

// Statistics is the full statistics response.
type Statistics struct {
	Overview              StatsOverview     `json:"overview"`
	ItemLevelDistribution []ItemLevelBucket `json:"item_level_distribution"`
	DungeonUsage          []DungeonUsage    `json:"dungeon_usage"`
	DungeonIncome         []DungeonIncome   `json:"dungeon_income"`
}
