package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kaiyue77/arkledger/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS game_accounts (
			account_id TEXT PRIMARY KEY,
			account_number TEXT NOT NULL UNIQUE,
			account_name TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_accounts_user ON game_accounts(user_id)`,
		`CREATE TABLE IF NOT EXISTS characters (
			character_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			item_level INTEGER NOT NULL,
			profession TEXT NOT NULL,
			equipment TEXT,
			game_account_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (game_account_id) REFERENCES game_accounts(account_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_characters_user ON characters(user_id, item_level)`,
		`CREATE TABLE IF NOT EXISTS dungeons (
			dungeon_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			item_level INTEGER NOT NULL,
			total_income INTEGER NOT NULL DEFAULT 0,
			bound_gold_income INTEGER NOT NULL DEFAULT 0,
			tradeable_gold_income INTEGER NOT NULL DEFAULT 0,
			has_ester INTEGER NOT NULL DEFAULT 0,
			refresh_interval INTEGER NOT NULL DEFAULT 1,
			has_solo_mode INTEGER NOT NULL DEFAULT 0,
			solo_income INTEGER NOT NULL DEFAULT 0,
			user_id TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dungeons_user ON dungeons(user_id)`,
		`CREATE TABLE IF NOT EXISTS dungeon_records (
			record_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			character_id TEXT NOT NULL,
			character_name TEXT NOT NULL,
			game_account_id TEXT NOT NULL,
			game_account_name TEXT NOT NULL,
			dungeon_id TEXT NOT NULL,
			dungeon_name TEXT NOT NULL,
			is_solo INTEGER NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			progress TEXT,
			has_reward INTEGER NOT NULL DEFAULT 0,
			has_ester INTEGER NOT NULL DEFAULT 0,
			reward_total INTEGER NOT NULL DEFAULT 0,
			reward_bound INTEGER NOT NULL DEFAULT 0,
			reward_tradeable INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_user ON dungeon_records(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_records_character ON dungeon_records(user_id, character_id)`,
		`CREATE TABLE IF NOT EXISTS dungeon_history (
			history_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			character_id TEXT NOT NULL,
			character_name TEXT NOT NULL,
			game_account_id TEXT NOT NULL,
			game_account_number TEXT NOT NULL,
			dungeon_id TEXT NOT NULL,
			dungeon_name TEXT NOT NULL,
			is_solo INTEGER NOT NULL DEFAULT 0,
			is_completed INTEGER NOT NULL DEFAULT 0,
			has_reward INTEGER NOT NULL DEFAULT 0,
			reward_total INTEGER NOT NULL DEFAULT 0,
			reward_bound INTEGER NOT NULL DEFAULT 0,
			reward_tradeable INTEGER NOT NULL DEFAULT 0,
			original_created_at DATETIME NOT NULL,
			archived_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user ON dungeon_history(user_id, original_created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateGameAccount creates a new game account.
func (s *SQLiteStore) CreateGameAccount(ctx context.Context, account *domain.GameAccount) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO game_accounts (account_id, account_number, account_name, user_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		account.AccountID, account.AccountNumber, account.AccountName, account.UserID, account.CreatedAt)
	return err
}

// GetGameAccount retrieves a game account by ID.
func (s *SQLiteStore) GetGameAccount(ctx context.Context, accountID string) (*domain.GameAccount, error) {
	var account domain.GameAccount
	err := s.db.QueryRowContext(ctx,
		`SELECT account_id, account_number, account_name, user_id, created_at FROM game_accounts WHERE account_id = ?`,
		accountID).Scan(&account.AccountID, &account.AccountNumber, &account.AccountName, &account.UserID, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListGameAccounts retrieves all game accounts owned by a user.
func (s *SQLiteStore) ListGameAccounts(ctx context.Context, userID string) ([]domain.GameAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, account_number, account_name, user_id, created_at FROM game_accounts WHERE user_id = ? ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.GameAccount
	for rows.Next() {
		var account domain.GameAccount
		if err := rows.Scan(&account.AccountID, &account.AccountNumber, &account.AccountName, &account.UserID, &account.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// UpdateGameAccount updates a game account's editable fields.
func (s *SQLiteStore) UpdateGameAccount(ctx context.Context, account *domain.GameAccount) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE game_accounts SET account_number = ?, account_name = ? WHERE account_id = ?`,
		account.AccountNumber, account.AccountName, account.AccountID)
	return err
}

// DeleteGameAccount deletes a game account.
func (s *SQLiteStore) DeleteGameAccount(ctx context.Context, accountID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM game_accounts WHERE account_id = ?`, accountID)
	return err
}

// CountGameAccounts counts a user's game accounts.
func (s *SQLiteStore) CountGameAccounts(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM game_accounts WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// CreateCharacter creates a new character.
func (s *SQLiteStore) CreateCharacter(ctx context.Context, character *domain.Character) error {
	var equipment sql.NullString
	if len(character.Equipment) > 0 {
		equipment = sql.NullString{String: string(character.Equipment), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO characters (character_id, name, item_level, profession, equipment, game_account_id, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		character.CharacterID, character.Name, character.ItemLevel, character.Profession, equipment, character.GameAccountID, character.UserID, character.CreatedAt)
	return err
}

// GetCharacter retrieves a character by ID.
func (s *SQLiteStore) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	var character domain.Character
	var equipment sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT character_id, name, item_level, profession, equipment, game_account_id, user_id, created_at FROM characters WHERE character_id = ?`,
		characterID).Scan(&character.CharacterID, &character.Name, &character.ItemLevel, &character.Profession, &equipment, &character.GameAccountID, &character.UserID, &character.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if equipment.Valid {
		character.Equipment = []byte(equipment.String)
	}
	return &character, nil
}

// ListCharacters retrieves a user's characters, item level descending,
// with optional account filter, minimum item level, and paging. The second
// return value is the total matching count before paging.
func (s *SQLiteStore) ListCharacters(ctx context.Context, userID string, filter CharacterFilter) ([]domain.Character, int, error) {
	where := `WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.GameAccountID != "" {
		where += ` AND game_account_id = ?`
		args = append(args, filter.GameAccountID)
	}
	if filter.MinItemLevel > 0 {
		where += ` AND item_level >= ?`
		args = append(args, filter.MinItemLevel)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT character_id, name, item_level, profession, equipment, game_account_id, user_id, created_at FROM characters ` +
		where + ` ORDER BY item_level DESC`
	if filter.Page > 0 && filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, (filter.Page-1)*filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var characters []domain.Character
	for rows.Next() {
		var character domain.Character
		var equipment sql.NullString
		if err := rows.Scan(&character.CharacterID, &character.Name, &character.ItemLevel, &character.Profession, &equipment, &character.GameAccountID, &character.UserID, &character.CreatedAt); err != nil {
			return nil, 0, err
		}
		if equipment.Valid {
			character.Equipment = []byte(equipment.String)
		}
		characters = append(characters, character)
	}
	return characters, total, rows.Err()
}

// UpdateCharacter updates a character's editable fields.
func (s *SQLiteStore) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	var equipment sql.NullString
	if len(character.Equipment) > 0 {
		equipment = sql.NullString{String: string(character.Equipment), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET name = ?, item_level = ?, profession = ?, equipment = ?, game_account_id = ? WHERE character_id = ?`,
		character.Name, character.ItemLevel, character.Profession, equipment, character.GameAccountID, character.CharacterID)
	return err
}

// DeleteCharacter deletes a character.
func (s *SQLiteStore) DeleteCharacter(ctx context.Context, characterID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM characters WHERE character_id = ?`, characterID)
	return err
}

// CreateDungeon creates a new dungeon definition.
func (s *SQLiteStore) CreateDungeon(ctx context.Context, dungeon *domain.Dungeon) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dungeons (dungeon_id, name, item_level, total_income, bound_gold_income, tradeable_gold_income, has_ester, refresh_interval, has_solo_mode, solo_income, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dungeon.DungeonID, dungeon.Name, dungeon.ItemLevel, dungeon.TotalIncome, dungeon.BoundGoldIncome, dungeon.TradeableGoldIncome,
		dungeon.HasEster, dungeon.RefreshInterval, dungeon.HasSoloMode, dungeon.SoloIncome, dungeon.UserID, dungeon.CreatedAt)
	return err
}

func scanDungeon(scan func(dest ...interface{}) error) (*domain.Dungeon, error) {
	var d domain.Dungeon
	err := scan(&d.DungeonID, &d.Name, &d.ItemLevel, &d.TotalIncome, &d.BoundGoldIncome, &d.TradeableGoldIncome,
		&d.HasEster, &d.RefreshInterval, &d.HasSoloMode, &d.SoloIncome, &d.UserID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const dungeonColumns = `dungeon_id, name, item_level, total_income, bound_gold_income, tradeable_gold_income, has_ester, refresh_interval, has_solo_mode, solo_income, user_id, created_at`

// GetDungeon retrieves a dungeon by ID.
func (s *SQLiteStore) GetDungeon(ctx context.Context, dungeonID string) (*domain.Dungeon, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+dungeonColumns+` FROM dungeons WHERE dungeon_id = ?`, dungeonID)
	dungeon, err := scanDungeon(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dungeon, nil
}

// ListDungeons retrieves all dungeons owned by a user, item level descending.
func (s *SQLiteStore) ListDungeons(ctx context.Context, userID string) ([]domain.Dungeon, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+dungeonColumns+` FROM dungeons WHERE user_id = ? ORDER BY item_level DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dungeons []domain.Dungeon
	for rows.Next() {
		dungeon, err := scanDungeon(rows.Scan)
		if err != nil {
			return nil, err
		}
		dungeons = append(dungeons, *dungeon)
	}
	return dungeons, rows.Err()
}

// UpdateDungeon updates a dungeon definition.
func (s *SQLiteStore) UpdateDungeon(ctx context.Context, dungeon *domain.Dungeon) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE dungeons SET name = ?, item_level = ?, total_income = ?, bound_gold_income = ?, tradeable_gold_income = ?, has_ester = ?, refresh_interval = ?, has_solo_mode = ?, solo_income = ? WHERE dungeon_id = ?`,
		dungeon.Name, dungeon.ItemLevel, dungeon.TotalIncome, dungeon.BoundGoldIncome, dungeon.TradeableGoldIncome,
		dungeon.HasEster, dungeon.RefreshInterval, dungeon.HasSoloMode, dungeon.SoloIncome, dungeon.DungeonID)
	return err
}

// DeleteDungeon deletes a dungeon definition.
func (s *SQLiteStore) DeleteDungeon(ctx context.Context, dungeonID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM dungeons WHERE dungeon_id = ?`, dungeonID)
	return err
}

const recordColumns = `record_id, user_id, character_id, character_name, game_account_id, game_account_name, dungeon_id, dungeon_name, is_solo, is_completed, progress, has_reward, has_ester, reward_total, reward_bound, reward_tradeable, created_at`

// CreateRecord creates a new run record.
func (s *SQLiteStore) CreateRecord(ctx context.Context, record *domain.RunRecord) error {
	var progress sql.NullString
	if record.Progress != "" {
		progress = sql.NullString{String: record.Progress, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dungeon_records (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RecordID, record.UserID, record.CharacterID, record.CharacterName, record.GameAccountID, record.GameAccountName,
		record.DungeonID, record.DungeonName, record.IsSolo, record.IsCompleted, progress, record.HasReward, record.HasEster,
		record.Rewards.Total, record.Rewards.Bound, record.Rewards.Tradeable, record.CreatedAt)
	return err
}

func scanRecord(scan func(dest ...interface{}) error) (*domain.RunRecord, error) {
	var r domain.RunRecord
	var progress sql.NullString
	err := scan(&r.RecordID, &r.UserID, &r.CharacterID, &r.CharacterName, &r.GameAccountID, &r.GameAccountName,
		&r.DungeonID, &r.DungeonName, &r.IsSolo, &r.IsCompleted, &progress, &r.HasReward, &r.HasEster,
		&r.Rewards.Total, &r.Rewards.Bound, &r.Rewards.Tradeable, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if progress.Valid {
		r.Progress = progress.String
	}
	return &r, nil
}

// GetRecord retrieves a run record by ID.
func (s *SQLiteStore) GetRecord(ctx context.Context, recordID string) (*domain.RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM dungeon_records WHERE record_id = ?`, recordID)
	record, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *SQLiteStore) queryRecords(ctx context.Context, query string, args ...interface{}) ([]domain.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// ListRecordsByCharacter retrieves a character's run records, newest first.
func (s *SQLiteStore) ListRecordsByCharacter(ctx context.Context, userID, characterID string) ([]domain.RunRecord, error) {
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM dungeon_records WHERE user_id = ? AND character_id = ? ORDER BY created_at DESC`,
		userID, characterID)
}

// ListRecordsByUser retrieves all of a user's active run records.
func (s *SQLiteStore) ListRecordsByUser(ctx context.Context, userID string) ([]domain.RunRecord, error) {
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM dungeon_records WHERE user_id = ? ORDER BY created_at ASC`, userID)
}

// ListRecords retrieves a user's active records narrowed for reporting.
func (s *SQLiteStore) ListRecords(ctx context.Context, userID string, filter RecordFilter) ([]domain.RunRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM dungeon_records WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.GameAccountID != "" {
		query += ` AND game_account_id = ?`
		args = append(args, filter.GameAccountID)
	}
	if filter.Start != nil {
		query += ` AND created_at >= ?`
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		query += ` AND created_at <= ?`
		args = append(args, *filter.End)
	}
	query += ` ORDER BY created_at ASC`
	return s.queryRecords(ctx, query, args...)
}

// UpdateRecord replaces a record's mutable state and rewards.
func (s *SQLiteStore) UpdateRecord(ctx context.Context, record *domain.RunRecord) error {
	var progress sql.NullString
	if record.Progress != "" {
		progress = sql.NullString{String: record.Progress, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE dungeon_records SET is_solo = ?, is_completed = ?, progress = ?, has_reward = ?, has_ester = ?, reward_total = ?, reward_bound = ?, reward_tradeable = ? WHERE record_id = ?`,
		record.IsSolo, record.IsCompleted, progress, record.HasReward, record.HasEster,
		record.Rewards.Total, record.Rewards.Bound, record.Rewards.Tradeable, record.RecordID)
	return err
}

// DeleteRecord deletes a single run record.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, recordID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM dungeon_records WHERE record_id = ?`, recordID)
	return err
}

// DeleteRecordsByUser deletes all of a user's active run records and
// returns the number removed.
func (s *SQLiteStore) DeleteRecordsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM dungeon_records WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CompletedDungeonIDs returns the distinct dungeon ids a character has
// records for.
func (s *SQLiteStore) CompletedDungeonIDs(ctx context.Context, userID, characterID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT dungeon_id FROM dungeon_records WHERE user_id = ? AND character_id = ?`,
		userID, characterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const historyColumns = `history_id, user_id, character_id, character_name, game_account_id, game_account_number, dungeon_id, dungeon_name, is_solo, is_completed, has_reward, reward_total, reward_bound, reward_tradeable, original_created_at, archived_at`

// InsertHistoryBatch inserts history records one by one and returns the
// identities that were actually written. On failure the ids inserted so
// far are returned alongside the error so the caller can compensate.
func (s *SQLiteStore) InsertHistoryBatch(ctx context.Context, records []domain.HistoryRecord) ([]string, error) {
	inserted := make([]string, 0, len(records))
	for _, r := range records {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO dungeon_history (`+historyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.HistoryID, r.UserID, r.CharacterID, r.CharacterName, r.GameAccountID, r.GameAccountNumber,
			r.DungeonID, r.DungeonName, r.IsSolo, r.IsCompleted, r.HasReward,
			r.Rewards.Total, r.Rewards.Bound, r.Rewards.Tradeable, r.OriginalCreatedAt, r.ArchivedAt)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert history record %s: %w", r.HistoryID, err)
		}
		inserted = append(inserted, r.HistoryID)
	}
	return inserted, nil
}

// DeleteHistoryByIDs deletes history records by identity. Only the archival
// workflow's compensation path uses this.
func (s *SQLiteStore) DeleteHistoryByIDs(ctx context.Context, historyIDs []string) (int64, error) {
	if len(historyIDs) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(historyIDs))
	args := make([]interface{}, len(historyIDs))
	for i, id := range historyIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM dungeon_history WHERE history_id IN (%s)`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListHistory retrieves a user's history records narrowed for reporting.
// Date filters apply to original_created_at.
func (s *SQLiteStore) ListHistory(ctx context.Context, userID string, filter RecordFilter) ([]domain.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM dungeon_history WHERE user_id = ?`
	args := []interface{}{userID}
	if filter.GameAccountID != "" {
		query += ` AND game_account_id = ?`
		args = append(args, filter.GameAccountID)
	}
	if filter.Start != nil {
		query += ` AND original_created_at >= ?`
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		query += ` AND original_created_at <= ?`
		args = append(args, *filter.End)
	}
	query += ` ORDER BY original_created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var r domain.HistoryRecord
		if err := rows.Scan(&r.HistoryID, &r.UserID, &r.CharacterID, &r.CharacterName, &r.GameAccountID, &r.GameAccountNumber,
			&r.DungeonID, &r.DungeonName, &r.IsSolo, &r.IsCompleted, &r.HasReward,
			&r.Rewards.Total, &r.Rewards.Bound, &r.Rewards.Tradeable, &r.OriginalCreatedAt, &r.ArchivedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CountHistoryByUser counts a user's history records.
func (s *SQLiteStore) CountHistoryByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dungeon_history WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}
