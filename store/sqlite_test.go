package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/kaiyue77/arkledger/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStoreGameAccounts(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	account := &domain.GameAccount{
		AccountID:     "acc_1",
		AccountNumber: "1001",
		AccountName:   "main",
		UserID:        "u1",
		CreatedAt:     time.Now(),
	}
	if err := store.CreateGameAccount(ctx, account); err != nil {
		t.Fatalf("CreateGameAccount failed: %v", err)
	}

	got, err := store.GetGameAccount(ctx, "acc_1")
	if err != nil {
		t.Fatalf("GetGameAccount failed: %v", err)
	}
	if got == nil || got.AccountNumber != "1001" || got.UserID != "u1" {
		t.Fatalf("unexpected account: %+v", got)
	}

	missing, err := store.GetGameAccount(ctx, "acc_none")
	if err != nil {
		t.Fatalf("GetGameAccount failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing account, got %+v", missing)
	}

	got.AccountName = "renamed"
	if err := store.UpdateGameAccount(ctx, got); err != nil {
		t.Fatalf("UpdateGameAccount failed: %v", err)
	}

	accounts, err := store.ListGameAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("ListGameAccounts failed: %v", err)
	}
	if len(accounts) != 1 || accounts[0].AccountName != "renamed" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	count, err := store.CountGameAccounts(ctx, "u1")
	if err != nil {
		t.Fatalf("CountGameAccounts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 account, got %d", count)
	}

	if err := store.DeleteGameAccount(ctx, "acc_1"); err != nil {
		t.Fatalf("DeleteGameAccount failed: %v", err)
	}
	count, _ = store.CountGameAccounts(ctx, "u1")
	if count != 0 {
		t.Fatalf("expected 0 accounts after delete, got %d", count)
	}
}

func TestSQLiteStoreCharacters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	account := &domain.GameAccount{AccountID: "acc_1", AccountNumber: "1001", AccountName: "main", UserID: "u1", CreatedAt: time.Now()}
	if err := store.CreateGameAccount(ctx, account); err != nil {
		t.Fatalf("CreateGameAccount failed: %v", err)
	}

	chars := []domain.Character{
		{CharacterID: "chr_1", Name: "Bard", ItemLevel: 1620, Profession: "bard", GameAccountID: "acc_1", UserID: "u1", CreatedAt: time.Now()},
		{CharacterID: "chr_2", Name: "Sorc", ItemLevel: 1580, Profession: "sorceress", GameAccountID: "acc_1", UserID: "u1", CreatedAt: time.Now(), Equipment: json.RawMessage(`{"weapon":"+20"}`)},
		{CharacterID: "chr_3", Name: "Gun", ItemLevel: 1550, Profession: "gunslinger", GameAccountID: "acc_1", UserID: "u1", CreatedAt: time.Now()},
	}
	for i := range chars {
		if err := store.CreateCharacter(ctx, &chars[i]); err != nil {
			t.Fatalf("CreateCharacter failed: %v", err)
		}
	}

	got, err := store.GetCharacter(ctx, "chr_2")
	if err != nil {
		t.Fatalf("GetCharacter failed: %v", err)
	}
	if got == nil || got.Name != "Sorc" || string(got.Equipment) != `{"weapon":"+20"}` {
		t.Fatalf("unexpected character: %+v", got)
	}

	// Item level descending.
	list, total, err := store.ListCharacters(ctx, "u1", CharacterFilter{})
	if err != nil {
		t.Fatalf("ListCharacters failed: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("expected 3 characters, got total=%d len=%d", total, len(list))
	}
	if list[0].CharacterID != "chr_1" || list[2].CharacterID != "chr_3" {
		t.Fatalf("expected item level descending order, got %+v", list)
	}

	// Min item level filter keeps the total honest.
	list, total, err = store.ListCharacters(ctx, "u1", CharacterFilter{MinItemLevel: 1580})
	if err != nil {
		t.Fatalf("ListCharacters failed: %v", err)
	}
	if total != 2 || len(list) != 2 {
		t.Fatalf("expected 2 characters at 1580+, got total=%d len=%d", total, len(list))
	}

	// Paging: total reflects the filter, not the page.
	list, total, err = store.ListCharacters(ctx, "u1", CharacterFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("ListCharacters failed: %v", err)
	}
	if total != 3 || len(list) != 1 || list[0].CharacterID != "chr_3" {
		t.Fatalf("unexpected page 2: total=%d list=%+v", total, list)
	}

	got.ItemLevel = 1625
	if err := store.UpdateCharacter(ctx, got); err != nil {
		t.Fatalf("UpdateCharacter failed: %v", err)
	}
	updated, _ := store.GetCharacter(ctx, "chr_2")
	if updated.ItemLevel != 1625 {
		t.Fatalf("expected item level 1625, got %d", updated.ItemLevel)
	}

	if err := store.DeleteCharacter(ctx, "chr_3"); err != nil {
		t.Fatalf("DeleteCharacter failed: %v", err)
	}
	_, total, _ = store.ListCharacters(ctx, "u1", CharacterFilter{})
	if total != 2 {
		t.Fatalf("expected 2 characters after delete, got %d", total)
	}
}

func TestSQLiteStoreDungeons(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	dungeon := &domain.Dungeon{
		DungeonID:           "dgn_1",
		Name:                "Valtan",
		ItemLevel:           1445,
		TotalIncome:         1500,
		BoundGoldIncome:     1000,
		TradeableGoldIncome: 500,
		HasEster:            true,
		RefreshInterval:     1,
		HasSoloMode:         true,
		SoloIncome:          900,
		UserID:              "u1",
		CreatedAt:           time.Now(),
	}
	if err := store.CreateDungeon(ctx, dungeon); err != nil {
		t.Fatalf("CreateDungeon failed: %v", err)
	}

	got, err := store.GetDungeon(ctx, "dgn_1")
	if err != nil {
		t.Fatalf("GetDungeon failed: %v", err)
	}
	if got == nil || got.Name != "Valtan" || !got.HasSoloMode || got.SoloIncome != 900 {
		t.Fatalf("unexpected dungeon: %+v", got)
	}

	got.TradeableGoldIncome = 600
	got.TotalIncome = 1600
	if err := store.UpdateDungeon(ctx, got); err != nil {
		t.Fatalf("UpdateDungeon failed: %v", err)
	}

	dungeons, err := store.ListDungeons(ctx, "u1")
	if err != nil {
		t.Fatalf("ListDungeons failed: %v", err)
	}
	if len(dungeons) != 1 || dungeons[0].TradeableGoldIncome != 600 {
		t.Fatalf("unexpected dungeons: %+v", dungeons)
	}

	if err := store.DeleteDungeon(ctx, "dgn_1"); err != nil {
		t.Fatalf("DeleteDungeon failed: %v", err)
	}
	gone, _ := store.GetDungeon(ctx, "dgn_1")
	if gone != nil {
		t.Fatalf("expected nil after delete, got %+v", gone)
	}
}

func TestSQLiteStoreRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	base := time.Now().Add(-time.Hour)
	records := []domain.RunRecord{
		{
			RecordID: "rec_1", UserID: "u1", CharacterID: "chr_1", CharacterName: "Bard",
			GameAccountID: "acc_1", GameAccountName: "main", DungeonID: "dgn_1", DungeonName: "Valtan",
			IsCompleted: true, HasReward: true,
			Rewards:   domain.Rewards{Total: 1500, Bound: 1000, Tradeable: 500},
			CreatedAt: base,
		},
		{
			RecordID: "rec_2", UserID: "u1", CharacterID: "chr_1", CharacterName: "Bard",
			GameAccountID: "acc_1", GameAccountName: "main", DungeonID: "dgn_2", DungeonName: "Vykas",
			Progress:  "gate 2",
			CreatedAt: base.Add(time.Minute),
		},
		{
			RecordID: "rec_3", UserID: "u2", CharacterID: "chr_9", CharacterName: "Other",
			GameAccountID: "acc_9", GameAccountName: "other", DungeonID: "dgn_1", DungeonName: "Valtan",
			IsCompleted: true, CreatedAt: base.Add(2 * time.Minute),
		},
	}
	for i := range records {
		if err := store.CreateRecord(ctx, &records[i]); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	got, err := store.GetRecord(ctx, "rec_2")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if got == nil || got.Progress != "gate 2" || got.IsCompleted {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Newest first, scoped to the owner.
	byChar, err := store.ListRecordsByCharacter(ctx, "u1", "chr_1")
	if err != nil {
		t.Fatalf("ListRecordsByCharacter failed: %v", err)
	}
	if len(byChar) != 2 || byChar[0].RecordID != "rec_2" {
		t.Fatalf("unexpected records: %+v", byChar)
	}

	byUser, err := store.ListRecordsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListRecordsByUser failed: %v", err)
	}
	if len(byUser) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(byUser))
	}

	got.IsCompleted = true
	got.Progress = ""
	got.Rewards = domain.Rewards{Total: 900, Bound: 600, Tradeable: 300}
	if err := store.UpdateRecord(ctx, got); err != nil {
		t.Fatalf("UpdateRecord failed: %v", err)
	}
	updated, _ := store.GetRecord(ctx, "rec_2")
	if !updated.IsCompleted || updated.Progress != "" || updated.Rewards.Total != 900 {
		t.Fatalf("unexpected updated record: %+v", updated)
	}

	ids, err := store.CompletedDungeonIDs(ctx, "u1", "chr_1")
	if err != nil {
		t.Fatalf("CompletedDungeonIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 distinct dungeons, got %v", ids)
	}

	deleted, err := store.DeleteRecordsByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("DeleteRecordsByUser failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}

	// The other user's records are untouched.
	other, _ := store.ListRecordsByUser(ctx, "u2")
	if len(other) != 1 {
		t.Fatalf("expected u2's record to survive, got %+v", other)
	}
}

func TestSQLiteStoreRecordFilter(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, acc := range []string{"acc_1", "acc_1", "acc_2"} {
		rec := &domain.RunRecord{
			RecordID: fmt.Sprintf("rec_%d", i), UserID: "u1", CharacterID: "chr_1", CharacterName: "Bard",
			GameAccountID: acc, GameAccountName: "main", DungeonID: "dgn_1", DungeonName: "Valtan",
			IsCompleted: true, HasReward: true,
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := store.CreateRecord(ctx, rec); err != nil {
			t.Fatalf("CreateRecord failed: %v", err)
		}
	}

	byAccount, err := store.ListRecords(ctx, "u1", RecordFilter{GameAccountID: "acc_1"})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(byAccount) != 2 {
		t.Fatalf("expected 2 records for acc_1, got %d", len(byAccount))
	}

	start := base.Add(12 * time.Hour)
	end := base.Add(36 * time.Hour)
	windowed, err := store.ListRecords(ctx, "u1", RecordFilter{Start: &start, End: &end})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(windowed) != 1 || windowed[0].RecordID != "rec_1" {
		t.Fatalf("unexpected windowed records: %+v", windowed)
	}
}

func TestSQLiteStoreHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	batch := []domain.HistoryRecord{
		{
			HistoryID: "his_1", UserID: "u1", CharacterID: "chr_1", CharacterName: "Bard",
			GameAccountID: "acc_1", GameAccountNumber: "1001", DungeonID: "dgn_1", DungeonName: "Valtan",
			IsCompleted: true, HasReward: true,
			Rewards:           domain.Rewards{Total: 1500, Bound: 1000, Tradeable: 500},
			OriginalCreatedAt: base, ArchivedAt: base.Add(7 * 24 * time.Hour),
		},
		{
			HistoryID: "his_2", UserID: "u1", CharacterID: "chr_1", CharacterName: "Bard",
			GameAccountID: "acc_1", GameAccountNumber: "1001", DungeonID: "dgn_2", DungeonName: "Vykas",
			OriginalCreatedAt: base.Add(time.Hour), ArchivedAt: base.Add(7 * 24 * time.Hour),
		},
	}

	inserted, err := store.InsertHistoryBatch(ctx, batch)
	if err != nil {
		t.Fatalf("InsertHistoryBatch failed: %v", err)
	}
	if len(inserted) != 2 {
		t.Fatalf("expected 2 inserted, got %v", inserted)
	}

	count, err := store.CountHistoryByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("CountHistoryByUser failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 history rows, got %d", count)
	}

	history, err := store.ListHistory(ctx, "u1", RecordFilter{})
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 2 || history[0].HistoryID != "his_1" {
		t.Fatalf("unexpected history: %+v", history)
	}
	if history[0].Rewards.Total != 1500 || history[0].GameAccountNumber != "1001" {
		t.Fatalf("unexpected history row: %+v", history[0])
	}

	deleted, err := store.DeleteHistoryByIDs(ctx, inserted)
	if err != nil {
		t.Fatalf("DeleteHistoryByIDs failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", deleted)
	}
	count, _ = store.CountHistoryByUser(ctx, "u1")
	if count != 0 {
		t.Fatalf("expected 0 history rows after delete, got %d", count)
	}
}

func TestSQLiteStoreHistoryPartialInsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	defer store.Close()

	now := time.Now()
	// Duplicate primary key in the middle of the batch.
	batch := []domain.HistoryRecord{
		{HistoryID: "his_1", UserID: "u1", CharacterID: "c", CharacterName: "n", GameAccountID: "a", GameAccountNumber: "1", DungeonID: "d", DungeonName: "dn", OriginalCreatedAt: now, ArchivedAt: now},
		{HistoryID: "his_1", UserID: "u1", CharacterID: "c", CharacterName: "n", GameAccountID: "a", GameAccountNumber: "1", DungeonID: "d", DungeonName: "dn", OriginalCreatedAt: now, ArchivedAt: now},
		{HistoryID: "his_3", UserID: "u1", CharacterID: "c", CharacterName: "n", GameAccountID: "a", GameAccountNumber: "1", DungeonID: "d", DungeonName: "dn", OriginalCreatedAt: now, ArchivedAt: now},
	}

	inserted, err := store.InsertHistoryBatch(ctx, batch)
	if err == nil {
		t.Fatal("expected an error from the duplicate id")
	}
	if len(inserted) != 1 || inserted[0] != "his_1" {
		t.Fatalf("expected the ids written before the failure, got %v", inserted)
	}

	// DeleteHistoryByIDs with nothing to do is a no-op.
	deleted, err := store.DeleteHistoryByIDs(ctx, nil)
	if err != nil || deleted != 0 {
		t.Fatalf("expected no-op delete, got deleted=%d err=%v", deleted, err)
	}
}
