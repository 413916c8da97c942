package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/tests/helpers"
)

func TestStatisticsActiveRecords(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)

	f := seedLedger(t, st, "u1")
	createTestRecords(t, svc, "u1", f, 2)

	// Incomplete runs do not contribute income.
	if _, err := svc.CreateRecord(ctx, "u1", domain.CreateRecordRequest{
		CharacterID: f.characterID, GameAccountID: f.accountID, DungeonID: f.dungeonID,
		Progress: "gate 1",
	}); err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}

	stats, err := svc.Statistics(ctx, "u1", domain.StatsQuery{})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}

	if stats.Overview.AccountCount != 1 || stats.Overview.CharacterCount != 1 {
		t.Fatalf("unexpected overview: %+v", stats.Overview)
	}
	if stats.Overview.RecordCount != 2 {
		t.Fatalf("expected 2 counted records, got %d", stats.Overview.RecordCount)
	}
	if stats.Overview.TotalIncome != 3000 || stats.Overview.BoundIncome != 2000 || stats.Overview.TradeableIncome != 1000 {
		t.Fatalf("unexpected income: %+v", stats.Overview)
	}

	// The seeded character sits at 1620.
	if len(stats.ItemLevelDistribution) != 4 {
		t.Fatalf("expected 4 item level buckets, got %d", len(stats.ItemLevelDistribution))
	}
	if stats.ItemLevelDistribution[0].Range != "≥1610" || stats.ItemLevelDistribution[0].Count != 1 {
		t.Fatalf("unexpected top bucket: %+v", stats.ItemLevelDistribution[0])
	}

	if len(stats.DungeonUsage) != 1 || stats.DungeonUsage[0].Name != "Valtan" || stats.DungeonUsage[0].Count != 2 {
		t.Fatalf("unexpected usage: %+v", stats.DungeonUsage)
	}
	if len(stats.DungeonIncome) != 1 || stats.DungeonIncome[0].Bound != 2000 {
		t.Fatalf("unexpected income breakdown: %+v", stats.DungeonIncome)
	}
}

func TestStatisticsRepricesFromCurrentRates(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)

	f := seedLedger(t, st, "u1")
	createTestRecords(t, svc, "u1", f, 1)

	// Halve the dungeon's rates after the record was written.
	dungeon, _ := st.GetDungeon(ctx, f.dungeonID)
	dungeon.BoundGoldIncome = 500
	dungeon.TradeableGoldIncome = 250
	if err := st.UpdateDungeon(ctx, dungeon); err != nil {
		t.Fatalf("UpdateDungeon failed: %v", err)
	}

	stats, err := svc.Statistics(ctx, "u1", domain.StatsQuery{})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.Overview.TotalIncome != 750 {
		t.Fatalf("expected repriced income 750, got %d", stats.Overview.TotalIncome)
	}

	// The stored per-record reward is untouched by the reprice.
	recStats, err := svc.RecordStats(ctx, "u1", f.characterID)
	if err != nil {
		t.Fatalf("RecordStats failed: %v", err)
	}
	if recStats.TotalIncome != 1500 {
		t.Fatalf("stored rewards changed: %+v", recStats)
	}
}

func TestStatisticsSkipsDeletedDungeons(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)

	f := seedLedger(t, st, "u1")
	createTestRecords(t, svc, "u1", f, 1)

	if err := st.DeleteDungeon(ctx, f.dungeonID); err != nil {
		t.Fatalf("DeleteDungeon failed: %v", err)
	}

	stats, err := svc.Statistics(ctx, "u1", domain.StatsQuery{})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if stats.Overview.RecordCount != 0 || stats.Overview.TotalIncome != 0 {
		t.Fatalf("deleted dungeon should not be priced: %+v", stats.Overview)
	}
}

func TestStatisticsHistoryRecordType(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)
	user := domain.Principal{UserID: "u1", Role: "user"}

	f := seedLedger(t, st, "u1")
	createTestRecords(t, svc, "u1", f, 2)

	if _, err := svc.WeeklyReset(ctx, user); err != nil {
		t.Fatalf("WeeklyReset failed: %v", err)
	}

	active, err := svc.Statistics(ctx, "u1", domain.StatsQuery{})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if active.Overview.RecordCount != 0 {
		t.Fatalf("active stats should be empty after reset: %+v", active.Overview)
	}

	history, err := svc.Statistics(ctx, "u1", domain.StatsQuery{RecordType: "history"})
	if err != nil {
		t.Fatalf("Statistics failed: %v", err)
	}
	if history.Overview.RecordCount != 2 || history.Overview.TotalIncome != 3000 {
		t.Fatalf("unexpected history stats: %+v", history.Overview)
	}
}

func TestCreateDungeonValidation(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)

	tests := []struct {
		name string
		req  domain.CreateDungeonRequest
	}{
		{"empty", domain.CreateDungeonRequest{}},
		{"solo mode without income", domain.CreateDungeonRequest{
			Name: "Valtan", ItemLevel: 1445, RefreshInterval: 1, HasSoloMode: true,
		}},
		{"solo income without mode", domain.CreateDungeonRequest{
			Name: "Valtan", ItemLevel: 1445, RefreshInterval: 1, SoloIncome: 500,
		}},
		{"negative income", domain.CreateDungeonRequest{
			Name: "Valtan", ItemLevel: 1445, RefreshInterval: 1, BoundGoldIncome: -1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDungeon(ctx, "u1", tt.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateDungeonDerivesTotal(t *testing.T) {
	ctx := context.Background()
	st := helpers.NewTestSQLiteStore(t)
	svc := newTestService(t, st, nil)

	dungeon, err := svc.CreateDungeon(ctx, "u1", domain.CreateDungeonRequest{
		Name:                "Vykas",
		ItemLevel:           1430,
		BoundGoldIncome:     800,
		TradeableGoldIncome: 400,
		RefreshInterval:     1,
	})
	if err != nil {
		t.Fatalf("CreateDungeon failed: %v", err)
	}
	if dungeon.TotalIncome != 1200 {
		t.Fatalf("expected derived total 1200, got %d", dungeon.TotalIncome)
	}
}
