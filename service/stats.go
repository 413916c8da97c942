package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/kaiyue77/arkledger/domain"
	"github.com/kaiyue77/arkledger/store"
)

// itemLevelRanges are the fixed buckets of the item-level distribution,
// highest first. Max 0 means unbounded.
var itemLevelRanges = []struct {
	Min, Max int
	Label    string
}{
	{1610, 0, "≥1610"},
	{1600, 1610, "1600-1610"},
	{1580, 1600, "1580-1600"},
	{1540, 1580, "1540-1580"},
}

// statRow is the slice of a record that statistics folds over, common to
// active and history records.
type statRow struct {
	dungeonID   string
	isCompleted bool
	hasReward   bool
}

// Statistics aggregates a user's activity: overview counts and income,
// item-level distribution, and per-dungeon usage. Income is computed from
// the dungeons' current rates, so redefining a dungeon's income reprices
// past activity in this report (the stored per-record rewards are not used
// here, matching the reporting contract).
func (s *Service) Statistics(ctx context.Context, userID string, q domain.StatsQuery) (*domain.Statistics, error) {
	accountCount, err := s.store.CountGameAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count game accounts: %w", err)
	}

	// Characters are narrowed by account only, never by date.
	characters, _, err := s.store.ListCharacters(ctx, userID, store.CharacterFilter{GameAccountID: q.GameAccountID})
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}

	rows, err := s.statRows(ctx, userID, q)
	if err != nil {
		return nil, err
	}

	dungeons, err := s.store.ListDungeons(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	dungeonByID := make(map[string]domain.Dungeon, len(dungeons))
	for _, d := range dungeons {
		dungeonByID[d.DungeonID] = d
	}

	stats := &domain.Statistics{
		Overview: domain.StatsOverview{
			AccountCount:   accountCount,
			CharacterCount: len(characters),
		},
	}

	usage := make(map[string]*domain.DungeonUsage)
	for _, row := range rows {
		if !row.isCompleted || !row.hasReward {
			continue
		}
		d, ok := dungeonByID[row.dungeonID]
		if !ok {
			// The dungeon definition was deleted after the record was
			// written; there are no current rates to report against.
			continue
		}

		stats.Overview.RecordCount++
		stats.Overview.BoundIncome += d.BoundGoldIncome
		stats.Overview.TradeableIncome += d.TradeableGoldIncome
		stats.Overview.TotalIncome += d.BoundGoldIncome + d.TradeableGoldIncome

		u, ok := usage[d.Name]
		if !ok {
			u = &domain.DungeonUsage{Name: d.Name}
			usage[d.Name] = u
		}
		u.Count++
		u.BoundIncome += d.BoundGoldIncome
		u.TradeableIncome += d.TradeableGoldIncome
	}

	for _, r := range itemLevelRanges {
		count := 0
		for _, c := range characters {
			if c.ItemLevel >= r.Min && (r.Max == 0 || c.ItemLevel < r.Max) {
				count++
			}
		}
		stats.ItemLevelDistribution = append(stats.ItemLevelDistribution, domain.ItemLevelBucket{
			Range: r.Label,
			Count: count,
		})
	}

	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		u := usage[name]
		stats.DungeonUsage = append(stats.DungeonUsage, *u)
		stats.DungeonIncome = append(stats.DungeonIncome, domain.DungeonIncome{
			Name:      name,
			Bound:     u.BoundIncome,
			Tradeable: u.TradeableIncome,
		})
	}

	return stats, nil
}

func (s *Service) statRows(ctx context.Context, userID string, q domain.StatsQuery) ([]statRow, error) {
	filter := store.RecordFilter{GameAccountID: q.GameAccountID, Start: q.Start, End: q.End}

	if q.RecordType == "history" {
		records, err := s.store.ListHistory(ctx, userID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list history: %w", err)
		}
		rows := make([]statRow, len(records))
		for i, r := range records {
			rows[i] = statRow{dungeonID: r.DungeonID, isCompleted: r.IsCompleted, hasReward: r.HasReward}
		}
		return rows, nil
	}

	records, err := s.store.ListRecords(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	rows := make([]statRow, len(records))
	for i, r := range records {
		rows[i] = statRow{dungeonID: r.DungeonID, isCompleted: r.IsCompleted, hasReward: r.HasReward}
	}
	return rows, nil
}
