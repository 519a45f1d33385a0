// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package visits_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebelkina/gatehouse/internal/visits"
)

// # In-Memory Fake

// fakeVisitStore keeps visit rows in memory and honors the store contract:
// RecordVisit returns the inclusive count, AggregateByPage orders by count
// descending then login ascending.
type fakeVisitStore struct {
	logins map[string]string // userID -> login
	rows   []visits.Visit
}

func newFakeVisitStore() *fakeVisitStore {
	return &fakeVisitStore{logins: make(map[string]string)}
}

func (store *fakeVisitStore) addUser(userID, login string) {
	store.logins[userID] = login
}

func (store *fakeVisitStore) RecordVisit(_ context.Context, userID, pageName string) (int64, error) {
	store.rows = append(store.rows, visits.Visit{UserID: userID, PageName: pageName})

	var count int64
	for _, row := range store.rows {
		if row.UserID == userID && row.PageName == pageName {
			count++
		}
	}
	return count, nil
}

func (store *fakeVisitStore) AggregateByPage(_ context.Context, pageName string) ([]visits.PageStat, error) {
	counts := make(map[string]int64)
	for _, row := range store.rows {
		if row.PageName == pageName {
			counts[store.logins[row.UserID]]++
		}
	}

	stats := make([]visits.PageStat, 0, len(counts))
	for login, count := range counts {
		stats = append(stats, visits.PageStat{Login: login, PageName: pageName, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Login < stats[j].Login
	})
	return stats, nil
}

// # Recording

/*
TestRecordVisit_SequentialCounts verifies the inclusive count: the same user
visiting the same page twice sees 1, then 2.
*/
func TestRecordVisit_SequentialCounts(t *testing.T) {
	ctx := context.Background()
	store := newFakeVisitStore()
	service := visits.NewService(store)

	first, err := service.RecordVisit(ctx, "user-1", "home")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := service.RecordVisit(ctx, "user-1", "home")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)
}

/*
TestRecordVisit_CountsScopedPerUserAndPage verifies counts do not bleed
across users or pages.
*/
func TestRecordVisit_CountsScopedPerUserAndPage(t *testing.T) {
	ctx := context.Background()
	store := newFakeVisitStore()
	service := visits.NewService(store)

	_, err := service.RecordVisit(ctx, "user-1", "home")
	require.NoError(t, err)

	// Another user, same page: fresh count.
	otherUser, err := service.RecordVisit(ctx, "user-2", "home")
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherUser)

	// Same user, another page: fresh count.
	otherPage, err := service.RecordVisit(ctx, "user-1", "about")
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherPage)
}

// # Aggregation

/*
TestStats_OrderingWithTieBreak verifies count descending with login
ascending on ties: alice×3, bob×3, carol×1 comes out [alice, bob, carol].
*/
func TestStats_OrderingWithTieBreak(t *testing.T) {
	ctx := context.Background()
	store := newFakeVisitStore()
	store.addUser("user-a", "alice")
	store.addUser("user-b", "bob")
	store.addUser("user-c", "carol")
	service := visits.NewService(store)

	// Interleave so insertion order cannot accidentally match the expectation.
	for _, userID := range []string{"user-b", "user-a", "user-c", "user-a", "user-b", "user-b", "user-a"} {
		_, err := service.RecordVisit(ctx, userID, "home")
		require.NoError(t, err)
	}

	stats, err := service.Stats(ctx, "home")
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "alice", stats[0].Login)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, "bob", stats[1].Login)
	assert.Equal(t, int64(3), stats[1].Count)
	assert.Equal(t, "carol", stats[2].Login)
	assert.Equal(t, int64(1), stats[2].Count)
}

/*
TestStats_EmptyPage verifies an unvisited page yields an empty slice, not nil.
*/
func TestStats_EmptyPage(t *testing.T) {
	service := visits.NewService(newFakeVisitStore())

	stats, err := service.Stats(context.Background(), "nobody-was-here")
	require.NoError(t, err)
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}
