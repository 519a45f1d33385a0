// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package visits

import (
	"context"
	"fmt"
)

// Service implements the visit tracking use cases.
type Service struct {
	store VisitStore
}

// NewService constructs a new [Service] with its storage dependency.
func NewService(store VisitStore) *Service {
	return &Service{store: store}
}

/*
RecordVisit appends a visit for the user and returns the inclusive count.

Parameters:
  - ctx: context.Context
  - userID: string (taken from the authenticated session, never from input)
  - pageName: string

Returns:
  - int64: How many times this user has visited this page, counting this one
  - error: Storage failures
*/
func (service *Service) RecordVisit(ctx context.Context, userID, pageName string) (int64, error) {
	count, err := service.store.RecordVisit(ctx, userID, pageName)
	if err != nil {
		return 0, fmt.Errorf("visits_service_record_failed: %w", err)
	}

	return count, nil
}

/*
Stats returns the per-user visit counts for a page.

Ordering comes from the store: count descending, login ascending on ties.
The caller is expected to already be authenticated; this is read-only and
applies no guard of its own.

Parameters:
  - ctx: context.Context
  - pageName: string

Returns:
  - []PageStat: Aggregated rows, possibly empty
  - error: Storage failures
*/
func (service *Service) Stats(ctx context.Context, pageName string) ([]PageStat, error) {
	stats, err := service.store.AggregateByPage(ctx, pageName)
	if err != nil {
		return nil, fmt.Errorf("visits_service_stats_failed: %w", err)
	}

	return stats, nil
}
