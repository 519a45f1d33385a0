// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

package visits

import "context"

// VisitStore defines persistence for visit records and their aggregation.
type VisitStore interface {
	// RecordVisit appends one visit row and returns the caller's total
	// visit count for the page, including the row just inserted. The
	// insert and the count observe one transaction.
	RecordVisit(ctx context.Context, userID, pageName string) (int64, error)

	// AggregateByPage returns per-user visit counts for a page, ordered by
	// count descending, then login ascending.
	AggregateByPage(ctx context.Context, pageName string) ([]PageStat, error)
}
