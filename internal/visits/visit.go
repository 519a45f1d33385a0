// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

/*
Package visits implements per-user page visit tracking.

Every access to a guarded page appends one visit record, and the visitor is
immediately told how many times they have opened that page. Records are
append-only: nothing in this package ever mutates or deletes a visit row.

# Architecture

  - Service: Thin orchestration over the store; owns the default page name.
  - VisitStore: Abstracted interface over PostgreSQL.

# Counting Contract

RecordVisit inserts and counts inside one transaction, so the returned count
always includes the caller's own visit and two concurrent visitors never read
each other's half-written state.
*/
package visits

import "time"

// # Domain Entities

// Visit is one append-only record of a user opening a page.
type Visit struct {
	UserID    string    `json:"user_id"`
	PageName  string    `json:"page_name"`
	VisitedAt time.Time `json:"visited_at"`
}

// PageStat is one row of the per-page aggregation: how many times a given
// user visited the page.
type PageStat struct {
	Login    string `json:"login"`
	PageName string `json:"page"`
	Count    int64  `json:"count"`
}

// # Field Identifiers

// Field names used in query parameters and validation errors.
const (
	FieldPage = "page"
)
