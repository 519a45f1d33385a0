// Copyright (c) 2026 Gatehouse. All rights reserved.
// Author: e.belkina.dev@gmail.com

// Package uuid wraps google/uuid to always prefer time-sortable UUIDv7
// identifiers, falling back to v4 only if the random source fails.
package uuid

import "github.com/google/uuid"

// New returns a UUIDv7 string.
//
// V7 ids are time-ordered, which keeps PostgreSQL primary-key indexes from
// fragmenting and makes session tokens trivially sortable in debugging.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
