// Package repository contains the data-access layer over the gorm
// models. All contact operations are scoped by the owning user so no
// cross-tenant access path exists
package repository

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by a
	// different user, so callers can't probe other tenants' data
	ErrNotFound = errors.New("record not found")

	ErrAlreadyExists = errors.New("already exists")
)
