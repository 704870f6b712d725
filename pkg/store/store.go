// Package store persists converted layouts for the HTTP service.
//
// This package defines the storage interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for deployments that keep layouts
//     across restarts
//
// Records carry both json and bson tags: the same type serves API
// responses and MongoDB documents.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a stored conversion: the layout document plus the metadata
// needed to list and re-fetch it.
type Record struct {
	ID         string          `json:"id" bson:"_id"`
	Name       string          `json:"name" bson:"name"`
	BaseName   string          `json:"base_name" bson:"base_name"`
	Document   json.RawMessage `json:"document" bson:"document"`
	LayoutHash string          `json:"layout_hash" bson:"layout_hash"`
	Zones      int             `json:"zones" bson:"zones"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a record by ID.
	// Returns nil, nil if the record doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Set stores a record, replacing any previous one with the same ID.
	Set(ctx context.Context, rec *Record) error

	// List returns up to limit records, newest first. limit <= 0 means
	// no limit.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewRecord builds a Record with a fresh ID and timestamp.
func NewRecord(name, baseName string, document []byte, layoutHash string, zones int) *Record {
	return &Record{
		ID:         uuid.NewString(),
		Name:       name,
		BaseName:   baseName,
		Document:   json.RawMessage(document),
		LayoutHash: layoutHash,
		Zones:      zones,
		CreatedAt:  time.Now().UTC(),
	}
}
