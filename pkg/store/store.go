// Package store persists solve records so that the history of a served
// deployment (or a local CLI session) can be inspected later. Two
// backends exist: FileStore keeps one JSON document per record under a
// directory, MongoStore keeps them in a collection.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mmorckos/sudoku/pkg/grid"
)

// ErrNotFound is returned by Load when no record has the given ID.
var ErrNotFound = errors.New("record not found")

// Record is one completed solve request.
type Record struct {
	ID         string    `json:"id" bson:"_id"`
	Size       int       `json:"size" bson:"size"`
	Technique  string    `json:"technique" bson:"technique"`
	Input      grid.Grid `json:"input" bson:"input"`
	Solution   grid.Grid `json:"solution,omitempty" bson:"solution,omitempty"`
	Solved     bool      `json:"solved" bson:"solved"`
	DurationMs int64     `json:"durationMs" bson:"duration_ms"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// Meta is a lightweight listing entry.
type Meta struct {
	ID        string    `json:"id"`
	Size      int       `json:"size"`
	Solved    bool      `json:"solved"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists and retrieves solve records.
type Store interface {
	Save(ctx context.Context, r *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Meta, error)
	Close(ctx context.Context) error
}
