package domain

import (
	"context"
	"io"
	"time"
)

// File is metadata for an uploaded asset. Meetups reference files by ID
// only; this core never interprets the file contents.
// swagger:model File
type File struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

// FileRepository defines storage operations for uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, f *File) error
	GetByID(ctx context.Context, id string) (*File, error)
}

// FileService stores uploaded file contents and records their metadata.
type FileService interface {
	Store(ctx context.Context, name string, src io.Reader) (*File, error)
}
