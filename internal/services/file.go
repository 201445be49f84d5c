package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vessoni/MeetApp/internal/domain"
)

type fileService struct {
	fileRepo       domain.FileRepository
	dir            string
	clock          domain.Clock
	contextTimeout time.Duration
}

// NewFileService creates a FileService that writes uploads under dir with a
// generated stored name and records their metadata.
func NewFileService(fileRepo domain.FileRepository, dir string, clock domain.Clock, timeout time.Duration) (domain.FileService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &fileService{
		fileRepo:       fileRepo,
		dir:            dir,
		clock:          clock,
		contextTimeout: timeout,
	}, nil
}

func (s *fileService) Store(ctx context.Context, name string, src io.Reader) (*domain.File, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	stored := uuid.New().String() + filepath.Ext(name)
	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("close file: %w", err)
	}

	file := &domain.File{
		Name:      filepath.Base(name),
		Path:      stored,
		CreatedAt: s.clock.Now(),
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		os.Remove(dst.Name())
		return nil, fmt.Errorf("create file record: %w", err)
	}
	return file, nil
}
