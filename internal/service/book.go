// Package service provides business logic for the application.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bookquest/bookquest/internal/metrics"
	"github.com/bookquest/bookquest/internal/model"
	"github.com/bookquest/bookquest/internal/repository"
)

// Service errors.
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrImageRequired = errors.New("image file is required")
	ErrImageTooLarge = errors.New("image exceeds maximum size")
	ErrTitleRequired = errors.New("title is required")
)

// BookStore is the persistence surface the book service needs.
// *repository.Repository satisfies it.
type BookStore interface {
	CreateBook(ctx context.Context, book *model.Book) error
	ListBooks(ctx context.Context, q repository.BookQuery) ([]*model.Book, error)
	UpdateBook(ctx context.Context, id, ownerID string, changes repository.BookChanges) (*model.Book, error)
	DeleteBook(ctx context.Context, id, ownerID string) (*model.Book, error)
}

// BookService handles book business logic.
type BookService struct {
	store         BookStore
	metrics       metrics.Recorder
	maxImageBytes int64
}

// NewBookService creates a new BookService.
func NewBookService(store BookStore, recorder metrics.Recorder, maxImageBytes int64) *BookService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BookService{
		store:         store,
		metrics:       recorder,
		maxImageBytes: maxImageBytes,
	}
}

// MaxImageBytes returns the configured image size bound.
func (s *BookService) MaxImageBytes() int64 {
	return s.maxImageBytes
}

// CreateBookInput defines input for creating a book.
type CreateBookInput struct {
	Title     string
	Author    string
	Language  string
	Rating    float64
	CreatedAt *time.Time
	Image     []byte
	OwnerID   string
}

// CreateBook validates the input, encodes the image inline, and persists
// a new book owned by the caller.
func (s *BookService) CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if len(input.Image) == 0 {
		return nil, ErrImageRequired
	}
	if s.maxImageBytes > 0 && int64(len(input.Image)) > s.maxImageBytes {
		return nil, ErrImageTooLarge
	}

	now := time.Now().UTC()
	createdAt := now
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}

	book := &model.Book{
		ID:        ulid.Make().String(),
		Title:     input.Title,
		Author:    input.Author,
		Language:  input.Language,
		Rating:    input.Rating,
		OwnerID:   input.OwnerID,
		Image:     base64.StdEncoding.EncodeToString(input.Image),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.metrics.IncBookCreated()

	return book, nil
}

// ListBooksInput defines input for listing books. String fields carry the
// raw request parameters; CallerID is the verified identity.
type ListBooksInput struct {
	CallerID string

	Language   string
	Search     string
	OwnerID    string // honored only when it equals CallerID
	Sort       string // "asc" ascends by creation time, otherwise descends
	RatingSort string // same convention, applied as secondary key
	NewOnly    bool
	OldOnly    bool
	Page       int
	Limit      int
}

// ListBooks translates the request parameters into a query specification
// and runs it. An empty result is success.
func (s *BookService) ListBooks(ctx context.Context, input ListBooksInput) ([]*model.Book, error) {
	query := repository.BookQuery{
		Language:    input.Language,
		Search:      input.Search,
		OwnerID:     repository.OwnerFilter(input.OwnerID, input.CallerID),
		Window:      repository.ResolveWindow(input.NewOnly, input.OldOnly),
		CreatedSort: repository.ParseSortDir(input.Sort),
		RatingSort:  repository.ParseSortDir(input.RatingSort),
		Page:        input.Page,
		Limit:       input.Limit,
	}

	start := time.Now()
	books, err := s.store.ListBooks(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	s.metrics.ObserveListDuration(time.Since(start))

	if books == nil {
		books = []*model.Book{}
	}
	return books, nil
}

// UpdateBookInput defines input for updating a book. Nil fields are left
// untouched.
type UpdateBookInput struct {
	ID       string
	OwnerID  string
	Title    *string
	Author   *string
	Language *string
	Rating   *float64
}

// UpdateBook applies the changes to the caller's own record.
func (s *BookService) UpdateBook(ctx context.Context, input UpdateBookInput) (*model.Book, error) {
	changes := repository.BookChanges{
		Title:    input.Title,
		Author:   input.Author,
		Language: input.Language,
		Rating:   input.Rating,
	}

	book, err := s.store.UpdateBook(ctx, input.ID, input.OwnerID, changes)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.metrics.IncBookUpdated()

	return book, nil
}

// DeleteBook removes the caller's own record and returns it.
func (s *BookService) DeleteBook(ctx context.Context, id, ownerID string) (*model.Book, error) {
	book, err := s.store.DeleteBook(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	s.metrics.IncBookDeleted()

	return book, nil
}
