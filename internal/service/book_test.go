package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/bookquest/bookquest/internal/model"
	"github.com/bookquest/bookquest/internal/repository"
)

// fakeBookStore records calls and returns canned results.
type fakeBookStore struct {
	created   []*model.Book
	lastQuery repository.BookQuery
	listOut   []*model.Book
	listErr   error
	mutateErr error
	mutateOut *model.Book
}

func (f *fakeBookStore) CreateBook(_ context.Context, book *model.Book) error {
	f.created = append(f.created, book)
	return nil
}

func (f *fakeBookStore) ListBooks(_ context.Context, q repository.BookQuery) ([]*model.Book, error) {
	f.lastQuery = q
	return f.listOut, f.listErr
}

func (f *fakeBookStore) UpdateBook(_ context.Context, _, _ string, _ repository.BookChanges) (*model.Book, error) {
	return f.mutateOut, f.mutateErr
}

func (f *fakeBookStore) DeleteBook(_ context.Context, _, _ string) (*model.Book, error) {
	return f.mutateOut, f.mutateErr
}

func TestCreateBook(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{}
	svc := NewBookService(store, nil, 1<<20)

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	book, err := svc.CreateBook(context.Background(), CreateBookInput{
		Title:     "The Hobbit",
		Author:    "J.R.R. Tolkien",
		Language:  "en",
		Rating:    4.8,
		CreatedAt: &createdAt,
		Image:     image,
		OwnerID:   "user-1",
	})
	if err != nil {
		t.Fatalf("CreateBook() error = %v", err)
	}

	if book.ID == "" {
		t.Error("expected a generated ID")
	}
	if book.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want %q", book.OwnerID, "user-1")
	}
	if !book.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", book.CreatedAt, createdAt)
	}
	if book.Image != base64.StdEncoding.EncodeToString(image) {
		t.Errorf("Image = %q, want base64 of input", book.Image)
	}
	if len(store.created) != 1 {
		t.Fatalf("store received %d books, want 1", len(store.created))
	}
}

func TestCreateBook_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   CreateBookInput
		wantErr error
	}{
		{
			name:    "missing title",
			input:   CreateBookInput{Image: []byte{1}, OwnerID: "u"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "missing image",
			input:   CreateBookInput{Title: "x", OwnerID: "u"},
			wantErr: ErrImageRequired,
		},
		{
			name:    "image too large",
			input:   CreateBookInput{Title: "x", Image: make([]byte, 17), OwnerID: "u"},
			wantErr: ErrImageTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &fakeBookStore{}
			svc := NewBookService(store, nil, 16)

			_, err := svc.CreateBook(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateBook() error = %v, want %v", err, tt.wantErr)
			}
			if len(store.created) != 0 {
				t.Error("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestListBooks_QueryMapping(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{}
	svc := NewBookService(store, nil, 0)

	_, err := svc.ListBooks(context.Background(), ListBooksInput{
		CallerID:   "user-1",
		Language:   "en",
		Search:     "tolkien",
		OwnerID:    "user-1",
		Sort:       "asc",
		RatingSort: "",
		NewOnly:    true,
		OldOnly:    true,
		Page:       3,
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}

	q := store.lastQuery
	if q.Language != "en" || q.Search != "tolkien" {
		t.Errorf("filter fields = (%q, %q), want (en, tolkien)", q.Language, q.Search)
	}
	if q.OwnerID != "user-1" {
		t.Errorf("OwnerID = %q, want user-1", q.OwnerID)
	}
	if q.Window != repository.WindowNew {
		t.Errorf("Window = %v, want WindowNew when both flags are set", q.Window)
	}
	if q.CreatedSort != repository.SortAsc {
		t.Errorf("CreatedSort = %v, want SortAsc", q.CreatedSort)
	}
	if q.RatingSort != repository.SortDesc {
		t.Errorf("RatingSort = %v, want SortDesc default", q.RatingSort)
	}
	if q.Page != 3 || q.Limit != 10 {
		t.Errorf("pagination = (%d, %d), want (3, 10)", q.Page, q.Limit)
	}
}

func TestListBooks_ForeignOwnerIgnored(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{}
	svc := NewBookService(store, nil, 0)

	_, err := svc.ListBooks(context.Background(), ListBooksInput{
		CallerID: "user-1",
		OwnerID:  "user-2",
	})
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if store.lastQuery.OwnerID != "" {
		t.Errorf("OwnerID = %q, want empty for a foreign owner filter", store.lastQuery.OwnerID)
	}
}

func TestListBooks_EmptyResult(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{listOut: nil}
	svc := NewBookService(store, nil, 0)

	books, err := svc.ListBooks(context.Background(), ListBooksInput{CallerID: "u"})
	if err != nil {
		t.Fatalf("ListBooks() error = %v", err)
	}
	if books == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(books) != 0 {
		t.Errorf("len = %d, want 0", len(books))
	}
}

func TestListBooks_StoreError(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{listErr: errors.New("connection reset")}
	svc := NewBookService(store, nil, 0)

	if _, err := svc.ListBooks(context.Background(), ListBooksInput{CallerID: "u"}); err == nil {
		t.Fatal("expected an error")
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{mutateErr: repository.ErrBookNotFound}
	svc := NewBookService(store, nil, 0)

	title := "new title"
	_, err := svc.UpdateBook(context.Background(), UpdateBookInput{
		ID:      "missing",
		OwnerID: "user-1",
		Title:   &title,
	})
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("UpdateBook() error = %v, want ErrBookNotFound", err)
	}
}

func TestDeleteBook_NotFound(t *testing.T) {
	t.Parallel()

	store := &fakeBookStore{mutateErr: repository.ErrBookNotFound}
	svc := NewBookService(store, nil, 0)

	if _, err := svc.DeleteBook(context.Background(), "missing", "user-1"); !errors.Is(err, ErrBookNotFound) {
		t.Errorf("DeleteBook() error = %v, want ErrBookNotFound", err)
	}
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()

	want := &model.Book{ID: "b1", Title: "gone", OwnerID: "user-1"}
	store := &fakeBookStore{mutateOut: want}
	svc := NewBookService(store, nil, 0)

	got, err := svc.DeleteBook(context.Background(), "b1", "user-1")
	if err != nil {
		t.Fatalf("DeleteBook() error = %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
}
