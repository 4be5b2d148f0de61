package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookquest/bookquest/internal/model"
)

// ErrBookNotFound is returned when no book matches an owned-record lookup.
var ErrBookNotFound = errors.New("book not found")

// BookChanges describes a partial update to a book. Nil fields are left
// untouched; ownership and creation time are immutable.
type BookChanges struct {
	Title    *string
	Author   *string
	Language *string
	Rating   *float64
}

func (c BookChanges) setDocument(now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if c.Title != nil {
		set["title"] = *c.Title
	}
	if c.Author != nil {
		set["author"] = *c.Author
	}
	if c.Language != nil {
		set["language"] = *c.Language
	}
	if c.Rating != nil {
		set["rating"] = *c.Rating
	}
	return set
}

// CreateBook inserts a new book record.
func (r *Repository) CreateBook(ctx context.Context, book *model.Book) error {
	if _, err := r.books.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// ListBooks returns the books matching the query specification, sorted
// and paginated. An empty result is success, not an error.
func (r *Repository) ListBooks(ctx context.Context, q BookQuery) ([]*model.Book, error) {
	cur, err := r.books.Find(ctx, q.Filter(time.Now().UTC()), q.FindOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer cur.Close(ctx)

	books := make([]*model.Book, 0)
	for cur.Next(ctx) {
		var book model.Book
		if err := cur.Decode(&book); err != nil {
			return nil, fmt.Errorf("failed to decode book: %w", err)
		}
		books = append(books, &book)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}

// UpdateBook applies changes to the book matching (id, ownerID) and
// returns the updated record. Returns ErrBookNotFound when no owned
// record matches.
func (r *Repository) UpdateBook(ctx context.Context, id, ownerID string, changes BookChanges) (*model.Book, error) {
	filter := bson.M{"_id": id, "ownerId": ownerID}
	update := bson.M{"$set": changes.setDocument(time.Now().UTC())}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var book model.Book
	err := r.books.FindOneAndUpdate(ctx, filter, update, opts).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return &book, nil
}

// DeleteBook removes the book matching (id, ownerID) and returns the
// deleted record. Returns ErrBookNotFound when no owned record matches.
func (r *Repository) DeleteBook(ctx context.Context, id, ownerID string) (*model.Book, error) {
	filter := bson.M{"_id": id, "ownerId": ownerID}

	var book model.Book
	err := r.books.FindOneAndDelete(ctx, filter).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}

	return &book, nil
}
