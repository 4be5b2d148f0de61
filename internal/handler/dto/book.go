// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/bookquest/bookquest/internal/model"
)

// BookResponse represents a book in API responses.
type BookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Language  string    `json:"language"`
	Rating    float64   `json:"rating"`
	OwnerID   string    `json:"owner_id"`
	Image     string    `json:"image,omitempty"`
	New       bool      `json:"new"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookListResponse wraps the list endpoint payload.
type BookListResponse struct {
	Books []BookResponse `json:"books"`
}

// MessageBookResponse wraps a single book with a human-readable message,
// used by create, update and delete.
type MessageBookResponse struct {
	Message string        `json:"message"`
	Book    *BookResponse `json:"book"`
}

// UpdateBookRequest represents the request body for updating a book.
// Omitted fields are left untouched.
type UpdateBookRequest struct {
	Title    *string  `json:"title,omitempty"`
	Author   *string  `json:"author,omitempty"`
	Language *string  `json:"language,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// RegisterRequest represents the request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents an account in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToBookResponse converts a Book model to BookResponse DTO.
func ToBookResponse(book *model.Book, now time.Time) *BookResponse {
	return &BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Language:  book.Language,
		Rating:    book.Rating,
		OwnerID:   book.OwnerID,
		Image:     book.Image,
		New:       book.IsNew(now),
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// ToBookListResponse converts a slice of Book models to BookListResponse.
func ToBookListResponse(books []*model.Book, now time.Time) *BookListResponse {
	responses := make([]BookResponse, len(books))
	for i, book := range books {
		responses[i] = *ToBookResponse(book, now)
	}
	return &BookListResponse{Books: responses}
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
