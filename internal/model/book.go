// Package model defines domain entities for the application.
package model

import "time"

// FreshnessWindow separates "new" books from "old" ones in list queries.
const FreshnessWindow = 10 * time.Minute

// Book represents a catalog entry. The image is stored inline as
// base64-encoded text; there is no external blob store.
type Book struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Author    string    `bson:"author" json:"author"`
	Language  string    `bson:"language" json:"language"`
	Rating    float64   `bson:"rating" json:"rating"`
	OwnerID   string    `bson:"ownerId" json:"owner_id"`
	Image     string    `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// IsNew reports whether the book was created within the freshness window
// relative to now.
func (b *Book) IsNew(now time.Time) bool {
	return !b.CreatedAt.Before(now.Add(-FreshnessWindow))
}
