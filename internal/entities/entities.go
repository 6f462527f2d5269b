package entities

import (
	"time"
)

// User is an account that can sign in. Users are provisioned via the
// create-user CLI command; the web layer only reads them for authentication.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `gorm:"size:100" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Collection is a named group of books. A user cannot have two collections
// with the same name, enforced by the composite unique index.
type Collection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Owner     string    `gorm:"uniqueIndex:idx_collections_owner_name;size:100;not null" json:"owner"`
	Name      string    `gorm:"uniqueIndex:idx_collections_owner_name;size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}

// Book belongs to exactly one user and optionally to one of that user's
// collections. CollectionID is nil for standalone books.
type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Owner        string    `gorm:"index;size:100;not null" json:"owner"`
	Title        string    `gorm:"index;size:100;not null" json:"title"`
	Author       string    `gorm:"size:50;not null" json:"author"`
	CollectionID *uint     `gorm:"index" json:"collection_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
