// Package books provides the owner-scoped data access layer for books.
// Every method takes the acting username explicitly; see the collections
// package for the shared conventions around boolean business outcomes.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/database"
	"github.com/readshelf/readshelf/internal/entities"
	"github.com/readshelf/readshelf/internal/pagination"
)

// Row is a book joined with the display name of its collection, if any.
type Row struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	CollectionID   *uint   `json:"collection_id,omitempty"`
	CollectionName *string `json:"collection_name,omitempty"`
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountForUser returns the total number of books owned by owner.
func (r *Repository) CountForUser(owner string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("owner = ?", owner).Count(&count).Error
	return count, err
}

// ListForUser returns one page of the owner's books ordered by title, each
// joined with its collection's display name when attached.
func (r *Repository) ListForUser(owner string, page, pageSize int) ([]Row, error) {
	var rows []Row
	err := r.db.Model(&entities.Book{}).
		Select("books.id, books.title, books.author, books.collection_id, collections.name AS collection_name").
		Joins("LEFT JOIN collections ON collections.id = books.collection_id").
		Where("books.owner = ?", owner).
		Order("books.title ASC").
		Limit(pageSize).
		Offset(pagination.Offset(page, pageSize)).
		Scan(&rows).Error
	return rows, err
}

// GetByID returns the book scoped to (id, owner), or nil when it is absent
// or owned by someone else.
func (r *Repository) GetByID(id uint, owner string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Where("id = ? AND owner = ?", id, owner).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Create inserts a standalone book for owner. Returns false only on a
// genuine constraint violation.
func (r *Repository) Create(owner, title, author string) (bool, error) {
	err := r.db.Create(&entities.Book{Owner: owner, Title: title, Author: author}).Error
	if database.IsUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EditTitle updates the title scoped to (id, owner). True iff one row changed.
func (r *Repository) EditTitle(id uint, owner, newTitle string) (bool, error) {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND owner = ?", id, owner).
		Update("title", newTitle)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// EditAuthor updates the author scoped to (id, owner). True iff one row changed.
func (r *Repository) EditAuthor(id uint, owner, newAuthor string) (bool, error) {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND owner = ?", id, owner).
		Update("author", newAuthor)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete removes the book scoped to (id, owner). True iff one row removed.
func (r *Repository) Delete(id uint, owner string) (bool, error) {
	result := r.db.Where("id = ? AND owner = ?", id, owner).Delete(&entities.Book{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// AttachToCollection sets the book's collection reference. The statement
// itself requires both the book and the target collection to belong to
// owner, so a book can never reference a foreign collection regardless of
// what the caller checked beforehand. Reattachment replaces any previous
// membership.
func (r *Repository) AttachToCollection(bookID, collectionID uint, owner string) (bool, error) {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND owner = ?", bookID, owner).
		Where("EXISTS (SELECT 1 FROM collections WHERE collections.id = ? AND collections.owner = ?)", collectionID, owner).
		Update("collection_id", collectionID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// DetachFromCollection clears the book's collection reference, scoped to
// (bookID, owner).
func (r *Repository) DetachFromCollection(bookID uint, owner string) (bool, error) {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND owner = ?", bookID, owner).
		Update("collection_id", nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListInCollection returns one title-ordered page of a collection's books
// plus the total count. The query is collection-scoped, not owner-scoped:
// the caller verifies collection ownership earlier in the request pipeline.
func (r *Repository) ListInCollection(collectionID uint, page, pageSize int) ([]entities.Book, int64, error) {
	var total int64
	err := r.db.Model(&entities.Book{}).
		Where("collection_id = ?", collectionID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var items []entities.Book
	err = r.db.Where("collection_id = ?", collectionID).
		Order("title ASC").
		Limit(pageSize).
		Offset(pagination.Offset(page, pageSize)).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
