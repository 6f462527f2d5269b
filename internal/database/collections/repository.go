// Package collections provides the owner-scoped data access layer for
// collections. Every method takes the acting username explicitly so that
// tenancy scoping is visible in the signature.
//
// Expected business outcomes (duplicate name, wrong owner, missing row) are
// reported as false/nil values; only store failures surface as errors.
package collections

import (
	"errors"

	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/database"
	"github.com/readshelf/readshelf/internal/entities"
	"github.com/readshelf/readshelf/internal/pagination"
)

// Repository handles all collection database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new collections repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountForUser returns the total number of collections owned by owner.
func (r *Repository) CountForUser(owner string) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Collection{}).Where("owner = ?", owner).Count(&count).Error
	return count, err
}

// ListForUser returns one page of the owner's collections ordered by id,
// plus the total count for pagination math. Page numbers are 1-based;
// validating the page against the total is the caller's job.
func (r *Repository) ListForUser(owner string, page, pageSize int) ([]entities.Collection, int64, error) {
	total, err := r.CountForUser(owner)
	if err != nil {
		return nil, 0, err
	}

	var items []entities.Collection
	err = r.db.Where("owner = ?", owner).
		Order("id ASC").
		Limit(pageSize).
		Offset(pagination.Offset(page, pageSize)).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID returns the collection scoped to (id, owner), or nil when it is
// absent or owned by someone else.
func (r *Repository) GetByID(id uint, owner string) (*entities.Collection, error) {
	var collection entities.Collection
	err := r.db.Where("id = ? AND owner = ?", id, owner).First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// Create inserts a new collection for owner. Returns false when the
// (owner, name) uniqueness invariant would be violated.
func (r *Repository) Create(owner, name string) (bool, error) {
	err := r.db.Create(&entities.Collection{Owner: owner, Name: name}).Error
	if database.IsUniqueViolation(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Rename updates the collection name scoped to (id, owner). Returns false
// when no row matched or the new name collides with another collection of
// the same owner.
func (r *Repository) Rename(id uint, owner, newName string) (bool, error) {
	result := r.db.Model(&entities.Collection{}).
		Where("id = ? AND owner = ?", id, owner).
		Update("name", newName)
	if database.IsUniqueViolation(result.Error) {
		return false, nil
	}
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete removes the collection scoped to (id, owner) and detaches its
// member books. Both statements run in one transaction so a crash cannot
// leave books pointing at a deleted collection.
func (r *Repository) Delete(id uint, owner string) (bool, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entities.Book{}).
			Where("collection_id = ? AND owner = ?", id, owner).
			Update("collection_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ? AND owner = ?", id, owner).Delete(&entities.Collection{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}
