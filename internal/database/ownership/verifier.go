// Package ownership confirms that a path-addressed resource belongs to the
// acting user before the handlers touch it. A missing row and a row owned by
// someone else are deliberately indistinguishable: both yield false, so a
// caller probing identifiers learns nothing about what exists.
package ownership

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/readshelf/readshelf/internal/entities"
)

// Verifier checks resource ownership against the store.
type Verifier struct {
	db *gorm.DB
}

// NewVerifier creates a new ownership verifier.
func NewVerifier(db *gorm.DB) *Verifier {
	return &Verifier{db: db}
}

// VerifyCollectionOwner reports whether the collection exists and belongs to
// actingUser.
func (v *Verifier) VerifyCollectionOwner(collectionID uint, actingUser string) (bool, error) {
	var collection entities.Collection
	err := v.db.Select("owner").First(&collection, collectionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ownership: collection %d not found", collectionID)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return collection.Owner == actingUser, nil
}

// VerifyBookOwner reports whether the book exists and belongs to actingUser.
func (v *Verifier) VerifyBookOwner(bookID uint, actingUser string) (bool, error) {
	var book entities.Book
	err := v.db.Select("owner").First(&book, bookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ownership: book %d not found", bookID)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return book.Owner == actingUser, nil
}
