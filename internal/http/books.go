package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/database/ownership"
	"github.com/readshelf/readshelf/internal/entities"
	"github.com/readshelf/readshelf/internal/pagination"
)

// BooksController handles the book endpoints.
type BooksController struct {
	repo     *books.Repository
	verifier *ownership.Verifier
	audit    AuditLogger
}

func NewBooksController(repo *books.Repository, verifier *ownership.Verifier, audit AuditLogger) *BooksController {
	return &BooksController{
		repo:     repo,
		verifier: verifier,
		audit:    audit,
	}
}

func (bc *BooksController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/books", bc.List)
	group.POST("/books", bc.Create)
	group.GET("/books/:id", bc.Get)
	group.DELETE("/books/:id", bc.Delete)
	group.PATCH("/books/:id/title", bc.EditTitle)
	group.PATCH("/books/:id/author", bc.EditAuthor)
	group.PUT("/books/:id/collection", bc.Attach)
	group.DELETE("/books/:id/collection", bc.Detach)
}

// List returns one page of the user's books, title-ascending, each joined
// with its collection's display name.
func (bc *BooksController) List(c *gin.Context) {
	username := GetUsername(c)

	page, ok := parsePageParam(c)
	if !ok {
		return
	}

	total, err := bc.repo.CountForUser(username)
	if err != nil {
		respondInternalError(c, err, "count books")
		return
	}

	if !checkPage(c, page, total, pagination.DefaultPageSize) {
		return
	}

	rows, err := bc.repo.ListForUser(username, page, pagination.DefaultPageSize)
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(rows, total, page, pagination.DefaultPageSize))
}

type createBookRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=100"`
	Author string `json:"author" binding:"required,min=1,max=50"`
}

// Create adds a standalone book for the user.
func (bc *BooksController) Create(c *gin.Context) {
	username := GetUsername(c)

	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title must be 1-100 characters and author 1-50 characters")
		return
	}

	ok, err := bc.repo.Create(username, req.Title, req.Author)
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	if !ok {
		respondConflict(c, "book could not be added")
		return
	}

	bc.logEvent(username, "book_create", nil, c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "book added"})
}

// Get returns a single book.
func (bc *BooksController) Get(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	book, err := bc.repo.GetByID(id, username)
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	c.JSON(http.StatusOK, book)
}

// Delete removes a book outright.
func (bc *BooksController) Delete(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	ok, err := bc.repo.Delete(id, username)
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	if !ok {
		respondNotFound(c, "book")
		return
	}

	bc.logEvent(username, "book_delete", &id, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "book deleted"})
}

type editTitleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
}

// EditTitle updates a book's title.
func (bc *BooksController) EditTitle(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	var req editTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title must be between 1 and 100 characters")
		return
	}

	ok, err := bc.repo.EditTitle(id, username, req.Title)
	if err != nil {
		respondInternalError(c, err, "edit book title")
		return
	}
	if !ok {
		respondNotFound(c, "book")
		return
	}

	bc.logEvent(username, "book_edit_title", &id, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "title updated"})
}

type editAuthorRequest struct {
	Author string `json:"author" binding:"required,min=1,max=50"`
}

// EditAuthor updates a book's author.
func (bc *BooksController) EditAuthor(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	var req editAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "author must be between 1 and 50 characters")
		return
	}

	ok, err := bc.repo.EditAuthor(id, username, req.Author)
	if err != nil {
		respondInternalError(c, err, "edit book author")
		return
	}
	if !ok {
		respondNotFound(c, "book")
		return
	}

	bc.logEvent(username, "book_edit_author", &id, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "author updated"})
}

type attachRequest struct {
	CollectionID uint `json:"collection_id" binding:"required"`
}

// Attach places a book into one of the user's collections, replacing any
// previous membership. The collection ownership check is also enforced
// inside the repository statement itself; verifying here first just yields
// a friendlier not-found response.
func (bc *BooksController) Attach(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "collection_id is required")
		return
	}

	owned, err := bc.verifier.VerifyCollectionOwner(req.CollectionID, username)
	if err != nil {
		respondInternalError(c, err, "verify collection owner")
		return
	}
	if !owned {
		respondNotFound(c, "collection")
		return
	}

	ok, err = bc.repo.AttachToCollection(id, req.CollectionID, username)
	if err != nil {
		respondInternalError(c, err, "attach book to collection")
		return
	}
	if !ok {
		respondNotFound(c, "book")
		return
	}

	bc.logEvent(username, "book_attach", &id, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "book added to collection"})
}

// Detach clears a book's collection membership.
func (bc *BooksController) Detach(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if !bc.verifyOwner(c, id, username) {
		return
	}

	ok, err := bc.repo.DetachFromCollection(id, username)
	if err != nil {
		respondInternalError(c, err, "detach book from collection")
		return
	}
	if !ok {
		respondNotFound(c, "book")
		return
	}

	bc.logEvent(username, "book_detach", &id, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "book removed from collection"})
}

func (bc *BooksController) verifyOwner(c *gin.Context, id uint, username string) bool {
	owned, err := bc.verifier.VerifyBookOwner(id, username)
	if err != nil {
		respondInternalError(c, err, "verify book owner")
		return false
	}
	if !owned {
		respondNotFound(c, "book")
		return false
	}
	return true
}

func (bc *BooksController) logEvent(username, action string, entityID *uint, ip string) {
	if bc.audit == nil {
		return
	}
	_ = bc.audit.LogEvent(&entities.AuditEvent{
		Owner:      username,
		EventType:  entities.AuditEventBook,
		Action:     action,
		EntityType: "book",
		EntityID:   entityID,
		IPAddress:  ip,
		Status:     entities.AuditStatusSuccess,
	})
}
