package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/database/collections"
	"github.com/readshelf/readshelf/internal/database/ownership"
	"github.com/readshelf/readshelf/internal/entities"
	"github.com/readshelf/readshelf/internal/pagination"
)

// CollectionsController handles the collection endpoints. Every handler
// scopes its repository calls by the session's username, and every
// path-addressed route verifies ownership first; a failed check renders as
// not-found so callers cannot probe for foreign identifiers.
type CollectionsController struct {
	repo     *collections.Repository
	books    *books.Repository
	verifier *ownership.Verifier
	audit    AuditLogger
}

func NewCollectionsController(repo *collections.Repository, bookRepo *books.Repository, verifier *ownership.Verifier, audit AuditLogger) *CollectionsController {
	return &CollectionsController{
		repo:     repo,
		books:    bookRepo,
		verifier: verifier,
		audit:    audit,
	}
}

func (cc *CollectionsController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/collections", cc.List)
	group.POST("/collections", cc.Create)
	group.GET("/collections/:collectionId", cc.Get)
	group.PUT("/collections/:collectionId", cc.Rename)
	group.DELETE("/collections/:collectionId", cc.Delete)
	group.GET("/collections/:collectionId/books", cc.ListBooks)
}

// List returns one page of the user's collections.
func (cc *CollectionsController) List(c *gin.Context) {
	username := GetUsername(c)

	page, ok := parsePageParam(c)
	if !ok {
		return
	}

	items, total, err := cc.repo.ListForUser(username, page, pagination.DefaultPageSize)
	if err != nil {
		respondInternalError(c, err, "list collections")
		return
	}

	if !checkPage(c, page, total, pagination.DefaultPageSize) {
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, pagination.DefaultPageSize))
}

type collectionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Create adds a new collection for the user.
func (cc *CollectionsController) Create(c *gin.Context) {
	username := GetUsername(c)

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "collection name must be between 1 and 100 characters")
		return
	}

	ok, err := cc.repo.Create(username, req.Name)
	if err != nil {
		respondInternalError(c, err, "create collection")
		return
	}
	if !ok {
		respondConflict(c, "a collection with this name already exists")
		return
	}

	cc.logEvent(username, "collection_create", nil, entities.AuditStatusSuccess, c.ClientIP())
	c.JSON(http.StatusCreated, gin.H{"message": "collection added"})
}

// Get returns a single collection.
func (cc *CollectionsController) Get(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "collectionId")
	if !ok {
		return
	}
	if !cc.verifyOwner(c, id, username) {
		return
	}

	collection, err := cc.repo.GetByID(id, username)
	if err != nil {
		respondInternalError(c, err, "get collection")
		return
	}
	if collection == nil {
		respondNotFound(c, "collection")
		return
	}

	c.JSON(http.StatusOK, collection)
}

// Rename changes a collection's name.
func (cc *CollectionsController) Rename(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "collectionId")
	if !ok {
		return
	}
	if !cc.verifyOwner(c, id, username) {
		return
	}

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "collection name must be between 1 and 100 characters")
		return
	}

	ok, err := cc.repo.Rename(id, username, req.Name)
	if err != nil {
		respondInternalError(c, err, "rename collection")
		return
	}
	if !ok {
		respondConflict(c, "a collection with this name already exists")
		return
	}

	cc.logEvent(username, "collection_rename", &id, entities.AuditStatusSuccess, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "collection name changed"})
}

// Delete removes a collection, detaching its member books.
func (cc *CollectionsController) Delete(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "collectionId")
	if !ok {
		return
	}
	if !cc.verifyOwner(c, id, username) {
		return
	}

	ok, err := cc.repo.Delete(id, username)
	if err != nil {
		respondInternalError(c, err, "delete collection")
		return
	}
	if !ok {
		respondNotFound(c, "collection")
		return
	}

	cc.logEvent(username, "collection_delete", &id, entities.AuditStatusSuccess, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "collection deleted"})
}

// ListBooks returns one page of the books inside a collection. The listing
// itself is collection-scoped; ownership was established by the verifier just
// above, which is why the repository call carries no username.
func (cc *CollectionsController) ListBooks(c *gin.Context) {
	username := GetUsername(c)

	id, ok := parseIDParam(c, "collectionId")
	if !ok {
		return
	}
	if !cc.verifyOwner(c, id, username) {
		return
	}

	page, ok := parsePageParam(c)
	if !ok {
		return
	}

	items, total, err := cc.books.ListInCollection(id, page, pagination.DefaultPageSize)
	if err != nil {
		respondInternalError(c, err, "list collection books")
		return
	}

	if !checkPage(c, page, total, pagination.DefaultPageSize) {
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(items, total, page, pagination.DefaultPageSize))
}

func (cc *CollectionsController) verifyOwner(c *gin.Context, id uint, username string) bool {
	owned, err := cc.verifier.VerifyCollectionOwner(id, username)
	if err != nil {
		respondInternalError(c, err, "verify collection owner")
		return false
	}
	if !owned {
		respondNotFound(c, "collection")
		return false
	}
	return true
}

func (cc *CollectionsController) logEvent(username, action string, entityID *uint, status entities.AuditStatus, ip string) {
	if cc.audit == nil {
		return
	}
	_ = cc.audit.LogEvent(&entities.AuditEvent{
		Owner:      username,
		EventType:  entities.AuditEventCollection,
		Action:     action,
		EntityType: "collection",
		EntityID:   entityID,
		IPAddress:  ip,
		Status:     status,
	})
}
