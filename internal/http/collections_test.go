package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readshelf/readshelf/internal/auth"
	"github.com/readshelf/readshelf/internal/database"
	"github.com/readshelf/readshelf/internal/database/books"
	"github.com/readshelf/readshelf/internal/database/collections"
	"github.com/readshelf/readshelf/internal/database/ownership"
	"github.com/readshelf/readshelf/internal/entities"
)

// actAs injects a username into the context the way the session middleware
// would, so controllers can be exercised without a live session store.
func actAs(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUsername, username)
		c.Next()
	}
}

func setupCollectionsTest(t *testing.T, username string) (*database.Database, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_collections_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	verifier := ownership.NewVerifier(db.DB)
	controller := NewCollectionsController(
		collections.NewRepository(db.DB),
		books.NewRepository(db.DB),
		verifier,
		nil,
	)

	router := gin.New()
	group := router.Group("/api")
	group.Use(actAs(username))
	controller.RegisterRoutes(group)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, router, cleanup
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCollectionsController_CreateAndList(t *testing.T) {
	_, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	w := doJSON(router, "POST", "/api/collections", `{"name": "fiction"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Duplicate name for the same user: conflict, not a server error
	w = doJSON(router, "POST", "/api/collections", `{"name": "fiction"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(router, "GET", "/api/collections", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.PageCount)
}

func TestCollectionsController_Create_ValidatesName(t *testing.T) {
	_, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	w := doJSON(router, "POST", "/api/collections", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	long := strings.Repeat("x", 101)
	w = doJSON(router, "POST", "/api/collections", `{"name": "`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCollectionsController_List_InvalidPage(t *testing.T) {
	_, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	doJSON(router, "POST", "/api/collections", `{"name": "fiction"}`)

	w := doJSON(router, "GET", "/api/collections?page=2", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, "GET", "/api/collections?page=nope", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Empty listing shows as page 1, not an error
	_, emptyRouter, cleanup2 := setupCollectionsTest(t, "nobody")
	defer cleanup2()
	w = doJSON(emptyRouter, "GET", "/api/collections", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCollectionsController_ForeignCollectionIsNotFound(t *testing.T) {
	db, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	// A collection owned by bob, addressed by alice's session
	bobs := &entities.Collection{Owner: "bob", Name: "bobs-shelf"}
	require.NoError(t, db.DB.Create(bobs).Error)

	w := doJSON(router, "GET", "/api/collections/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "PUT", "/api/collections/1", `{"name": "hijacked"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, "DELETE", "/api/collections/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Still intact and still bob's
	var reloaded entities.Collection
	require.NoError(t, db.DB.First(&reloaded, bobs.ID).Error)
	assert.Equal(t, "bobs-shelf", reloaded.Name)
}

func TestCollectionsController_RenameAndDelete(t *testing.T) {
	db, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	doJSON(router, "POST", "/api/collections", `{"name": "fiction"}`)

	var collection entities.Collection
	require.NoError(t, db.DB.Where("owner = ?", "alice").First(&collection).Error)

	w := doJSON(router, "PUT", "/api/collections/1", `{"name": "classics"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", "/api/collections/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "GET", "/api/collections/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionsController_ListBooks(t *testing.T) {
	db, router, cleanup := setupCollectionsTest(t, "alice")
	defer cleanup()

	doJSON(router, "POST", "/api/collections", `{"name": "fiction"}`)

	var collection entities.Collection
	require.NoError(t, db.DB.Where("owner = ?", "alice").First(&collection).Error)

	book := &entities.Book{Owner: "alice", Title: "Dune", Author: "Frank Herbert", CollectionID: &collection.ID}
	require.NoError(t, db.DB.Create(book).Error)

	w := doJSON(router, "GET", "/api/collections/1/books", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Total)
}
