package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"stashbox/drive-api/model"
	"stashbox/drive-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFolder(t *testing.T, a *API, cookie *http.Cookie, path, name string) uint {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, path, gin.H{"name": name}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return uint(parseBody(t, w)["id"].(float64))
}

func TestFolderCreateAndContents(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	cookie := loginUser(t, a, "a@x.com", "password1")

	folderID := createFolder(t, a, cookie, "/create-folder", "docs")
	fileID := uploadFile(t, a, cookie, fmt.Sprintf("/create-card/%d", folderID), "inside.txt", []byte("x"))

	// The folder's own listing shows the file
	w := doJSON(t, a, http.MethodGet, fmt.Sprintf("/folders/%d", folderID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Equal(t, "docs", body["folder"].(map[string]any)["name"])

	files := body["files"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, float64(fileID), files[0].(map[string]any)["id"])

	// The root listing shows the folder but not the file inside it
	w = doJSON(t, a, http.MethodGet, "/userPage", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	body = parseBody(t, w)
	assert.Len(t, body["folders"].([]any), 1)
	assert.Len(t, body["files"].([]any), 0)
}

func TestFolderListingIsOneLevelDeep(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	cookie := loginUser(t, a, "a@x.com", "password1")

	parent := createFolder(t, a, cookie, "/create-folder", "parent")
	child := createFolder(t, a, cookie, fmt.Sprintf("/create-folder/%d", parent), "child")
	uploadFile(t, a, cookie, fmt.Sprintf("/create-card/%d", child), "deep.txt", []byte("x"))

	w := doJSON(t, a, http.MethodGet, fmt.Sprintf("/folders/%d", parent), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	folders := body["folders"].([]any)
	require.Len(t, folders, 1)
	assert.Equal(t, "child", folders[0].(map[string]any)["name"])

	// The grandchild file is not pulled up into the parent listing
	assert.Len(t, body["files"].([]any), 0)
}

func TestRootListingScopedToOwner(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	registerUser(t, a, "bob", "b@x.com", "password2")

	aliceCookie := loginUser(t, a, "a@x.com", "password1")
	bobCookie := loginUser(t, a, "b@x.com", "password2")

	createFolder(t, a, bobCookie, "/create-folder", "bobs")
	uploadFile(t, a, bobCookie, "/create-card", "bob.txt", []byte("x"))

	w := doJSON(t, a, http.MethodGet, "/userPage", nil, aliceCookie)
	require.Equal(t, http.StatusOK, w.Code)

	body := parseBody(t, w)
	assert.Len(t, body["folders"].([]any), 0)
	assert.Len(t, body["files"].([]any), 0)
}

func TestFolderRename(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	cookie := loginUser(t, a, "a@x.com", "password1")

	folderID := createFolder(t, a, cookie, "/create-folder", "old-name")

	// Prefill for the rename form
	w := doJSON(t, a, http.MethodGet, fmt.Sprintf("/folders/edit/%d", folderID), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "old-name", parseBody(t, w)["name"])

	w = doJSON(t, a, http.MethodPost, fmt.Sprintf("/folders/edit/%d", folderID), gin.H{"name": "new-name"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var folder model.Folder
	require.NoError(t, a.DB.Where("id = ?", folderID).First(&folder).Error)
	assert.Equal(t, "new-name", folder.Name)
}

func TestForeignFolderIsNotFound(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	registerUser(t, a, "bob", "b@x.com", "password2")

	aliceCookie := loginUser(t, a, "a@x.com", "password1")
	bobCookie := loginUser(t, a, "b@x.com", "password2")

	folderID := createFolder(t, a, aliceCookie, "/create-folder", "private")

	w := doJSON(t, a, http.MethodGet, fmt.Sprintf("/folders/%d", folderID), nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Folder not found", parseBody(t, w)["message"])

	w = doJSON(t, a, http.MethodPost, fmt.Sprintf("/folders/edit/%d", folderID), gin.H{"name": "mine"}, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, a, http.MethodPost, fmt.Sprintf("/folders/delete/%d", folderID), nil, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nesting under a foreign parent is refused the same way
	w = doJSON(t, a, http.MethodPost, fmt.Sprintf("/create-folder/%d", folderID), gin.H{"name": "sneaky"}, bobCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var folder model.Folder
	require.NoError(t, a.DB.Where("id = ?", folderID).First(&folder).Error)
	assert.Equal(t, "private", folder.Name)
}

func TestFolderCascadeDelete(t *testing.T) {
	a := newTestAPI(t)

	registerUser(t, a, "alice", "a@x.com", "password1")
	cookie := loginUser(t, a, "a@x.com", "password1")

	parent := createFolder(t, a, cookie, "/create-folder", "parent")
	child := createFolder(t, a, cookie, fmt.Sprintf("/create-folder/%d", parent), "child")
	grandchild := createFolder(t, a, cookie, fmt.Sprintf("/create-folder/%d", child), "grandchild")

	topFile := uploadFile(t, a, cookie, fmt.Sprintf("/create-card/%d", parent), "top.txt", []byte("x"))
	deepFile := uploadFile(t, a, cookie, fmt.Sprintf("/create-card/%d", grandchild), "deep.txt", []byte("y"))

	// A file outside the subtree must survive
	rootFile := uploadFile(t, a, cookie, "/create-card", "root.txt", []byte("z"))

	var deepKey string
	require.NoError(t, a.DB.Model(model.File{}).Where("id = ?", deepFile).Pluck("file_key", &deepKey).Error)

	w := doJSON(t, a, http.MethodPost, fmt.Sprintf("/folders/delete/%d", parent), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var folderCount int64
	require.NoError(t, a.DB.Model(model.Folder{}).Where("id IN ?", []uint{parent, child, grandchild}).Count(&folderCount).Error)
	assert.Zero(t, folderCount)

	var fileCount int64
	require.NoError(t, a.DB.Model(model.File{}).Where("id IN ?", []uint{topFile, deepFile}).Count(&fileCount).Error)
	assert.Zero(t, fileCount)

	_, _, err := a.Store.Open(context.Background(), deepKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, a.DB.Where("id = ?", rootFile).First(&model.File{}).Error)
}
