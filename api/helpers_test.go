package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"stashbox/drive-api/model"
	"stashbox/drive-api/pkg/middleware"
	"stashbox/drive-api/pkg/security"
	"stashbox/drive-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viper.Set("upload.max_size", int64(10<<20))
	viper.Set("upload.allowed_types", []string{})
	viper.Set("session.ttl_minutes", 60)
	viper.Set("ratelimit.rps", 10000)
	viper.Set("ratelimit.burst", 10000)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(model.User{}, model.Folder{}, model.File{}, model.Session{})
	require.NoError(t, err)

	store, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)

	a := &API{
		DB:     db,
		Hasher: security.New(),
		Store:  store,
	}
	a.setupRouter()

	return a
}

func doJSON(t *testing.T, a *API, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerUser(t *testing.T, a *API, username, email, password string) string {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return parseBody(t, w)["userID"].(string)
}

func loginUser(t *testing.T, a *API, email, password string) *http.Cookie {
	t.Helper()

	w := doJSON(t, a, http.MethodPost, "/login", gin.H{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}

	t.Fatal("no session cookie set on login")
	return nil
}

// multipartFile builds a multipart body holding a single file part
func multipartFile(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func newUploadRequest(t *testing.T, path string, body *bytes.Buffer, contentType string, cookie *http.Cookie) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	return req
}

func doRequest(a *API, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// uploadFile posts a multipart card upload and returns the new file's ID
func uploadFile(t *testing.T, a *API, cookie *http.Cookie, path, name string, content []byte) uint {
	t.Helper()

	body, contentType := multipartFile(t, "file", name, content)
	w := doRequest(a, newUploadRequest(t, path, body, contentType, cookie))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var file model.File
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &file))
	require.NotZero(t, file.ID)

	return file.ID
}

func postForm(t *testing.T, a *API, path string, form map[string]string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}
