package console_test

import (
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"catalog/internal/config"
	"catalog/internal/console"
	"catalog/internal/media"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// startServer runs the catalog API with an in-memory store on a random port.
func startServer(t *testing.T) (string, string) {
	t.Helper()

	mediaDir := t.TempDir()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()

	uploader, err := media.NewLocalUploader(mediaDir, baseURL+"/media")
	require.NoError(t, err)

	app := server.New(config.Config{
		StoreDriver:       config.DriverMemory,
		RequestTimeout:    5 * time.Second,
		BodyLimitMB:       5,
		CORSOrigins:       "*",
		MediaDriver:       config.MediaLocal,
		MediaDir:          mediaDir,
		UploadConcurrency: 2,
		JWTSecret:         "console_secret",
	}, server.Deps{
		Products: repositories.NewMemoryProductRepository(),
		Users:    repositories.NewMemoryUserRepository(),
		Uploader: uploader,
	})
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return baseURL, mediaDir
}

func TestClient_ProductWorkflow(t *testing.T) {
	baseURL, _ := startServer(t)
	client := console.NewClient(baseURL)

	draft := console.ProductDraft{Name: "Shirt", Description: "Cotton", Price: "20", Stock: "5", Images: "http://x/1.png"}
	in, err := draft.Parse()
	require.NoError(t, err)

	created, err := client.AddProduct(in)
	require.NoError(t, err)
	assert.Equal(t, "Shirt", created.Name)
	require.NotEmpty(t, created.ID)

	fetched, err := client.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	upd, err := console.ProductDraft{Price: "25"}.ParseUpdate()
	require.NoError(t, err)
	edited, err := client.EditProduct(created.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, 25, edited.Price)
	assert.Equal(t, 5, edited.Stock)

	products, err := client.ListProducts()
	require.NoError(t, err)
	assert.Len(t, products, 1)

	// duplicate names surface the server message
	_, err = client.AddProduct(in)
	var apiErr *console.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "conflict", apiErr.Kind)
	assert.Contains(t, apiErr.Error(), "Shirt")

	deleted, err := client.DeleteProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = client.GetProduct(created.ID)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClient_UploadImages(t *testing.T) {
	baseURL, mediaDir := startServer(t)
	client := console.NewClient(baseURL)

	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"front.png", "back.jpg", "side.gif"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("image "+name), 0o644))
		paths = append(paths, p)
	}

	urls, err := client.UploadImages(paths)
	require.NoError(t, err)
	require.Len(t, urls, 3)
	for i, ext := range []string{".png", ".jpg", ".gif"} {
		assert.True(t, strings.HasPrefix(urls[i], baseURL+"/media/"))
		assert.True(t, strings.HasSuffix(urls[i], ext))
	}
	entries, err := os.ReadDir(mediaDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	_, err = client.UploadImages(nil)
	var apiErr *console.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestClient_UserWorkflow(t *testing.T) {
	baseURL, _ := startServer(t)
	client := console.NewClient(baseURL)

	in, err := console.UserDraft{Name: "Jane", Email: "jane@example.com", Password: "secret123"}.Parse()
	require.NoError(t, err)
	user, err := client.AddUser(in)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	users, err := client.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)

	updated, err := client.UpdateRole(user.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	token, err := client.Login("jane@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = client.Login("jane@example.com", "wrong")
	var apiErr *console.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestClient_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = console.NewClient("http://" + addr).ListProducts()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
