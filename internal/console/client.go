package console

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"catalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultBaseURL is used when CATALOG_URL is not set.
const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	Status  int
	Kind    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the catalog API on behalf of the console.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
}

// NewClient returns a Client for baseURL. An empty baseURL means
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 30 * time.Second,
	}
}

// SetToken attaches a bearer token to every following request.
func (c *Client) SetToken(token string) { c.token = token }

type productEnvelope struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

type userEnvelope struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

// ListProducts returns every product.
func (c *Client) ListProducts() ([]models.Product, error) {
	var products []models.Product
	err := c.do(fiber.Get(c.url("/get-products")), &products)
	return products, err
}

// AddProduct creates a product.
func (c *Client) AddProduct(in models.ProductInput) (*models.Product, error) {
	var out productEnvelope
	err := c.do(fiber.Post(c.url("/add-product")).JSON(in), &out)
	return out.Product, err
}

// GetProduct fetches one product.
func (c *Client) GetProduct(id string) (*models.Product, error) {
	var out productEnvelope
	err := c.do(fiber.Get(c.url("/get-product/", id)), &out)
	return out.Product, err
}

// EditProduct applies a partial update.
func (c *Client) EditProduct(id string, upd models.ProductUpdate) (*models.Product, error) {
	var out productEnvelope
	err := c.do(fiber.Put(c.url("/edit/", id)).JSON(upd), &out)
	return out.Product, err
}

// DeleteProduct deletes a product and returns it.
func (c *Client) DeleteProduct(id string) (*models.Product, error) {
	var out productEnvelope
	err := c.do(fiber.Delete(c.url("/delete-product/", id)), &out)
	return out.Product, err
}

// UploadImages uploads the files at paths and returns their URLs in the
// same order.
func (c *Client) UploadImages(paths []string) ([]string, error) {
	body, contentType, err := imageForm(paths)
	if err != nil {
		return nil, err
	}

	var out struct {
		URLs []string `json:"urls"`
	}
	err = c.do(fiber.Post(c.url("/upload-img")).ContentType(contentType).Body(body), &out)
	return out.URLs, err
}

// AddUser creates a user.
func (c *Client) AddUser(in models.UserInput) (*models.User, error) {
	var out userEnvelope
	err := c.do(fiber.Post(c.url("/add-user")).JSON(in), &out)
	return out.User, err
}

// ListUsers returns every user.
func (c *Client) ListUsers() ([]models.User, error) {
	var users []models.User
	err := c.do(fiber.Get(c.url("/get-users")), &users)
	return users, err
}

// UpdateRole changes the role of a user.
func (c *Client) UpdateRole(userID string, role models.Role) (*models.User, error) {
	var out userEnvelope
	err := c.do(fiber.Put(c.url("/update-role")).JSON(models.RoleUpdate{UserID: userID, Role: role}), &out)
	return out.User, err
}

// Login exchanges credentials for a token.
func (c *Client) Login(email, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.do(fiber.Post(c.url("/login")).JSON(fiber.Map{"email": email, "password": password}), &out)
	return out.Token, err
}

func (c *Client) url(path string, id ...string) string {
	u := c.baseURL + path
	for _, part := range id {
		u += url.PathEscape(part)
	}
	return u
}

func (c *Client) do(a *fiber.Agent, out any) error {
	a.Timeout(c.timeout)
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("catalog API unreachable: %w", errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return decodeError(code, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected response from catalog API: %w", err)
	}
	return nil
}

func decodeError(code int, body []byte) error {
	apiErr := &APIError{Status: code}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("catalog API responded with %d %s", code, http.StatusText(code))
	}
	return apiErr
}

// imageForm encodes the files as repeated image parts. The part content
// type is derived from the extension, falling back to sniffing.
func imageForm(paths []string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", p, err)
		}
		contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(p)))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filepath.Base(p)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
