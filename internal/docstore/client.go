package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/pkg/errors"
)

// Collection names exposed by the remote document store.
const (
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionBanners    = "banners"
	CollectionCoupons    = "coupons"
	CollectionOrders     = "orders"
	CollectionUsers      = "users"
	CollectionSettings   = "settings" // singleton document, not a record set
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new document store REST client
func NewClient(cfg config.StoreConfig, logger *zap.Logger) *Client {
	// Normalize base URL - strip the trailing slash so path joining is uniform
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) url(parts ...string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, strings.Join(parts, "/"))
}

// do issues one request and returns the raw response body. Any non-2xx
// status is an error carrying the body for diagnosis.
func (c *Client) do(ctx context.Context, method, url string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("document store error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// Collection fetches a whole collection and normalizes it into one
// canonical ordered list of records, whatever shape the store returned.
func (c *Client) Collection(ctx context.Context, name string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, http.MethodGet, c.url(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", name, err)
	}
	return normalizeCollection(body), nil
}

// GetRecord fetches a single record by id. A null body means the record
// does not exist.
func (c *Client) GetRecord(ctx context.Context, collection, id string, dst interface{}) error {
	body, err := c.do(ctx, http.MethodGet, c.url(collection, id), nil)
	if err != nil {
		return fmt.Errorf("failed to fetch %s/%s: %w", collection, id, err)
	}
	if isNull(body) {
		return &errors.ErrNotFound{Collection: collection, ID: id}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s/%s: %w", collection, id, err)
	}
	return nil
}

// PutRecord writes a full record under a client-generated id. The store
// treats PUT as full replace, so the same call serves create and update.
func (c *Client) PutRecord(ctx context.Context, collection, id string, record interface{}) error {
	if _, err := c.do(ctx, http.MethodPut, c.url(collection, id), record); err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", collection, id, err)
	}
	return nil
}

// PatchRecord merge-updates part of a record
func (c *Client) PatchRecord(ctx context.Context, collection, id string, partial interface{}) error {
	if _, err := c.do(ctx, http.MethodPatch, c.url(collection, id), partial); err != nil {
		return fmt.Errorf("failed to patch %s/%s: %w", collection, id, err)
	}
	return nil
}

// DeleteRecord removes a record by id
func (c *Client) DeleteRecord(ctx context.Context, collection, id string) error {
	if _, err := c.do(ctx, http.MethodDelete, c.url(collection, id), nil); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// GetSingleton fetches a singleton document such as settings. A null body
// leaves dst untouched so callers keep their zero-value defaults.
func (c *Client) GetSingleton(ctx context.Context, collection string, dst interface{}) error {
	body, err := c.do(ctx, http.MethodGet, c.url(collection), nil)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", collection, err)
	}
	if isNull(body) {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", collection, err)
	}
	return nil
}

// PutSingleton replaces a singleton document wholesale
func (c *Client) PutSingleton(ctx context.Context, collection string, doc interface{}) error {
	if _, err := c.do(ctx, http.MethodPut, c.url(collection), doc); err != nil {
		return fmt.Errorf("failed to put %s: %w", collection, err)
	}
	return nil
}

func isNull(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return trimmed == "" || trimmed == "null"
}
