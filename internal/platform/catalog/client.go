package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

// DefaultURL is the public catalog endpoint used when no URL is configured.
const DefaultURL = "https://fakestoreapi.com/products"

var (
	// ErrUnexpectedStatus signals a non-2xx response from the catalog API.
	ErrUnexpectedStatus = errors.New("unexpected catalog status")
	// ErrShapeMismatch signals a product element missing required fields or carrying invalid values.
	ErrShapeMismatch = errors.New("catalog product shape mismatch")
)

// FetchError reports why the catalog could not be fetched or decoded.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch catalog %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch catalog %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines settings for the catalog client.
type Config struct {
	URL     string
	Timeout time.Duration
}

// Client fetches the product catalog.
type Client struct {
	url        string
	httpClient HTTPClient
	validate   *validator.Validate
}

// New creates a catalog client. A nil httpClient gets a default client with cfg.Timeout.
func New(httpClient HTTPClient, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:        url,
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

// URL returns the endpoint the client reads from.
func (c *Client) URL() string {
	return c.url
}

// FetchProducts performs a single GET against the catalog and decodes the JSON array of products.
// Every failure is returned as a *FetchError; nothing is retried.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: c.url, Err: fmt.Errorf("request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Read a bounded excerpt of the body for context.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &FetchError{
			URL:        c.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, string(bytes.TrimSpace(body))),
		}
	}

	products, err := c.decodeProducts(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: c.url, StatusCode: resp.StatusCode, Err: err}
	}
	return products, nil
}

func (c *Client) decodeProducts(body io.Reader) ([]model.Product, error) {
	buf, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var items []catalogProduct
	if err := json.Unmarshal(bytes.TrimSpace(buf), &items); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: response is not a JSON array", ErrShapeMismatch)
	}

	products := make([]model.Product, 0, len(items))
	for i, item := range items {
		if err := c.validate.Struct(item); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrShapeMismatch, i, err)
		}
		products = append(products, item.toModel())
	}
	return products, nil
}

// catalogProduct is the wire shape of a catalog element. Pointer fields distinguish
// an absent field from a zero value.
type catalogProduct struct {
	ID          *int64         `json:"id" validate:"required"`
	Title       *string        `json:"title" validate:"required"`
	Price       *float64       `json:"price" validate:"required,gte=0"`
	Description *string        `json:"description"`
	Category    *string        `json:"category" validate:"required"`
	Image       *string        `json:"image"`
	Rating      *catalogRating `json:"rating"`
}

type catalogRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

func (p catalogProduct) toModel() model.Product {
	out := model.Product{
		ID:       *p.ID,
		Title:    *p.Title,
		Price:    *p.Price,
		Category: *p.Category,
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Rating != nil {
		out.Rating = model.Rating{Rate: p.Rating.Rate, Count: p.Rating.Count}
	}
	return out
}
