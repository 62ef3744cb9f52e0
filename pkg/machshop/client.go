// Package machshop is a client for the MachShop Manufacturing Execution
// System API, whose Prisma schema this module migrates.
package machshop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client calls the MachShop API with a Bearer token.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

// NewClient returns a client for the API at baseURL (e.g.
// "https://api.machshop.com/api/v1") authenticating with authToken.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token: authToken,
	}
}

// checkToken fails fast when the configured token is a JWT that has
// already expired, instead of surfacing the failure later as a server
// 401. Opaque tokens pass through for the server to judge.
func (c *Client) checkToken() error {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return fmt.Errorf("auth token expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// doRequest executes one API request, encoding body and decoding the
// response into result when either is non-nil.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	if err := c.checkToken(); err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ── Work orders ───────────────────────────────────────────────────────────

// ListWorkOrders returns one page of work orders.
func (c *Client) ListWorkOrders(ctx context.Context, page, limit int) (*Page[WorkOrder], error) {
	var out Page[WorkOrder]
	path := fmt.Sprintf("/workorders?page=%d&limit=%d", page, limit)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWorkOrder fetches a single work order by id.
func (c *Client) GetWorkOrder(ctx context.Context, id string) (*WorkOrder, error) {
	var out WorkOrder
	if err := c.doRequest(ctx, http.MethodGet, "/workorders/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWorkOrder creates a work order and returns it with the
// server-assigned fields populated.
func (c *Client) CreateWorkOrder(ctx context.Context, wo WorkOrder) (*WorkOrder, error) {
	var out WorkOrder
	if err := c.doRequest(ctx, http.MethodPost, "/workorders", wo, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Materials ─────────────────────────────────────────────────────────────

// ListMaterials returns one page of materials.
func (c *Client) ListMaterials(ctx context.Context, page, limit int) (*Page[Material], error) {
	var out Page[Material]
	path := fmt.Sprintf("/materials?page=%d&limit=%d", page, limit)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMaterial creates a material master record.
func (c *Client) CreateMaterial(ctx context.Context, m Material) (*Material, error) {
	var out Material
	if err := c.doRequest(ctx, http.MethodPost, "/materials", m, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Quality ───────────────────────────────────────────────────────────────

// ListQualityInspections returns one page of first-article inspections.
func (c *Client) ListQualityInspections(ctx context.Context, page, limit int) (*Page[QualityInspection], error) {
	var out Page[QualityInspection]
	path := fmt.Sprintf("/fai?page=%d&limit=%d", page, limit)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateQualityInspection creates a first-article inspection.
func (c *Client) CreateQualityInspection(ctx context.Context, q QualityInspection) (*QualityInspection, error) {
	var out QualityInspection
	if err := c.doRequest(ctx, http.MethodPost, "/fai", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
