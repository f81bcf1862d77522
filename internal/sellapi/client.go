package sellapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strconv"

	"github.com/MichalMitros/listing-migrator/internal/platform/models"
	"golang.org/x/oauth2"
)

const policiesPageLimit = 100

// Config holds Sell APIs connection settings.
type Config struct {
	AccountURL      string
	InventoryURL    string
	MarketplaceID   string
	ContentLanguage string
}

// Client calls Sell Account and Inventory APIs on behalf of single account.
type Client struct {
	client *http.Client
	cfg    Config
}

// NewClient returns new Client. Requests are sent with base client and authorized with tokens from provided token source.
func NewClient(ctx context.Context, base *http.Client, cfg Config, tokens oauth2.TokenSource) *Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	return &Client{
		client: oauth2.NewClient(ctx, tokens),
		cfg:    cfg,
	}
}

// Probe checks whether account token is accepted.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.policyURL(models.PolicyTypeFulfillment, ""), nil, nil, http.StatusOK)
	return err
}

// ListPolicies returns account policies of provided type.
func (c *Client) ListPolicies(ctx context.Context, policyType models.PolicyType) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(policiesPageLimit))
	query.Set("marketplace_id", c.cfg.MarketplaceID)

	var resp map[string]json.RawMessage
	_, err := c.do(ctx, http.MethodGet, c.policyURL(policyType, "")+"?"+query.Encode(), nil, &resp, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("can't list %s policies: %w", policyType, err)
	}

	policies := []map[string]any{}
	if list, ok := resp[policyType.ListKey()]; ok {
		if err := json.Unmarshal(list, &policies); err != nil {
			return nil, fmt.Errorf("can't decode %s policies: %w", policyType, err)
		}
	}

	return policies, nil
}

// CreatePolicy creates policy of provided type and returns its id.
func (c *Client) CreatePolicy(ctx context.Context, policyType models.PolicyType, payload map[string]any) (string, error) {
	var resp map[string]any
	header, err := c.do(ctx, http.MethodPost, c.policyURL(policyType, ""), payload, &resp,
		http.StatusOK, http.StatusCreated)
	if err != nil {
		return "", err
	}

	if location := header.Get("Location"); location != "" {
		return path.Base(location), nil
	}

	if id, ok := resp[policyType.IDKey()].(string); ok {
		return id, nil
	}

	return "", fmt.Errorf("created %s policy has no id", policyType)
}

// UpdatePolicy replaces policy of provided type and id.
func (c *Client) UpdatePolicy(ctx context.Context, policyType models.PolicyType, id string, payload map[string]any) error {
	_, err := c.do(ctx, http.MethodPut, c.policyURL(policyType, id), payload, nil,
		http.StatusOK, http.StatusNoContent)
	return err
}

// PutInventoryItem creates or replaces inventory item with provided SKU.
func (c *Client) PutInventoryItem(ctx context.Context, sku string, item *InventoryItem) error {
	_, err := c.do(ctx, http.MethodPut, c.inventoryURL("inventory_item", sku), item, nil,
		http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return err
}

// GetInventoryItem returns inventory item with provided SKU.
func (c *Client) GetInventoryItem(ctx context.Context, sku string) (*InventoryItem, error) {
	var item InventoryItem
	if _, err := c.do(ctx, http.MethodGet, c.inventoryURL("inventory_item", sku), nil, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateOffer creates offer and returns its id.
func (c *Client) CreateOffer(ctx context.Context, offer *Offer) (string, error) {
	var resp struct {
		OfferID string `json:"offerId"`
	}
	_, err := c.do(ctx, http.MethodPost, c.inventoryURL("offer"), offer, &resp, http.StatusOK, http.StatusCreated)
	if err != nil {
		return "", err
	}
	return resp.OfferID, nil
}

// UpdateOffer replaces offer with provided id.
func (c *Client) UpdateOffer(ctx context.Context, offerID string, offer *Offer) error {
	_, err := c.do(ctx, http.MethodPut, c.inventoryURL("offer", offerID), offer, nil,
		http.StatusOK, http.StatusNoContent)
	return err
}

// GetOffer returns offer with provided id.
func (c *Client) GetOffer(ctx context.Context, offerID string) (*Offer, error) {
	var offer Offer
	if _, err := c.do(ctx, http.MethodGet, c.inventoryURL("offer", offerID), nil, &offer, http.StatusOK); err != nil {
		return nil, err
	}
	return &offer, nil
}

// PublishOffer publishes offer and returns id of created marketplace listing.
func (c *Client) PublishOffer(ctx context.Context, offerID string) (string, error) {
	var resp struct {
		ListingID string `json:"listingId"`
	}
	_, err := c.do(ctx, http.MethodPost, c.inventoryURL("offer", offerID, "publish"), nil, &resp, http.StatusOK)
	if err != nil {
		return "", err
	}
	return resp.ListingID, nil
}

// DeleteOffer deletes offer with provided id.
func (c *Client) DeleteOffer(ctx context.Context, offerID string) error {
	_, err := c.do(ctx, http.MethodDelete, c.inventoryURL("offer", offerID), nil, nil,
		http.StatusOK, http.StatusNoContent)
	return err
}

// GetLocation returns merchant location with provided key.
func (c *Client) GetLocation(ctx context.Context, key string) (*Location, error) {
	var location Location
	if _, err := c.do(ctx, http.MethodGet, c.inventoryURL("location", key), nil, &location, http.StatusOK); err != nil {
		return nil, err
	}
	return &location, nil
}

// CreateLocation creates merchant location with provided key.
func (c *Client) CreateLocation(ctx context.Context, key string, location *Location) error {
	_, err := c.do(ctx, http.MethodPost, c.inventoryURL("location", key), location, nil,
		http.StatusOK, http.StatusNoContent)
	return err
}

func (c *Client) policyURL(policyType models.PolicyType, id string) string {
	u := c.cfg.AccountURL + "/" + string(policyType) + "_policy"
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) inventoryURL(segments ...string) string {
	u := c.cfg.InventoryURL
	for _, segment := range segments {
		u += "/" + url.PathEscape(segment)
	}
	return u
}

// do sends JSON request and decodes JSON response into out.
// Responses with status other than expected are returned as *APIError.
func (c *Client) do(
	ctx context.Context,
	method, endpoint string,
	in, out any,
	expected ...int,
) (http.Header, error) {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("can't encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Language", c.cfg.ContentLanguage)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read response: %w", err)
	}

	if !slices.Contains(expected, resp.StatusCode) {
		return nil, toAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return nil, fmt.Errorf("can't decode response: %w", err)
		}
	}

	return resp.Header, nil
}

func toAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var details struct {
		Errors []ErrorDetail `json:"errors"`
	}
	if err := json.Unmarshal(body, &details); err == nil {
		apiErr.Errors = details.Errors
	}

	return apiErr
}
