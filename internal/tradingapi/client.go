package tradingapi

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"golang.org/x/oauth2"
)

const (
	timeLayout      = "2006-01-02T15:04:05.000Z"
	entriesPerPage  = 200
	pictureLifetime = 30

	callGetSellerList  = "GetSellerList"
	callGetItem        = "GetItem"
	callUploadPictures = "UploadSiteHostedPictures"
)

// Config holds Trading API connection settings.
type Config struct {
	URL                string
	AppID              string
	DevID              string
	CertID             string
	SiteID             string
	CompatibilityLevel string
}

// Client calls Trading API on behalf of single account.
type Client struct {
	client *http.Client
	cfg    Config
	tokens oauth2.TokenSource
}

// NewClient returns new Client authorizing calls with tokens from provided token source.
func NewClient(client *http.Client, cfg Config, tokens oauth2.TokenSource) *Client {
	return &Client{
		client: client,
		cfg:    cfg,
		tokens: tokens,
	}
}

// ActiveItemIDs returns ids of all items which end between from and to.
func (c *Client) ActiveItemIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	itemIDs := []string{}

	for page := 1; ; page++ {
		req := getSellerListRequest{
			GranularityLevel: "Coarse",
			EndTimeFrom:      from.UTC().Format(timeLayout),
			EndTimeTo:        to.UTC().Format(timeLayout),
			Pagination: pagination{
				EntriesPerPage: entriesPerPage,
				PageNumber:     page,
			},
		}

		body, err := c.callXML(ctx, callGetSellerList, &req)
		if err != nil {
			return nil, err
		}

		var resp getSellerListResponse
		if err := xml.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("can't decode %s response: %w", callGetSellerList, err)
		}

		for _, item := range resp.ItemArray.Items {
			itemIDs = append(itemIDs, item.ItemID)
		}

		if !resp.HasMoreItems || len(resp.ItemArray.Items) == 0 {
			return itemIDs, nil
		}
	}
}

// GetItem returns GetItem response with full item details, including item specifics.
// The caller is responsible for closing returned ReadCloser.
func (c *Client) GetItem(ctx context.Context, itemID string) (io.ReadCloser, error) {
	req := getItemRequest{
		ItemID:               itemID,
		DetailLevel:          "ReturnAll",
		IncludeItemSpecifics: true,
	}

	body, err := c.callXML(ctx, callGetItem, &req)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

// UploadPicture uploads picture to site hosted picture storage and returns its full url.
func (c *Client) UploadPicture(ctx context.Context, name string, picture io.Reader) (string, error) {
	payload, err := encodeRequest(&uploadPictureRequest{
		PictureName:     name,
		ExtensionInDays: pictureLifetime,
	})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="XML Payload"`)
	header.Set("Content-Type", "text/xml;charset=utf-8")
	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("can't create payload part: %w", err)
	}
	if _, err := part.Write(payload); err != nil {
		return "", fmt.Errorf("can't write payload part: %w", err)
	}

	part, err = form.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("can't create picture part: %w", err)
	}
	if _, err := io.Copy(part, picture); err != nil {
		return "", fmt.Errorf("can't write picture part: %w", err)
	}

	if err := form.Close(); err != nil {
		return "", fmt.Errorf("can't close multipart form: %w", err)
	}

	body, err := c.call(ctx, callUploadPictures, &buf, form.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp uploadPictureResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("can't decode %s response: %w", callUploadPictures, err)
	}

	if resp.SiteHostedPictureDetails.FullURL == "" {
		return "", ErrNoPictureURL
	}

	return resp.SiteHostedPictureDetails.FullURL, nil
}

func (c *Client) callXML(ctx context.Context, callName string, request any) ([]byte, error) {
	payload, err := encodeRequest(request)
	if err != nil {
		return nil, err
	}

	return c.call(ctx, callName, bytes.NewReader(payload), "text/xml;charset=utf-8")
}

// call sends Trading API request and returns response body of successful call.
func (c *Client) call(ctx context.Context, callName string, body io.Reader, contentType string) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("can't get token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, body)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-EBAY-API-CALL-NAME", callName)
	req.Header.Set("X-EBAY-API-SITEID", c.cfg.SiteID)
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", c.cfg.CompatibilityLevel)
	req.Header.Set("X-EBAY-API-APP-NAME", c.cfg.AppID)
	req.Header.Set("X-EBAY-API-DEV-NAME", c.cfg.DevID)
	req.Header.Set("X-EBAY-API-CERT-NAME", c.cfg.CertID)
	req.Header.Set("X-EBAY-API-IAF-TOKEN", token.AccessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w (%d)", callName, ErrStatusNotOK, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read %s response: %w", callName, err)
	}

	var status callStatus
	if err := xml.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("can't decode %s response: %w", callName, err)
	}

	if err := status.err(callName); err != nil {
		return nil, err
	}

	return respBody, nil
}

func encodeRequest(request any) ([]byte, error) {
	payload, err := xml.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("can't encode request: %w", err)
	}

	return append([]byte(xml.Header), payload...), nil
}
