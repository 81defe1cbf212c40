package mirror

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
)

const testnetBaseURL = "https://testnet.mirrornode.hedera.com"

type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	APIKey     string
	Headers    map[string]string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	headers    map[string]string
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	if _, err := shared.NormalizeNetwork(config.Network); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = testnetBaseURL
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}
	baseURL = strings.TrimRight(parsedBaseURL.String(), "/")

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := map[string]string{}
	for key, value := range config.Headers {
		headers[key] = value
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		apiKey:     strings.TrimSpace(config.APIKey),
		headers:    headers,
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetAccount looks up an account by ID, public-key alias or EVM address.
func (c *Client) GetAccount(ctx context.Context, accountIDOrAlias string) (AccountInfo, error) {
	var accountInfo AccountInfo
	normalized := strings.TrimSpace(accountIDOrAlias)
	if normalized == "" {
		return accountInfo, fmt.Errorf("account ID or alias is required")
	}

	path := fmt.Sprintf("/api/v1/accounts/%s", url.PathEscape(normalized))
	if err := c.getJSON(ctx, path, &accountInfo); err != nil {
		return accountInfo, err
	}

	return accountInfo, nil
}

// GetNft returns a single NFT of a token collection.
func (c *Client) GetNft(ctx context.Context, tokenID string, serial int64) (Nft, error) {
	var nft Nft
	normalizedTokenID := strings.TrimSpace(tokenID)
	if normalizedTokenID == "" {
		return nft, fmt.Errorf("token ID is required")
	}
	if serial <= 0 {
		return nft, fmt.Errorf("serial number must be positive")
	}

	path := fmt.Sprintf("/api/v1/tokens/%s/nfts/%d", normalizedTokenID, serial)
	if err := c.getJSON(ctx, path, &nft); err != nil {
		return nft, err
	}

	return nft, nil
}

// GetTokenNfts returns every NFT of a collection, following pagination links.
func (c *Client) GetTokenNfts(ctx context.Context, tokenID string, options NftQueryOptions) ([]Nft, error) {
	normalizedTokenID := strings.TrimSpace(tokenID)
	if normalizedTokenID == "" {
		return nil, fmt.Errorf("token ID is required")
	}

	values := url.Values{}
	if options.AccountID != "" {
		values.Set("account.id", options.AccountID)
	}
	if options.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", options.Limit))
	}
	if options.Order != "" {
		values.Set("order", options.Order)
	}

	endpoint := fmt.Sprintf("/api/v1/tokens/%s/nfts", normalizedTokenID)
	if encoded := values.Encode(); encoded != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, encoded)
	}

	result := make([]Nft, 0)
	next := endpoint

	for next != "" {
		var page nftsResponse
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}

		result = append(result, page.Nfts...)
		next = page.Links.Next
	}

	return result, nil
}

// DecodeNftMetadata returns the raw metadata bytes attached at mint time.
func DecodeNftMetadata(nft Nft) ([]byte, error) {
	if strings.TrimSpace(nft.Metadata) == "" {
		return nil, fmt.Errorf("nft metadata is empty")
	}
	return base64.StdEncoding.DecodeString(nft.Metadata)
}

func (c *Client) getJSON(ctx context.Context, pathOrURL string, target any) error {
	requestURL := c.resolveURL(pathOrURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-Encoding", "br, gzip")
	if c.apiKey != "" {
		request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := readBody(response)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf(
			"mirror node request failed with status %d: %s",
			response.StatusCode,
			strings.TrimSpace(string(body)),
		)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}

	return nil
}

func readBody(response *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(response.Header.Get("Content-Encoding"))) {
	case "br":
		return io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
	case "gzip":
		reader, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer reader.Close()
		return io.ReadAll(reader)
	default:
		return raw, nil
	}
}

func (c *Client) resolveURL(pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}

	path := pathOrURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}
