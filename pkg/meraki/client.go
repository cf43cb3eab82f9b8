// Package meraki provides a client for the Cisco Meraki Dashboard API v1.
// It covers the read-only surface this tool needs: organizations, networks,
// and network clients, with automatic pagination and rate limit handling.
package meraki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Organization represents a Meraki organization.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Network represents a Meraki network.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NetworkClient represents a client discovered at the network level.
// VLAN is a pointer because the Dashboard reports null for clients without
// a VLAN assignment, and 0 is not a usable sentinel.
type NetworkClient struct {
	MAC                string `json:"mac"`
	VLAN               *int   `json:"vlan"`
	IP                 string `json:"ip"`
	Description        string `json:"description"`
	Switchport         string `json:"switchport"`
	SwitchportName     string `json:"switchportName"`
	RecentDeviceSerial string `json:"recentDeviceSerial"`
	RecentDeviceName   string `json:"recentDeviceName"`
	LastSeen           string `json:"lastSeen"`
}

// HasVLAN reports whether the client carries a VLAN assignment.
func (c NetworkClient) HasVLAN() bool {
	return c.VLAN != nil
}

// CredentialError wraps a 401/403 response so callers can name the failed
// call when aborting the run.
type CredentialError struct {
	Status int
	Body   string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("meraki API rejected the API key (HTTP %d): %s", e.Status, e.Body)
}

// MerakiClient is an HTTP client wrapper for the Meraki Dashboard API.
type MerakiClient struct {
	apiKey     string
	baseURL    string
	maxRetries int
	client     *http.Client
}

// NewClient creates a new Meraki API client.
// maxRetries controls how many times a 429 response is retried; 0 uses the default of 6.
func NewClient(apiKey, baseURL string, maxRetries int) *MerakiClient {
	if baseURL == "" {
		baseURL = "https://api.meraki.com/api/v1"
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if maxRetries <= 0 {
		maxRetries = 6
	}
	return &MerakiClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		maxRetries: maxRetries,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetOrganizations retrieves all organizations accessible by the API key.
func (m *MerakiClient) GetOrganizations(ctx context.Context) ([]Organization, error) {
	raws, err := m.getAllPages(ctx, "/organizations", url.Values{"perPage": []string{"1000"}})
	if err != nil {
		return nil, err
	}
	orgs := make([]Organization, 0, len(raws))
	for _, r := range raws {
		var o Organization
		if err := json.Unmarshal(r, &o); err == nil {
			orgs = append(orgs, o)
		}
	}
	return orgs, nil
}

// GetNetworks retrieves all networks for a given organization.
func (m *MerakiClient) GetNetworks(ctx context.Context, orgID string) ([]Network, error) {
	path := fmt.Sprintf("/organizations/%s/networks", orgID)
	raws, err := m.getAllPages(ctx, path, url.Values{"perPage": []string{"1000"}})
	if err != nil {
		return nil, err
	}
	nets := make([]Network, 0, len(raws))
	for _, r := range raws {
		var n Network
		if err := json.Unmarshal(r, &n); err == nil {
			nets = append(nets, n)
		}
	}
	return nets, nil
}

// GetNetworkClients retrieves all clients seen in a network within the given
// timespan (seconds). Pages are fetched in order until exhausted, so the
// returned slice preserves the API's ordering across page boundaries.
func (m *MerakiClient) GetNetworkClients(ctx context.Context, networkID string, timespan int) ([]NetworkClient, error) {
	path := fmt.Sprintf("/networks/%s/clients", networkID)
	params := url.Values{
		"perPage":  []string{"1000"},
		"timespan": []string{strconv.Itoa(timespan)},
	}
	raws, err := m.getAllPages(ctx, path, params)
	if err != nil {
		return nil, err
	}
	clients := make([]NetworkClient, 0, len(raws))
	for _, r := range raws {
		var c NetworkClient
		if err := json.Unmarshal(r, &c); err == nil {
			clients = append(clients, c)
		}
	}
	return clients, nil
}

// getAllPages handles pagination for API endpoints that return arrays.
// It follows the Link header with rel="next" until all pages are retrieved.
func (m *MerakiClient) getAllPages(ctx context.Context, path string, params url.Values) ([]json.RawMessage, error) {
	fullURL := m.buildURL(path, params)
	var all []json.RawMessage
	for {
		body, next, err := m.doRequest(ctx, "GET", fullURL)
		if err != nil {
			return nil, err
		}
		var page []json.RawMessage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("meraki API returned malformed page for %s: %w", path, err)
		}
		all = append(all, page...)
		if next == "" {
			break
		}
		fullURL = next
	}
	return all, nil
}

// buildURL constructs a full API URL from a path and query parameters.
func (m *MerakiClient) buildURL(path string, params url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	base := m.baseURL + path
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

// doRequest executes an HTTP request with rate limit handling and a single
// retry on transient transport errors. 429 responses honour Retry-After.
// Returns the response body, next page URL (from Link header), and any error.
func (m *MerakiClient) doRequest(ctx context.Context, method, fullURL string) ([]byte, string, error) {
	transientRetried := false
	for attempt := 0; attempt < m.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
		if err != nil {
			return nil, "", err
		}
		req.Header.Set("X-Cisco-Meraki-API-Key", m.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := m.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			// one retry for timeouts and connection resets, then give up
			if !transientRetried {
				transientRetried = true
				continue
			}
			return nil, "", fmt.Errorf("meraki API request failed: %w", err)
		}
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := resp.Header.Get("Retry-After")
			if retryAfter != "" {
				if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
					time.Sleep(seconds)
					continue
				}
			}
			time.Sleep(time.Second * time.Duration(1+attempt))
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, "", &CredentialError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}

		if resp.StatusCode >= 300 {
			return nil, "", fmt.Errorf("meraki API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}

		next := parseLinkNext(resp.Header.Get("Link"))
		return body, next, nil
	}
	return nil, "", errors.New("meraki API request failed after retries")
}

// parseLinkNext extracts the next page URL from a Link header.
// Example Link header: <https://api.meraki.com/api/v1/...?page=2>; rel="next"
func parseLinkNext(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}
	parts := strings.Split(linkHeader, ",")
	for _, part := range parts {
		section := strings.TrimSpace(part)
		if !strings.Contains(section, "rel=\"next\"") {
			continue
		}
		start := strings.Index(section, "<")
		end := strings.Index(section, ">")
		if start == -1 || end == -1 || end <= start+1 {
			continue
		}
		return section[start+1 : end]
	}
	return ""
}
