package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Search runs a track search and returns the raw catalog records in catalog order.
// The query must already be percent-encoded; it is placed in the URL verbatim.
// A response without a tracks page yields an empty, non-nil slice.
func (c *Client) Search(ctx context.Context, token *oauth2.Token, query string, limit int) ([]spotify.FullTrack, error) {
	reqURL := fmt.Sprintf("%s/search?q=%s&type=track&limit=%d", c.baseURL, query, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if token != nil {
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: search status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var result spotify.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	if result.Tracks == nil || result.Tracks.Tracks == nil {
		return []spotify.FullTrack{}, nil
	}
	return result.Tracks.Tracks, nil
}
