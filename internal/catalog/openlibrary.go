// Package catalog holds read-through clients for the external book
// metadata providers. Provider failures are non-fatal everywhere:
// callers get an empty result and the search page degrades instead of
// breaking, so the methods here log and swallow errors.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mccajr2/reading-rewards/internal/domain"
)

const DefaultOpenLibraryURL = "https://openlibrary.org"

type OpenLibraryClient struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibraryClient(baseURL string) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = DefaultOpenLibraryURL
	}

	return &OpenLibraryClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverID          int      `json:"cover_i"`
	} `json:"docs"`
}

// Search queries Open Library's work search and maps the hits into
// summaries. Always returns a non-nil slice.
func (c *OpenLibraryClient) Search(ctx context.Context, query string) []domain.WorkSummary {
	endpoint := fmt.Sprintf("%v/search.json?q=%v&type=work&fields=key,title,author_name,first_publish_year,cover_i",
		c.baseURL, url.QueryEscape(query))

	var parsed searchResponse
	if !c.getJSON(ctx, endpoint, &parsed) {
		return []domain.WorkSummary{}
	}

	results := make([]domain.WorkSummary, 0, len(parsed.Docs))
	for _, doc := range parsed.Docs {
		results = append(results, domain.WorkSummary{
			OLID:             strings.TrimPrefix(doc.Key, "/works/"),
			Title:            doc.Title,
			Authors:          doc.AuthorName,
			FirstPublishYear: doc.FirstPublishYear,
			CoverID:          doc.CoverID,
		})
	}

	return results
}

type workResponse struct {
	Title       string          `json:"title"`
	Description json.RawMessage `json:"description"`
	Covers      []int           `json:"covers"`
}

// GetWork fetches one work record. Returns nil when the work cannot
// be fetched or parsed.
func (c *OpenLibraryClient) GetWork(ctx context.Context, olid string) *domain.WorkDetail {
	endpoint := fmt.Sprintf("%v/works/%v.json", c.baseURL, url.PathEscape(olid))

	var parsed workResponse
	if !c.getJSON(ctx, endpoint, &parsed) {
		return nil
	}

	return &domain.WorkDetail{
		OLID:        olid,
		Title:       parsed.Title,
		Description: decodeDescription(parsed.Description),
		CoverIDs:    parsed.Covers,
	}
}

type isbnResponse struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Cover struct {
		Medium string `json:"medium"`
	} `json:"cover"`
}

// LookupISBN resolves an ISBN via the books API. Returns nil when the
// ISBN is unknown or the provider is down.
func (c *OpenLibraryClient) LookupISBN(ctx context.Context, isbn string) *domain.VolumeSummary {
	isbn = strings.ReplaceAll(isbn, "-", "")
	key := "ISBN:" + isbn
	endpoint := fmt.Sprintf("%v/api/books?bibkeys=%v&format=json&jscmd=data", c.baseURL, url.QueryEscape(key))

	var parsed map[string]isbnResponse
	if !c.getJSON(ctx, endpoint, &parsed) {
		return nil
	}

	record, ok := parsed[key]
	if !ok {
		return nil
	}

	authors := make([]string, 0, len(record.Authors))
	for _, a := range record.Authors {
		authors = append(authors, a.Name)
	}

	return &domain.VolumeSummary{
		ID:           key,
		Title:        record.Title,
		Authors:      authors,
		ThumbnailURL: record.Cover.Medium,
	}
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, endpoint string, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		zap.L().Warn("open library request build failed", zap.String("url", endpoint), zap.Error(err))
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Warn("open library unreachable", zap.String("url", endpoint), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("open library returned non-200", zap.String("url", endpoint), zap.Int("status", resp.StatusCode))
		return false
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		zap.L().Warn("open library response unparseable", zap.String("url", endpoint), zap.Error(err))
		return false
	}

	return true
}

// Open Library serves description either as a plain string or as a
// typed object with a "value" field.
func decodeDescription(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return plain
	}

	var typed struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &typed); err == nil {
		return typed.Value
	}

	return ""
}
