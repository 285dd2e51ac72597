package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mccajr2/reading-rewards/internal/domain"
)

const (
	DefaultGoogleBooksURL = "https://www.googleapis.com/books/v1"

	googleBooksMaxResults = 20
)

type GoogleBooksClient struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooksClient(baseURL string) *GoogleBooksClient {
	if baseURL == "" {
		baseURL = DefaultGoogleBooksURL
	}

	return &GoogleBooksClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the volumes endpoint by any combination of title,
// author, and ISBN. All empty means no query, which yields no results.
func (c *GoogleBooksClient) Search(ctx context.Context, title, author, isbn string) []domain.VolumeSummary {
	var terms []string
	if title != "" {
		terms = append(terms, "intitle:"+title)
	}
	if author != "" {
		terms = append(terms, "inauthor:"+author)
	}
	if isbn != "" {
		terms = append(terms, "isbn:"+strings.ReplaceAll(isbn, "-", ""))
	}
	if len(terms) == 0 {
		return []domain.VolumeSummary{}
	}

	// Terms are space-separated before encoding, so the wire format is
	// q=intitle:x+inauthor:y, which the API reads as separate terms.
	params := url.Values{}
	params.Set("q", strings.Join(terms, " "))
	params.Set("maxResults", "20")
	endpoint := c.baseURL + "/volumes?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		zap.L().Warn("google books request build failed", zap.String("url", endpoint), zap.Error(err))
		return []domain.VolumeSummary{}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Warn("google books unreachable", zap.String("url", endpoint), zap.Error(err))
		return []domain.VolumeSummary{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("google books returned non-200", zap.String("url", endpoint), zap.Int("status", resp.StatusCode))
		return []domain.VolumeSummary{}
	}

	var parsed volumesResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		zap.L().Warn("google books response unparseable", zap.String("url", endpoint), zap.Error(err))
		return []domain.VolumeSummary{}
	}

	results := make([]domain.VolumeSummary, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if len(results) == googleBooksMaxResults {
			break
		}

		results = append(results, domain.VolumeSummary{
			ID:           item.ID,
			Title:        item.VolumeInfo.Title,
			Authors:      item.VolumeInfo.Authors,
			Description:  item.VolumeInfo.Description,
			ThumbnailURL: item.VolumeInfo.ImageLinks.Thumbnail,
		})
	}

	return results
}
