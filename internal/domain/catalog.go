package domain

// WorkSummary is one Open Library search hit.
type WorkSummary struct {
	OLID             string   `json:"olid"`
	Title            string   `json:"title"`
	Authors          []string `json:"authors"`
	FirstPublishYear int      `json:"first_publish_year,omitempty"`
	CoverID          int      `json:"cover_id,omitempty"`
}

// WorkDetail is an Open Library work record.
type WorkDetail struct {
	OLID        string   `json:"olid"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description,omitempty"`
	CoverIDs    []int    `json:"cover_ids,omitempty"`
}

// VolumeSummary is one Google Books search hit, flattened to the
// fields the bookshelf cares about.
type VolumeSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Description  string   `json:"description,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
}
