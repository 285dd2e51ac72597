package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLibraryClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "moby dick", r.URL.Query().Get("q"))
		assert.Equal(t, "work", r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"docs": [
				{
					"key": "/works/OL102749W",
					"title": "Moby Dick",
					"author_name": ["Herman Melville"],
					"first_publish_year": 1851,
					"cover_i": 5551452
				},
				{
					"key": "/works/OL999W",
					"title": "Moby Dick for Kids"
				}
			]
		}`))
	}))
	defer srv.Close()

	client := NewOpenLibraryClient(srv.URL)
	results := client.Search(context.Background(), "moby dick")

	require.Len(t, results, 2)
	assert.Equal(t, "OL102749W", results[0].OLID)
	assert.Equal(t, "Moby Dick", results[0].Title)
	assert.Equal(t, []string{"Herman Melville"}, results[0].Authors)
	assert.Equal(t, 1851, results[0].FirstPublishYear)
	assert.Equal(t, 5551452, results[0].CoverID)
	assert.Equal(t, "OL999W", results[1].OLID)
	assert.Empty(t, results[1].Authors)
}

func TestOpenLibraryClient_Search_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOpenLibraryClient(srv.URL)
	results := client.Search(context.Background(), "moby dick")

	// Degrades to an empty, non-nil slice.
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestOpenLibraryClient_Search_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewOpenLibraryClient(srv.URL)
	results := client.Search(context.Background(), "moby dick")

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestOpenLibraryClient_GetWork(t *testing.T) {
	tests := []struct {
		name            string
		body            string
		wantDescription string
	}{
		{
			name:            "description as plain string",
			body:            `{"title": "Moby Dick", "description": "A whale of a tale.", "covers": [1, 2]}`,
			wantDescription: "A whale of a tale.",
		},
		{
			name:            "description as typed object",
			body:            `{"title": "Moby Dick", "description": {"type": "/type/text", "value": "A whale of a tale."}, "covers": [1, 2]}`,
			wantDescription: "A whale of a tale.",
		},
		{
			name:            "missing description",
			body:            `{"title": "Moby Dick", "covers": [1, 2]}`,
			wantDescription: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/works/OL102749W.json", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewOpenLibraryClient(srv.URL)
			work := client.GetWork(context.Background(), "OL102749W")

			require.NotNil(t, work)
			assert.Equal(t, "OL102749W", work.OLID)
			assert.Equal(t, "Moby Dick", work.Title)
			assert.Equal(t, tt.wantDescription, work.Description)
			assert.Equal(t, []int{1, 2}, work.CoverIDs)
		})
	}
}

func TestOpenLibraryClient_GetWork_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewOpenLibraryClient(srv.URL)

	assert.Nil(t, client.GetWork(context.Background(), "OL102749W"))
}

func TestOpenLibraryClient_LookupISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "ISBN:9780142437247", r.URL.Query().Get("bibkeys"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ISBN:9780142437247": {
				"title": "Moby Dick",
				"authors": [{"name": "Herman Melville"}],
				"cover": {"medium": "https://covers.openlibrary.org/b/id/5551452-M.jpg"}
			}
		}`))
	}))
	defer srv.Close()

	client := NewOpenLibraryClient(srv.URL)
	volume := client.LookupISBN(context.Background(), "978-0-14-243724-7")

	require.NotNil(t, volume)
	assert.Equal(t, "ISBN:9780142437247", volume.ID)
	assert.Equal(t, "Moby Dick", volume.Title)
	assert.Equal(t, []string{"Herman Melville"}, volume.Authors)
	assert.Equal(t, "https://covers.openlibrary.org/b/id/5551452-M.jpg", volume.ThumbnailURL)
}

func TestOpenLibraryClient_LookupISBN_UnknownISBN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewOpenLibraryClient(srv.URL)

	assert.Nil(t, client.LookupISBN(context.Background(), "0000000000"))
}
