package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/response"
	"github.com/mccajr2/reading-rewards/internal/domain"
)

// The catalog clients degrade to empty results on provider failure, so
// these handlers never surface an upstream error to the page.
type OpenLibraryClient interface {
	Search(ctx context.Context, query string) []domain.WorkSummary
	GetWork(ctx context.Context, olid string) *domain.WorkDetail
	LookupISBN(ctx context.Context, isbn string) *domain.VolumeSummary
}

type GoogleBooksClient interface {
	Search(ctx context.Context, title, author, isbn string) []domain.VolumeSummary
}

type CatalogHandler struct {
	openLibrary OpenLibraryClient
	googleBooks GoogleBooksClient
}

func NewCatalogHandler(openLibrary OpenLibraryClient, googleBooks GoogleBooksClient) *CatalogHandler {
	return &CatalogHandler{
		openLibrary: openLibrary,
		googleBooks: googleBooks,
	}
}

// HandleSearch godoc
// @Summary      Search Open Library works
// @Tags         catalog
// @Produce      json
// @Param        q    query     string  true  "free-text query"
// @Success      200  {array}   domain.WorkSummary
// @Failure      400  {object}  response.Err
// @Router       /catalog/search [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleSearch(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("query parameter 'q' is required")))
		return
	}

	ctx.JSON(http.StatusOK, h.openLibrary.Search(ctx.Request.Context(), query))
}

// HandleLookupISBN godoc
// @Summary      Lookup a book by ISBN
// @Tags         catalog
// @Produce      json
// @Param        isbn  query     string  true  "ISBN-10 or ISBN-13"
// @Success      200   {object}  domain.VolumeSummary
// @Failure      400   {object}  response.Err
// @Router       /catalog/lookup [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleLookupISBN(ctx *gin.Context) {
	isbn := ctx.Query("isbn")
	if isbn == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("query parameter 'isbn' is required")))
		return
	}

	ctx.JSON(http.StatusOK, h.openLibrary.LookupISBN(ctx.Request.Context(), isbn))
}

// HandleGetWork godoc
// @Summary      Get one Open Library work
// @Tags         catalog
// @Produce      json
// @Param        olid  path      string  true  "work OLID"
// @Success      200   {object}  domain.WorkDetail
// @Router       /catalog/works/{olid} [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetWork(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.openLibrary.GetWork(ctx.Request.Context(), ctx.Param("olid")))
}

// HandleSearchVolumes godoc
// @Summary      Search Google Books volumes
// @Tags         catalog
// @Produce      json
// @Param        title   query     string  false  "title terms"
// @Param        author  query     string  false  "author terms"
// @Param        isbn    query     string  false  "ISBN"
// @Success      200     {array}   domain.VolumeSummary
// @Failure      400     {object}  response.Err
// @Router       /catalog/volumes [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleSearchVolumes(ctx *gin.Context) {
	title := ctx.Query("title")
	author := ctx.Query("author")
	isbn := ctx.Query("isbn")
	if title == "" && author == "" && isbn == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("at least one of title, author, isbn is required")))
		return
	}

	ctx.JSON(http.StatusOK, h.googleBooks.Search(ctx.Request.Context(), title, author, isbn))
}
