package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/request"
	"github.com/mccajr2/reading-rewards/internal/api/handler/v1/response"
	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/service"
)

type BookService interface {
	ListBooks(ctx context.Context, userID uint) ([]domain.BookOverview, error)
	AddBook(ctx context.Context, userID uint, book domain.Book) (domain.Book, domain.BookRead, error)
	FinishBook(ctx context.Context, userID uint, bookID string) error
	RereadBook(ctx context.Context, userID uint, bookID string) (domain.BookRead, error)
	GetChapters(ctx context.Context, bookID string) ([]domain.Chapter, error)
	ReplaceChapters(ctx context.Context, bookID string, chapters []domain.Chapter) ([]domain.Chapter, error)
	RenameChapter(ctx context.Context, chapterID uint, name string) (domain.Chapter, error)
	InProgressSessions(ctx context.Context, userID uint) ([]domain.SessionProgress, error)
	History(ctx context.Context, userID uint) ([]domain.HistoryEntry, error)
	GetChapterReads(ctx context.Context, userID, bookReadID uint) ([]domain.ChapterRead, error)
	MarkChapterRead(ctx context.Context, userID, bookReadID, chapterID uint) (domain.ChapterRead, error)
	UnmarkChapterRead(ctx context.Context, userID, bookReadID, chapterID uint) error
	DeleteSession(ctx context.Context, userID, bookReadID uint) error
}

type BookHandler struct {
	svc  BookService
	uSvc UserService
}

func NewBookHandler(svc BookService, uSvc UserService) *BookHandler {
	return &BookHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetBooks godoc
// @Summary      List the caller's bookshelf
// @Tags         books
// @Produce      json
// @Success      200  {array}   domain.BookOverview
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /books [get]
// @Security BearerAuth
func (h *BookHandler) HandleGetBooks(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	books, err := h.svc.ListBooks(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetBooks -> h.svc.ListBooks -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, books)
}

// HandleAddBook godoc
// @Summary      Save a catalog pick and start reading it
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddBookRequest true "request body"
// @Success      201      {object}  response.AddBookResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /books [post]
// @Security BearerAuth
func (h *BookHandler) HandleAddBook(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	book, session, err := h.svc.AddBook(ctx.Request.Context(), user.ID, domain.Book{
		ID:           req.ID,
		Title:        req.Title,
		Authors:      req.Authors,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleAddBook -> h.svc.AddBook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.AddBookResponse{
		Book:     book,
		BookRead: session,
	})
}

// HandleFinishBook godoc
// @Summary      Finish the in-progress session for a book
// @Tags         books
// @Produce      json
// @Param        bookID  path      string  true  "book id"
// @Success      200     {object}  map[string]string
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /books/{bookID}/finish [post]
// @Security BearerAuth
func (h *BookHandler) HandleFinishBook(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookID := ctx.Param("bookID")
	if err := h.svc.FinishBook(ctx.Request.Context(), user.ID, bookID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("in-progress session", "bookID", bookID))
			return
		}

		err = fmt.Errorf("v1.HandleFinishBook -> h.svc.FinishBook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "finished"})
}

// HandleRereadBook godoc
// @Summary      Start another session for a book already on the shelf
// @Tags         books
// @Produce      json
// @Param        bookID  path      string  true  "book id"
// @Success      201     {object}  domain.BookRead
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /books/{bookID}/reread [post]
// @Security BearerAuth
func (h *BookHandler) HandleRereadBook(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookID := ctx.Param("bookID")
	session, err := h.svc.RereadBook(ctx.Request.Context(), user.ID, bookID)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("book", "bookID", bookID))
			return
		}

		err = fmt.Errorf("v1.HandleRereadBook -> h.svc.RereadBook -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, session)
}

// HandleGetChapters godoc
// @Summary      List a book's chapters in reading order
// @Tags         books
// @Produce      json
// @Param        bookID  path      string  true  "book id"
// @Success      200     {array}   domain.Chapter
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /books/{bookID}/chapters [get]
// @Security BearerAuth
func (h *BookHandler) HandleGetChapters(ctx *gin.Context) {
	chapters, err := h.svc.GetChapters(ctx.Request.Context(), ctx.Param("bookID"))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetChapters -> h.svc.GetChapters -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, chapters)
}

// HandleReplaceChapters godoc
// @Summary      Replace a book's chapter list
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        bookID   path      string  true  "book id"
// @Param        request  body      request.ReplaceChaptersRequest true "request body"
// @Success      200      {array}   domain.Chapter
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /books/{bookID}/chapters [put]
// @Security BearerAuth
func (h *BookHandler) HandleReplaceChapters(ctx *gin.Context) {
	var req request.ReplaceChaptersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	chapters := make([]domain.Chapter, 0, len(req.Chapters))
	for i, c := range req.Chapters {
		index := c.ChapterIndex
		if index == 0 {
			index = i
		}
		chapters = append(chapters, domain.Chapter{
			Name:         c.Name,
			ChapterIndex: index,
		})
	}

	bookID := ctx.Param("bookID")
	saved, err := h.svc.ReplaceChapters(ctx.Request.Context(), bookID, chapters)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("book", "bookID", bookID))
			return
		}

		err = fmt.Errorf("v1.HandleReplaceChapters -> h.svc.ReplaceChapters -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleRenameChapter godoc
// @Summary      Rename a chapter
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        chapterID  path      int  true  "chapter id"
// @Param        request    body      request.RenameChapterRequest true "request body"
// @Success      200        {object}  domain.Chapter
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /chapters/{chapterID} [put]
// @Security BearerAuth
func (h *BookHandler) HandleRenameChapter(ctx *gin.Context) {
	chapterID, ok := parseUintParam(ctx, "chapterID")
	if !ok {
		return
	}

	var req request.RenameChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	chapter, err := h.svc.RenameChapter(ctx.Request.Context(), chapterID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrChapterNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("chapter", "chapterID", chapterID))
			return
		}

		err = fmt.Errorf("v1.HandleRenameChapter -> h.svc.RenameChapter -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, chapter)
}

// HandleGetInProgress godoc
// @Summary      List the caller's in-progress sessions with progress info
// @Tags         bookreads
// @Produce      json
// @Success      200  {array}   domain.SessionProgress
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /bookreads/in-progress [get]
// @Security BearerAuth
func (h *BookHandler) HandleGetInProgress(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessions, err := h.svc.InProgressSessions(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInProgress -> h.svc.InProgressSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleGetHistory godoc
// @Summary      List every chapter the caller completed, newest first
// @Tags         bookreads
// @Produce      json
// @Success      200  {array}   domain.HistoryEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /history [get]
// @Security BearerAuth
func (h *BookHandler) HandleGetHistory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.svc.History(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetHistory -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// HandleGetChapterReads godoc
// @Summary      List the completions logged for one session
// @Tags         bookreads
// @Produce      json
// @Param        bookReadID  path      int  true  "session id"
// @Success      200         {array}   domain.ChapterRead
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookreads/{bookReadID}/chapterreads [get]
// @Security BearerAuth
func (h *BookHandler) HandleGetChapterReads(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookReadID, ok := parseUintParam(ctx, "bookReadID")
	if !ok {
		return
	}

	reads, err := h.svc.GetChapterReads(ctx.Request.Context(), user.ID, bookReadID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reading session", "bookReadID", bookReadID))
			return
		}

		err = fmt.Errorf("v1.HandleGetChapterReads -> h.svc.GetChapterReads -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reads)
}

// HandleMarkChapterRead godoc
// @Summary      Mark a chapter complete within a session
// @Description  Writes the completion and its EARN reward in one transaction.
// @Tags         bookreads
// @Produce      json
// @Param        bookReadID  path      int  true  "session id"
// @Param        chapterID   path      int  true  "chapter id"
// @Success      201         {object}  domain.ChapterRead
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookreads/{bookReadID}/chapters/{chapterID}/read [post]
// @Security BearerAuth
func (h *BookHandler) HandleMarkChapterRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookReadID, ok := parseUintParam(ctx, "bookReadID")
	if !ok {
		return
	}
	chapterID, ok := parseUintParam(ctx, "chapterID")
	if !ok {
		return
	}

	read, err := h.svc.MarkChapterRead(ctx.Request.Context(), user.ID, bookReadID, chapterID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reading session", "bookReadID", bookReadID))
			return
		}

		err = fmt.Errorf("v1.HandleMarkChapterRead -> h.svc.MarkChapterRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, read)
}

// HandleUnmarkChapterRead godoc
// @Summary      Undo a chapter completion
// @Description  Removes the completion together with the EARN reward it minted.
// @Tags         bookreads
// @Produce      json
// @Param        bookReadID  path      int  true  "session id"
// @Param        chapterID   path      int  true  "chapter id"
// @Success      200         {object}  map[string]string
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookreads/{bookReadID}/chapters/{chapterID}/read [delete]
// @Security BearerAuth
func (h *BookHandler) HandleUnmarkChapterRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookReadID, ok := parseUintParam(ctx, "bookReadID")
	if !ok {
		return
	}
	chapterID, ok := parseUintParam(ctx, "chapterID")
	if !ok {
		return
	}

	err := h.svc.UnmarkChapterRead(ctx.Request.Context(), user.ID, bookReadID, chapterID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrChapterReadNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("chapter completion", "chapterID", chapterID))
			return
		}

		err = fmt.Errorf("v1.HandleUnmarkChapterRead -> h.svc.UnmarkChapterRead -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// HandleDeleteBookRead godoc
// @Summary      Delete a session and everything it earned
// @Description  Cascades to the session's completions and their EARN rewards.
// @Tags         bookreads
// @Produce      json
// @Param        bookReadID  path      int  true  "session id"
// @Success      200         {object}  map[string]string
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /bookreads/{bookReadID} [delete]
// @Security BearerAuth
func (h *BookHandler) HandleDeleteBookRead(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	bookReadID, ok := parseUintParam(ctx, "bookReadID")
	if !ok {
		return
	}

	if err := h.svc.DeleteSession(ctx.Request.Context(), user.ID, bookReadID); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reading session", "bookReadID", bookReadID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteBookRead -> h.svc.DeleteSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	parsed, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v", name)))
		return 0, false
	}

	return uint(parsed), true
}
