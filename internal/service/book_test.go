package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccajr2/reading-rewards/internal/domain"
	"github.com/mccajr2/reading-rewards/internal/repository"
)

type fakeBookRepo struct {
	books    map[string]domain.Book
	chapters map[string][]domain.Chapter
	upserted []domain.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{
		books:    make(map[string]domain.Book),
		chapters: make(map[string][]domain.Chapter),
	}
}

func (f *fakeBookRepo) Upsert(_ context.Context, book domain.Book) (domain.Book, error) {
	f.books[book.ID] = book
	f.upserted = append(f.upserted, book)

	return book, nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id string) (domain.Book, error) {
	book, ok := f.books[id]
	if !ok {
		return domain.Book{}, repository.ErrBookNotFound
	}

	return book, nil
}

func (f *fakeBookRepo) ReplaceChapters(_ context.Context, bookID string, chapters []domain.Chapter) ([]domain.Chapter, error) {
	f.chapters[bookID] = chapters

	return chapters, nil
}

func (f *fakeBookRepo) FindChapters(_ context.Context, bookID string) ([]domain.Chapter, error) {
	return f.chapters[bookID], nil
}

func (f *fakeBookRepo) RenameChapter(_ context.Context, id uint, name string) (domain.Chapter, error) {
	for bookID, chapters := range f.chapters {
		for i, c := range chapters {
			if c.ID == id {
				f.chapters[bookID][i].Name = name

				return f.chapters[bookID][i], nil
			}
		}
	}

	return domain.Chapter{}, repository.ErrChapterNotFound
}

type fakeSessionRepo struct {
	sessions     []domain.BookRead
	books        []domain.Book
	chapterReads map[uint][]domain.ChapterRead
	history      []domain.HistoryEntry

	lastEarnAmount float64
	deletedIDs     []uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		chapterReads: make(map[uint][]domain.ChapterRead),
	}
}

func (f *fakeSessionRepo) addSession(session domain.BookRead, book domain.Book) {
	f.sessions = append(f.sessions, session)
	f.books = append(f.books, book)
}

func (f *fakeSessionRepo) Start(_ context.Context, userID uint, bookID string, start time.Time) (domain.BookRead, error) {
	session := domain.BookRead{
		ID:         uint(len(f.sessions) + 1),
		BookID:     bookID,
		UserID:     userID,
		StartDate:  start,
		InProgress: true,
	}
	f.sessions = append(f.sessions, session)
	f.books = append(f.books, domain.Book{ID: bookID})

	return session, nil
}

func (f *fakeSessionRepo) FindByID(_ context.Context, id uint) (domain.BookRead, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}

	return domain.BookRead{}, repository.ErrSessionNotFound
}

func (f *fakeSessionRepo) FindByUserID(_ context.Context, userID uint) ([]domain.BookRead, []domain.Book, error) {
	var sessions []domain.BookRead
	var books []domain.Book
	for i, s := range f.sessions {
		if s.UserID == userID {
			sessions = append(sessions, s)
			books = append(books, f.books[i])
		}
	}

	return sessions, books, nil
}

func (f *fakeSessionRepo) FinishInProgress(_ context.Context, userID uint, bookID string, end time.Time) error {
	finished := false
	for i, s := range f.sessions {
		if s.UserID == userID && s.BookID == bookID && s.InProgress {
			f.sessions[i].EndDate = &end
			f.sessions[i].InProgress = false
			finished = true
		}
	}
	if !finished {
		return repository.ErrSessionNotFound
	}

	return nil
}

func (f *fakeSessionRepo) FindChapterReads(_ context.Context, bookReadID uint) ([]domain.ChapterRead, error) {
	return f.chapterReads[bookReadID], nil
}

func (f *fakeSessionRepo) History(_ context.Context, userID uint) ([]domain.HistoryEntry, error) {
	entries := make([]domain.HistoryEntry, 0)
	for _, e := range f.history {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}

	return entries, nil
}

func (f *fakeSessionRepo) MarkChapterRead(_ context.Context, read domain.ChapterRead, earnAmount float64) (domain.ChapterRead, error) {
	read.ID = uint(len(f.chapterReads[read.BookReadID]) + 1)
	f.chapterReads[read.BookReadID] = append(f.chapterReads[read.BookReadID], read)
	f.lastEarnAmount = earnAmount

	return read, nil
}

func (f *fakeSessionRepo) UnmarkChapterRead(_ context.Context, bookReadID, chapterID, _ uint) error {
	reads := f.chapterReads[bookReadID]
	for i := len(reads) - 1; i >= 0; i-- {
		if reads[i].ChapterID == chapterID {
			f.chapterReads[bookReadID] = append(reads[:i], reads[i+1:]...)

			return nil
		}
	}

	return repository.ErrChapterReadNotFound
}

func (f *fakeSessionRepo) Delete(_ context.Context, bookReadID uint) error {
	f.deletedIDs = append(f.deletedIDs, bookReadID)

	return nil
}

func TestBookService_ListBooks(t *testing.T) {
	sessions := newFakeSessionRepo()
	moby := domain.Book{ID: "OL1W", Title: "Moby Dick", Authors: []string{"Herman Melville"}}
	hatchet := domain.Book{ID: "OL2W", Title: "Hatchet", Authors: []string{"Gary Paulsen"}}
	done := time.Now()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, EndDate: &done}, moby)
	sessions.addSession(domain.BookRead{ID: 2, BookID: "OL1W", UserID: 7, InProgress: true}, moby)
	sessions.addSession(domain.BookRead{ID: 3, BookID: "OL2W", UserID: 7, EndDate: &done}, hatchet)

	svc := NewBookService(newFakeBookRepo(), sessions)

	shelf, err := svc.ListBooks(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, shelf, 2)
	assert.Equal(t, "Moby Dick", shelf[0].Title)
	assert.Equal(t, 2, shelf[0].ReadCount)
	assert.True(t, shelf[0].InProgress)
	assert.Equal(t, "Hatchet", shelf[1].Title)
	assert.Equal(t, 1, shelf[1].ReadCount)
	assert.False(t, shelf[1].InProgress)
}

func TestBookService_AddBook(t *testing.T) {
	books := newFakeBookRepo()
	sessions := newFakeSessionRepo()
	svc := NewBookService(books, sessions)

	book, session, err := svc.AddBook(context.Background(), 7, domain.Book{
		ID:    "OL1W",
		Title: "Moby Dick",
	})

	require.NoError(t, err)
	assert.Equal(t, "OL1W", book.ID)
	assert.Len(t, books.upserted, 1)
	assert.Equal(t, "OL1W", session.BookID)
	assert.Equal(t, uint(7), session.UserID)
	assert.True(t, session.InProgress)
}

func TestBookService_FinishBook(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, InProgress: true}, domain.Book{ID: "OL1W"})
	svc := NewBookService(newFakeBookRepo(), sessions)

	err := svc.FinishBook(context.Background(), 7, "OL1W")

	require.NoError(t, err)
	assert.False(t, sessions.sessions[0].InProgress)
	assert.NotNil(t, sessions.sessions[0].EndDate)
}

func TestBookService_FinishBook_NoOpenSession(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(), newFakeSessionRepo())

	err := svc.FinishBook(context.Background(), 7, "OL1W")

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBookService_RereadBook(t *testing.T) {
	books := newFakeBookRepo()
	books.books["OL1W"] = domain.Book{ID: "OL1W", Title: "Moby Dick"}
	sessions := newFakeSessionRepo()
	svc := NewBookService(books, sessions)

	session, err := svc.RereadBook(context.Background(), 7, "OL1W")

	require.NoError(t, err)
	assert.Equal(t, "OL1W", session.BookID)
	assert.True(t, session.InProgress)
}

func TestBookService_RereadBook_UnknownBook(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(), newFakeSessionRepo())

	_, err := svc.RereadBook(context.Background(), 7, "nope")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_ReplaceChapters_UnknownBook(t *testing.T) {
	svc := NewBookService(newFakeBookRepo(), newFakeSessionRepo())

	_, err := svc.ReplaceChapters(context.Background(), "nope", []domain.Chapter{{Name: "One"}})

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_MarkChapterRead(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, InProgress: true}, domain.Book{ID: "OL1W"})
	svc := NewBookService(newFakeBookRepo(), sessions)

	read, err := svc.MarkChapterRead(context.Background(), 7, 1, 42)

	require.NoError(t, err)
	assert.Equal(t, uint(42), read.ChapterID)
	assert.Equal(t, uint(7), read.UserID)
	assert.False(t, read.CompletionDate.IsZero())
	assert.Equal(t, 1.0, sessions.lastEarnAmount)
}

func TestBookService_MarkChapterRead_OtherUsersSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 99, InProgress: true}, domain.Book{ID: "OL1W"})
	svc := NewBookService(newFakeBookRepo(), sessions)

	_, err := svc.MarkChapterRead(context.Background(), 7, 1, 42)

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, sessions.chapterReads[1])
}

func TestBookService_UnmarkChapterRead(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, InProgress: true}, domain.Book{ID: "OL1W"})
	sessions.chapterReads[1] = []domain.ChapterRead{{ID: 1, BookReadID: 1, ChapterID: 42, UserID: 7}}
	svc := NewBookService(newFakeBookRepo(), sessions)

	err := svc.UnmarkChapterRead(context.Background(), 7, 1, 42)

	require.NoError(t, err)
	assert.Empty(t, sessions.chapterReads[1])
}

func TestBookService_UnmarkChapterRead_NothingLogged(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, InProgress: true}, domain.Book{ID: "OL1W"})
	svc := NewBookService(newFakeBookRepo(), sessions)

	err := svc.UnmarkChapterRead(context.Background(), 7, 1, 42)

	assert.ErrorIs(t, err, ErrChapterReadNotFound)
}

func TestBookService_InProgressSessions(t *testing.T) {
	sessions := newFakeSessionRepo()
	moby := domain.Book{ID: "OL1W", Title: "Moby Dick", Authors: []string{"Herman Melville"}}
	done := time.Now()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 7, EndDate: &done}, moby)
	sessions.addSession(domain.BookRead{ID: 2, BookID: "OL1W", UserID: 7, InProgress: true}, moby)
	sessions.chapterReads[2] = []domain.ChapterRead{
		{ID: 1, BookReadID: 2, ChapterID: 10, UserID: 7},
		{ID: 2, BookReadID: 2, ChapterID: 11, UserID: 7},
		{ID: 3, BookReadID: 2, ChapterID: 10, UserID: 7},
	}
	svc := NewBookService(newFakeBookRepo(), sessions)

	progress, err := svc.InProgressSessions(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, uint(2), progress[0].ID)
	assert.Equal(t, "Moby Dick", progress[0].Title)
	assert.Equal(t, 2, progress[0].ReadCount)
	assert.Equal(t, []uint{10, 11}, progress[0].ReadChapterIDs)
}

func TestBookService_History_OnlyOwnCompletions(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.history = []domain.HistoryEntry{
		{ChapterRead: domain.ChapterRead{ID: 3, UserID: 7}, ChapterName: "Loomings", BookTitle: "Moby Dick"},
		{ChapterRead: domain.ChapterRead{ID: 2, UserID: 99}, ChapterName: "Other Kid's Chapter"},
		{ChapterRead: domain.ChapterRead{ID: 1, UserID: 7}, ChapterName: "The Carpet-Bag", BookTitle: "Moby Dick"},
	}
	svc := NewBookService(newFakeBookRepo(), sessions)

	entries, err := svc.History(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Loomings", entries[0].ChapterName)
	assert.Equal(t, "The Carpet-Bag", entries[1].ChapterName)
}

func TestBookService_DeleteSession_OwnershipEnforced(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.addSession(domain.BookRead{ID: 1, BookID: "OL1W", UserID: 99}, domain.Book{ID: "OL1W"})
	svc := NewBookService(newFakeBookRepo(), sessions)

	err := svc.DeleteSession(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, sessions.deletedIDs)
}
