package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddBookRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddBookRequest{ID: "OL1W", Title: "Moby Dick"}).Validate())
	assert.Error(t, (&AddBookRequest{Title: "Moby Dick"}).Validate())
	assert.Error(t, (&AddBookRequest{ID: "OL1W"}).Validate())
}

func TestReplaceChaptersRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ReplaceChaptersRequest{}).Validate())
	assert.NoError(t, (&ReplaceChaptersRequest{
		Chapters: []ChapterItem{{Name: "One", ChapterIndex: 0}, {Name: "Two", ChapterIndex: 1}},
	}).Validate())
	assert.Error(t, (&ReplaceChaptersRequest{
		Chapters: []ChapterItem{{Name: ""}},
	}).Validate())
	assert.Error(t, (&ReplaceChaptersRequest{
		Chapters: []ChapterItem{{Name: "One", ChapterIndex: -1}},
	}).Validate())
}

func TestRenameChapterRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RenameChapterRequest{Name: "A Better Name"}).Validate())
	assert.Error(t, (&RenameChapterRequest{}).Validate())
}
