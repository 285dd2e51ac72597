package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddBookRequest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Authors      []string `json:"authors"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

func (req *AddBookRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ID, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 500)),
	)
}

type ChapterItem struct {
	Name         string `json:"name"`
	ChapterIndex int    `json:"chapter_index"`
}

type ReplaceChaptersRequest struct {
	Chapters []ChapterItem `json:"chapters"`
}

func (req *ReplaceChaptersRequest) Validate() error {
	for _, c := range req.Chapters {
		err := validation.ValidateStruct(
			&c,
			validation.Field(&c.Name, validation.Required, validation.Length(1, 500)),
			validation.Field(&c.ChapterIndex, validation.Min(0)),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

type RenameChapterRequest struct {
	Name string `json:"name"`
}

func (req *RenameChapterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 500)),
	)
}
