package model

import "time"

// Prompt は AI プロンプトライブラリの 1 件。ID は作成時刻（ミリ秒）の文字列
type Prompt struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TitleTR       string    `json:"title_tr,omitempty"`
	Description   string    `json:"description"`
	DescriptionTR string    `json:"description_tr,omitempty"`
	Content       string    `json:"content"`
	ContentTR     string    `json:"content_tr,omitempty"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PromptPatch holds the fields that can be updated on a prompt.
type PromptPatch struct {
	Title         *string   `json:"title"`
	TitleTR       *string   `json:"title_tr"`
	Description   *string   `json:"description"`
	DescriptionTR *string   `json:"description_tr"`
	Content       *string   `json:"content"`
	ContentTR     *string   `json:"content_tr"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	ImageURL      *string   `json:"imageUrl"`
}

// Apply overwrites the fields of p that are set in the patch.
func (pt PromptPatch) Apply(p *Prompt) {
	setString(&p.Title, pt.Title)
	setString(&p.TitleTR, pt.TitleTR)
	setString(&p.Description, pt.Description)
	setString(&p.DescriptionTR, pt.DescriptionTR)
	setString(&p.Content, pt.Content)
	setString(&p.ContentTR, pt.ContentTR)
	setString(&p.Category, pt.Category)
	if pt.Tags != nil {
		p.Tags = NormalizeTags(*pt.Tags)
	}
	setString(&p.ImageURL, pt.ImageURL)
}
