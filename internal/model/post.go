package model

// Post はブログ記事。Slug はルーティングに使うため一意
type Post struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	TitleTR   string `json:"title_tr,omitempty"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	Summary   string `json:"summary"`
	SummaryTR string `json:"summary_tr,omitempty"`
	Content   string `json:"content"`
	ContentTR string `json:"content_tr,omitempty"`
}

// PostPatch holds the fields that can be updated on a post.
type PostPatch struct {
	Slug      *string `json:"slug"`
	Title     *string `json:"title"`
	TitleTR   *string `json:"title_tr"`
	Date      *string `json:"date"`
	Summary   *string `json:"summary"`
	SummaryTR *string `json:"summary_tr"`
	Content   *string `json:"content"`
	ContentTR *string `json:"content_tr"`
}

// Apply overwrites the fields of p that are set in the patch.
func (pt PostPatch) Apply(p *Post) {
	setString(&p.Slug, pt.Slug)
	setString(&p.Title, pt.Title)
	setString(&p.TitleTR, pt.TitleTR)
	setString(&p.Date, pt.Date)
	setString(&p.Summary, pt.Summary)
	setString(&p.SummaryTR, pt.SummaryTR)
	setString(&p.Content, pt.Content)
	setString(&p.ContentTR, pt.ContentTR)
}
