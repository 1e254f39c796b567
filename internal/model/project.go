package model

// Project はポートフォリオに掲載するプロジェクト
type Project struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	TitleTR       string   `json:"title_tr,omitempty"`
	Description   string   `json:"description"`
	DescriptionTR string   `json:"description_tr,omitempty"`
	Tags          []string `json:"tags"`
	ImageURL      string   `json:"imageUrl"`
	DemoURL       string   `json:"demoUrl,omitempty"`
	RepoURL       string   `json:"repoUrl,omitempty"`
	Featured      bool     `json:"featured"`
}

// ProjectPatch holds the fields that can be updated on a project.
type ProjectPatch struct {
	Title         *string   `json:"title"`
	TitleTR       *string   `json:"title_tr"`
	Description   *string   `json:"description"`
	DescriptionTR *string   `json:"description_tr"`
	Tags          *[]string `json:"tags"`
	ImageURL      *string   `json:"imageUrl"`
	DemoURL       *string   `json:"demoUrl"`
	RepoURL       *string   `json:"repoUrl"`
	Featured      *bool     `json:"featured"`
}

// Apply overwrites the fields of p that are set in the patch.
func (pt ProjectPatch) Apply(p *Project) {
	setString(&p.Title, pt.Title)
	setString(&p.TitleTR, pt.TitleTR)
	setString(&p.Description, pt.Description)
	setString(&p.DescriptionTR, pt.DescriptionTR)
	if pt.Tags != nil {
		p.Tags = NormalizeTags(*pt.Tags)
	}
	setString(&p.ImageURL, pt.ImageURL)
	setString(&p.DemoURL, pt.DemoURL)
	setString(&p.RepoURL, pt.RepoURL)
	if pt.Featured != nil {
		p.Featured = *pt.Featured
	}
}
