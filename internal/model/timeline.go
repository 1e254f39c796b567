package model

// TimelineEvent is an entry of the career timeline. Date is free text ("March 2023", "2019 - 2021").
type TimelineEvent struct {
	ID            int64  `json:"id"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	DateTR        string `json:"date_tr,omitempty"`
	Title         string `json:"title"`
	TitleTR       string `json:"title_tr,omitempty"`
	Company       string `json:"company"`
	CompanyTR     string `json:"company_tr,omitempty"`
	Description   string `json:"description"`
	DescriptionTR string `json:"description_tr,omitempty"`
}

// TimelineEventPatch holds the fields that can be updated on a timeline event.
type TimelineEventPatch struct {
	Type          *string `json:"type"`
	Date          *string `json:"date"`
	DateTR        *string `json:"date_tr"`
	Title         *string `json:"title"`
	TitleTR       *string `json:"title_tr"`
	Company       *string `json:"company"`
	CompanyTR     *string `json:"company_tr"`
	Description   *string `json:"description"`
	DescriptionTR *string `json:"description_tr"`
}

// Apply overwrites the fields of e that are set in the patch.
func (pt TimelineEventPatch) Apply(e *TimelineEvent) {
	setString(&e.Type, pt.Type)
	setString(&e.Date, pt.Date)
	setString(&e.DateTR, pt.DateTR)
	setString(&e.Title, pt.Title)
	setString(&e.TitleTR, pt.TitleTR)
	setString(&e.Company, pt.Company)
	setString(&e.CompanyTR, pt.CompanyTR)
	setString(&e.Description, pt.Description)
	setString(&e.DescriptionTR, pt.DescriptionTR)
}
