package model

// Stats is the site-wide visitor counter.
type Stats struct {
	TotalVisitors int64 `json:"totalVisitors"`
	PageViews     int64 `json:"pageViews"`
}
