package model

import "time"

// Comment はブログ記事へのコメント。PostID は Post.Slug を参照するが整合性は強制しない
type Comment struct {
	ID       int64     `json:"id"`
	PostID   string    `json:"postId"`
	Nickname string    `json:"nickname"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
}
