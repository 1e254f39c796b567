package service

import (
	"context"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// CommentCollection is the storage key of the comment collection.
const CommentCollection = "comments"

// CommentService はコメントに関するビジネスロジックのインターフェース
type CommentService interface {
	// List はコメントを保存順で返す。postID が空でなければその記事のコメントのみ
	List(ctx context.Context, postID string) ([]model.Comment, error)
	Create(ctx context.Context, comment model.Comment) (model.Comment, error)
	Delete(ctx context.Context, id int64) error
}

// CommentServiceImpl は CommentService の実装
type CommentServiceImpl struct {
	comments *repository.Collection[model.Comment, int64]
	now      func() time.Time
}

// NewCommentService は CommentServiceImpl を生成する
func NewCommentService(store *repository.Store) CommentService {
	return newCommentService(store, time.Now)
}

func newCommentService(store *repository.Store, now func() time.Time) *CommentServiceImpl {
	id := func(c model.Comment) int64 { return c.ID }
	return &CommentServiceImpl{
		comments: repository.NewCollection(store, repository.Schema[model.Comment, int64]{
			Name:   CommentCollection,
			ID:     id,
			SetID:  func(c *model.Comment, v int64) { c.ID = v },
			NextID: repository.TimestampID(id, now),
		}),
		now: now,
	}
}

func (s *CommentServiceImpl) List(ctx context.Context, postID string) ([]model.Comment, error) {
	snap, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	if postID == "" {
		return snap.Items, nil
	}
	out := make([]model.Comment, 0, len(snap.Items))
	for _, c := range snap.Items {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Create はコメントを追加する。ID と日時はサーバー側で決める
func (s *CommentServiceImpl) Create(ctx context.Context, comment model.Comment) (model.Comment, error) {
	comment.Date = s.now().UTC()
	return s.comments.Create(ctx, comment)
}

func (s *CommentServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.comments.Remove(ctx, id)
}
