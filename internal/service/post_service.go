package service

import (
	"context"
	"slices"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// PostCollection is the storage key of the blog post collection.
const PostCollection = "posts"

// PostService はブログ記事に関するビジネスロジックのインターフェース
type PostService interface {
	List(ctx context.Context) (repository.Snapshot[model.Post], error)
	GetBySlug(ctx context.Context, slug string) (model.Post, error)
	Create(ctx context.Context, post model.Post) (model.Post, error)
	Update(ctx context.Context, id int64, patch model.PostPatch) (model.Post, error)
	Delete(ctx context.Context, id int64) error
}

// PostServiceImpl は PostService の実装
type PostServiceImpl struct {
	posts *repository.Collection[model.Post, int64]
	now   func() time.Time
}

// NewPostService は PostServiceImpl を生成する
func NewPostService(store *repository.Store) PostService {
	id := func(p model.Post) int64 { return p.ID }
	return &PostServiceImpl{
		posts: repository.NewCollection(store, repository.Schema[model.Post, int64]{
			Name:   PostCollection,
			ID:     id,
			SetID:  func(p *model.Post, v int64) { p.ID = v },
			NextID: repository.SequentialID(id),
		}),
		now: time.Now,
	}
}

// List は記事を日付の新しい順に返す（日付文字列の辞書順）
func (s *PostServiceImpl) List(ctx context.Context) (repository.Snapshot[model.Post], error) {
	snap, err := s.posts.List(ctx)
	if err != nil {
		return snap, err
	}
	slices.SortStableFunc(snap.Items, func(a, b model.Post) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		}
		return 0
	})
	return snap, nil
}

// GetBySlug は slug で記事を取得する
func (s *PostServiceImpl) GetBySlug(ctx context.Context, slug string) (model.Post, error) {
	snap, err := s.posts.List(ctx)
	if err != nil {
		return model.Post{}, err
	}
	for _, p := range snap.Items {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Post{}, repository.ErrNotFound
}

// Create は記事を作成する。日付が空の場合は今日の日付を入れる
func (s *PostServiceImpl) Create(ctx context.Context, post model.Post) (model.Post, error) {
	if post.Date == "" {
		post.Date = s.now().UTC().Format(time.DateOnly)
	}
	return s.posts.CreateWith(ctx, post, func(existing []model.Post) error {
		return checkSlug(post.Slug, existing)
	})
}

// Update はパッチで指定されたフィールドのみ更新する。slug の変更も一意でなければならない
func (s *PostServiceImpl) Update(ctx context.Context, id int64, patch model.PostPatch) (model.Post, error) {
	return s.posts.Update(ctx, id, func(p *model.Post, others []model.Post) error {
		patch.Apply(p)
		return checkSlug(p.Slug, others)
	})
}

// Delete は記事を削除する。コメントは削除しない
func (s *PostServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.posts.Remove(ctx, id)
}

func checkSlug(slug string, others []model.Post) error {
	for _, o := range others {
		if o.Slug == slug {
			return ErrSlugTaken
		}
	}
	return nil
}
