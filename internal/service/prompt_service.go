package service

import (
	"context"
	"slices"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// PromptCollection is the storage key of the prompt library.
const PromptCollection = "prompts"

// PromptService はプロンプトライブラリのビジネスロジックのインターフェース
type PromptService interface {
	// List は新しい順に返す。category が空でなければそのカテゴリのみ
	List(ctx context.Context, category string) (repository.Snapshot[model.Prompt], error)
	Create(ctx context.Context, prompt model.Prompt) (model.Prompt, error)
	Update(ctx context.Context, id string, patch model.PromptPatch) (model.Prompt, error)
	Delete(ctx context.Context, id string) error
}

// PromptServiceImpl は PromptService の実装
type PromptServiceImpl struct {
	prompts *repository.Collection[model.Prompt, string]
	now     func() time.Time
}

// NewPromptService は PromptServiceImpl を生成する
func NewPromptService(store *repository.Store) PromptService {
	return newPromptService(store, time.Now)
}

func newPromptService(store *repository.Store, now func() time.Time) *PromptServiceImpl {
	id := func(p model.Prompt) string { return p.ID }
	return &PromptServiceImpl{
		prompts: repository.NewCollection(store, repository.Schema[model.Prompt, string]{
			Name:   PromptCollection,
			ID:     id,
			SetID:  func(p *model.Prompt, v string) { p.ID = v },
			NextID: repository.TimestampStringID(id, now),
		}),
		now: now,
	}
}

func (s *PromptServiceImpl) List(ctx context.Context, category string) (repository.Snapshot[model.Prompt], error) {
	snap, err := s.prompts.List(ctx)
	if err != nil {
		return snap, err
	}
	if category != "" {
		filtered := make([]model.Prompt, 0, len(snap.Items))
		for _, p := range snap.Items {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		snap.Items = filtered
	}
	slices.SortStableFunc(snap.Items, func(a, b model.Prompt) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return snap, nil
}

// Create はプロンプトを追加する。作成日時はサーバー側で決める
func (s *PromptServiceImpl) Create(ctx context.Context, prompt model.Prompt) (model.Prompt, error) {
	prompt.CreatedAt = s.now().UTC()
	prompt.Tags = model.NormalizeTags(prompt.Tags)
	return s.prompts.Create(ctx, prompt)
}

func (s *PromptServiceImpl) Update(ctx context.Context, id string, patch model.PromptPatch) (model.Prompt, error) {
	return s.prompts.Update(ctx, id, func(p *model.Prompt, _ []model.Prompt) error {
		patch.Apply(p)
		return nil
	})
}

func (s *PromptServiceImpl) Delete(ctx context.Context, id string) error {
	return s.prompts.Remove(ctx, id)
}
