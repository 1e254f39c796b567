package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ProjectService はプロジェクトに関するビジネスロジックのインターフェース
type ProjectService interface {
	List(ctx context.Context, featuredOnly bool) (repository.Snapshot[model.Project], error)
	GetByID(ctx context.Context, id int64) (model.Project, error)
	Create(ctx context.Context, project model.Project) (model.Project, error)
	Update(ctx context.Context, id int64, patch model.ProjectPatch) (model.Project, error)
	Delete(ctx context.Context, id int64) error
	// Replace はコレクション全体を置き換え、新しいバージョンを返す
	Replace(ctx context.Context, projects []model.Project, version string) (string, error)
}
