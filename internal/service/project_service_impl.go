package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ProjectCollection is the storage key of the project collection.
const ProjectCollection = "projects"

// ProjectServiceImpl は ProjectService の実装
type ProjectServiceImpl struct {
	projects *repository.Collection[model.Project, int64]
}

// NewProjectService は ProjectServiceImpl を生成する（DI: Store を注入）
func NewProjectService(store *repository.Store) ProjectService {
	id := func(p model.Project) int64 { return p.ID }
	return &ProjectServiceImpl{
		projects: repository.NewCollection(store, repository.Schema[model.Project, int64]{
			Name:   ProjectCollection,
			ID:     id,
			SetID:  func(p *model.Project, v int64) { p.ID = v },
			NextID: repository.SequentialID(id),
		}),
	}
}

// List はプロジェクト一覧を保存順で返す。featuredOnly の場合は注目プロジェクトのみ
func (s *ProjectServiceImpl) List(ctx context.Context, featuredOnly bool) (repository.Snapshot[model.Project], error) {
	snap, err := s.projects.List(ctx)
	if err != nil || !featuredOnly {
		return snap, err
	}
	featured := make([]model.Project, 0, len(snap.Items))
	for _, p := range snap.Items {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	snap.Items = featured
	return snap, nil
}

// GetByID はプロジェクトを 1 件返す。存在しない場合は repository.ErrNotFound
func (s *ProjectServiceImpl) GetByID(ctx context.Context, id int64) (model.Project, error) {
	return s.projects.Get(ctx, id)
}

// Create はプロジェクトを作成する
func (s *ProjectServiceImpl) Create(ctx context.Context, project model.Project) (model.Project, error) {
	project.Tags = model.NormalizeTags(project.Tags)
	return s.projects.Create(ctx, project)
}

// Update はパッチで指定されたフィールドのみ更新する
func (s *ProjectServiceImpl) Update(ctx context.Context, id int64, patch model.ProjectPatch) (model.Project, error) {
	return s.projects.Update(ctx, id, func(p *model.Project, _ []model.Project) error {
		patch.Apply(p)
		return nil
	})
}

// Delete はプロジェクトを削除する
func (s *ProjectServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.projects.Remove(ctx, id)
}

// Replace はプロジェクト一覧を丸ごと置き換える（管理画面の並べ替え・一括編集）
func (s *ProjectServiceImpl) Replace(ctx context.Context, projects []model.Project, version string) (string, error) {
	for i := range projects {
		projects[i].Tags = model.NormalizeTags(projects[i].Tags)
	}
	return s.projects.Replace(ctx, projects, version)
}
