package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// StatsDocument is the storage key of the visitor counter.
const StatsDocument = "stats"

// StatsService は訪問者統計のインターフェース
type StatsService interface {
	Get(ctx context.Context) (model.Stats, error)
	RecordVisit(ctx context.Context) (model.Stats, error)
	RecordPageView(ctx context.Context) (model.Stats, error)
}

// StatsServiceImpl は StatsService の実装
type StatsServiceImpl struct {
	doc *repository.Document[model.Stats]
}

// NewStatsService は StatsServiceImpl を生成する
func NewStatsService(store *repository.Store) StatsService {
	return &StatsServiceImpl{doc: repository.NewDocument(store, StatsDocument, model.Stats{})}
}

func (s *StatsServiceImpl) Get(ctx context.Context) (model.Stats, error) {
	return s.doc.Get(ctx)
}

// RecordVisit は訪問者数を 1 増やす
func (s *StatsServiceImpl) RecordVisit(ctx context.Context) (model.Stats, error) {
	return s.doc.Update(ctx, func(st *model.Stats) { st.TotalVisitors++ })
}

// RecordPageView はページビュー数を 1 増やす
func (s *StatsServiceImpl) RecordPageView(ctx context.Context) (model.Stats, error) {
	return s.doc.Update(ctx, func(st *model.Stats) { st.PageViews++ })
}
