package service

import (
	"context"
	"regexp"
	"slices"
	"strconv"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// TimelineCollection is the storage key of the timeline collection.
const TimelineCollection = "timeline"

// undatedYear sorts events without a year before every dated event.
const undatedYear = 9999

var yearPattern = regexp.MustCompile(`\d{4}`)

// TimelineService は経歴タイムラインに関するビジネスロジックのインターフェース
type TimelineService interface {
	List(ctx context.Context) (repository.Snapshot[model.TimelineEvent], error)
	Create(ctx context.Context, event model.TimelineEvent) (model.TimelineEvent, error)
	Update(ctx context.Context, id int64, patch model.TimelineEventPatch) (model.TimelineEvent, error)
	Delete(ctx context.Context, id int64) error
	Replace(ctx context.Context, events []model.TimelineEvent, version string) (string, error)
}

// TimelineServiceImpl は TimelineService の実装
type TimelineServiceImpl struct {
	events *repository.Collection[model.TimelineEvent, int64]
}

// NewTimelineService は TimelineServiceImpl を生成する
func NewTimelineService(store *repository.Store) TimelineService {
	id := func(e model.TimelineEvent) int64 { return e.ID }
	return &TimelineServiceImpl{
		events: repository.NewCollection(store, repository.Schema[model.TimelineEvent, int64]{
			Name:   TimelineCollection,
			ID:     id,
			SetID:  func(e *model.TimelineEvent, v int64) { e.ID = v },
			NextID: repository.SequentialID(id),
		}),
	}
}

// List は日付から取り出した年の降順で返す。年が取れないイベントは先頭
func (s *TimelineServiceImpl) List(ctx context.Context) (repository.Snapshot[model.TimelineEvent], error) {
	snap, err := s.events.List(ctx)
	if err != nil {
		return snap, err
	}
	SortTimeline(snap.Items)
	return snap, nil
}

func (s *TimelineServiceImpl) Create(ctx context.Context, event model.TimelineEvent) (model.TimelineEvent, error) {
	return s.events.Create(ctx, event)
}

func (s *TimelineServiceImpl) Update(ctx context.Context, id int64, patch model.TimelineEventPatch) (model.TimelineEvent, error) {
	return s.events.Update(ctx, id, func(e *model.TimelineEvent, _ []model.TimelineEvent) error {
		patch.Apply(e)
		return nil
	})
}

func (s *TimelineServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.events.Remove(ctx, id)
}

func (s *TimelineServiceImpl) Replace(ctx context.Context, events []model.TimelineEvent, version string) (string, error) {
	return s.events.Replace(ctx, events, version)
}

// SortTimeline sorts events by extracted year, newest first. Ties keep their stored order.
func SortTimeline(events []model.TimelineEvent) {
	slices.SortStableFunc(events, func(a, b model.TimelineEvent) int {
		return eventYear(b.Date) - eventYear(a.Date)
	})
}

func eventYear(date string) int {
	m := yearPattern.FindString(date)
	if m == "" {
		return undatedYear
	}
	y, _ := strconv.Atoi(m)
	return y
}
