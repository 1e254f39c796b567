package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Document は単一の JSON オブジェクトを Store 経由で保存する（訪問者統計など）
type Document[T any] struct {
	store *Store
	name  string
	init  T
	mu    sync.Mutex
}

// NewDocument は Document を生成する。init は未保存時の初期値。
func NewDocument[T any](store *Store, name string, init T) *Document[T] {
	return &Document[T]{store: store, name: name, init: init}
}

// Get は現在の値を返す。どの層も読めない場合は初期値を返す。
func (d *Document[T]) Get(ctx context.Context) (T, error) {
	v, err := d.load(ctx)
	if errors.Is(err, ErrStoreUnavailable) {
		slog.Error("document unreadable, serving initial value", "document", d.name, "error", err)
		return d.init, nil
	}
	return v, err
}

// Update は mutate を適用して保存し、更新後の値を返す
func (d *Document[T]) Update(ctx context.Context, mutate func(*T)) (T, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.load(ctx)
	if err != nil {
		return d.init, err
	}
	mutate(&v)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return d.init, fmt.Errorf("encode %s: %w", d.name, err)
	}
	if err := d.store.Save(ctx, d.name, data); err != nil {
		return d.init, err
	}
	return v, nil
}

func (d *Document[T]) load(ctx context.Context) (T, error) {
	empty, err := json.Marshal(d.init)
	if err != nil {
		return d.init, fmt.Errorf("encode %s: %w", d.name, err)
	}
	var v T
	_, err = d.store.Load(ctx, d.name, empty, func(data []byte) error {
		v = d.init
		return json.Unmarshal(data, &v)
	})
	return v, err
}
