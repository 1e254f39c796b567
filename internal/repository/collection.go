package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var emptyCollection = []byte("[]")

// Schema はコレクションのレコードの識別方法を定義する
type Schema[T any, K comparable] struct {
	// Name は保存キー兼ファイル名
	Name   string
	ID     func(T) K
	SetID  func(*T, K)
	NextID func(items []T) K
}

// Snapshot は 1 つの層から読み出したコレクションとそのバージョン
type Snapshot[T any] struct {
	Items   []T
	Version string
	source  Source
}

// Collection は Store 経由で永続化される名前付きのレコード列。
// 読み込み→変更→書き込みはコレクション単位で直列化し、読み込み後に
// 読み出し元の層が変わっていた場合は ErrConflict を返す。
type Collection[T any, K comparable] struct {
	store  *Store
	schema Schema[T, K]
	mu     sync.Mutex
}

// NewCollection は Collection を生成する
func NewCollection[T any, K comparable](store *Store, schema Schema[T, K]) *Collection[T, K] {
	return &Collection[T, K]{store: store, schema: schema}
}

// Name はコレクション名を返す
func (c *Collection[T, K]) Name() string { return c.schema.Name }

// List は現在のコレクションを返す。どの層も読めない場合はログを出し、
// エラーにせずバージョンなしの空のスナップショットを返す。
func (c *Collection[T, K]) List(ctx context.Context) (Snapshot[T], error) {
	snap, err := c.load(ctx)
	if errors.Is(err, ErrStoreUnavailable) {
		slog.Error("collection unreadable, serving empty list", "collection", c.schema.Name, "error", err)
		return Snapshot[T]{Items: []T{}}, nil
	}
	return snap, err
}

// Get は id に一致するレコードを返す。どの層も読めない場合は ErrStoreUnavailable を返す
func (c *Collection[T, K]) Get(ctx context.Context, id K) (T, error) {
	var zero T
	snap, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range snap.Items {
		if c.schema.ID(item) == id {
			return item, nil
		}
	}
	return zero, ErrNotFound
}

// Create は draft に新しい ID を割り当てて末尾に追加し、保存する
func (c *Collection[T, K]) Create(ctx context.Context, draft T) (T, error) {
	return c.CreateWith(ctx, draft, nil)
}

// CreateWith は ID 割り当て前に、ロックを保持したまま既存レコードに対して
// check を実行する Create
func (c *Collection[T, K]) CreateWith(ctx context.Context, draft T, check func(items []T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	snap, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	if check != nil {
		if err := check(snap.Items); err != nil {
			return zero, err
		}
	}
	c.schema.SetID(&draft, c.schema.NextID(snap.Items))

	items := make([]T, 0, len(snap.Items)+1)
	items = append(items, snap.Items...)
	items = append(items, draft)
	if _, err := c.save(ctx, snap, items); err != nil {
		return zero, err
	}
	return draft, nil
}

// Update は id のレコードに mutate を適用して保存する。
// mutate には他のレコードも渡され、レコード間の制約（slug の一意性など）を検査できる。
// mutate で ID を変更することはできない。
func (c *Collection[T, K]) Update(ctx context.Context, id K, mutate func(rec *T, others []T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	snap, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	idx := -1
	for i, item := range snap.Items {
		if c.schema.ID(item) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, ErrNotFound
	}

	others := make([]T, 0, len(snap.Items)-1)
	others = append(others, snap.Items[:idx]...)
	others = append(others, snap.Items[idx+1:]...)

	updated := snap.Items[idx]
	if err := mutate(&updated, others); err != nil {
		return zero, err
	}
	c.schema.SetID(&updated, id)

	items := make([]T, len(snap.Items))
	copy(items, snap.Items)
	items[idx] = updated
	if _, err := c.save(ctx, snap, items); err != nil {
		return zero, err
	}
	return updated, nil
}

// Remove は id のレコードを削除する。存在しない場合は ErrNotFound
func (c *Collection[T, K]) Remove(ctx context.Context, id K) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return err
	}
	items := make([]T, 0, len(snap.Items))
	for _, item := range snap.Items {
		if c.schema.ID(item) != id {
			items = append(items, item)
		}
	}
	if len(items) == len(snap.Items) {
		return ErrNotFound
	}
	_, err = c.save(ctx, snap, items)
	return err
}

// Replace はコレクション全体を書き換える。ID が 0 のレコードには新しい ID を割り当てる。
// version が空でない場合は保存済みコレクションのバージョンと一致しなければならない。
// 書き込んだコレクションのバージョンを返す。
func (c *Collection[T, K]) Replace(ctx context.Context, items []T, version string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	if version != "" && version != snap.Version {
		return "", ErrConflict
	}

	var zeroID K
	known := make([]T, 0, len(items))
	seen := make(map[K]bool, len(items))
	for _, item := range items {
		id := c.schema.ID(item)
		if id == zeroID {
			continue
		}
		if seen[id] {
			return "", fmt.Errorf("%w: %v", ErrDuplicateID, id)
		}
		seen[id] = true
		known = append(known, item)
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.schema.ID(item) == zeroID {
			c.schema.SetID(&item, c.schema.NextID(known))
			known = append(known, item)
		}
		out = append(out, item)
	}

	// バージョンは上で検査済み
	snap.Version = ""
	return c.save(ctx, snap, out)
}

func (c *Collection[T, K]) load(ctx context.Context) (Snapshot[T], error) {
	var items []T
	loaded, err := c.store.Load(ctx, c.schema.Name, emptyCollection, func(data []byte) error {
		items = nil
		return json.Unmarshal(data, &items)
	})
	if err != nil {
		return Snapshot[T]{}, err
	}
	if items == nil {
		items = []T{}
	}
	return Snapshot[T]{Items: items, Version: Version(loaded.Data), source: loaded.Source}, nil
}

func (c *Collection[T, K]) save(ctx context.Context, snap Snapshot[T], items []T) (string, error) {
	if snap.Version != "" {
		current, err := c.store.Current(ctx, c.schema.Name, snap.source, emptyCollection)
		if err == nil && Version(current) != snap.Version {
			return "", ErrConflict
		}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", c.schema.Name, err)
	}
	if err := c.store.Save(ctx, c.schema.Name, data); err != nil {
		return "", err
	}
	return Version(data), nil
}
