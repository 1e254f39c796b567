package repository

import (
	"strconv"
	"time"
)

// SequentialID は max(既存 ID)+1 を割り当てる NextID を返す（空の場合は 1）
func SequentialID[T any](id func(T) int64) func([]T) int64 {
	return func(items []T) int64 {
		var highest int64
		for _, item := range items {
			if v := id(item); v > highest {
				highest = v
			}
		}
		return highest + 1
	}
}

// TimestampID は現在時刻（ミリ秒）を ID として割り当てる NextID を返す。
// 既存の最大 ID 以下になる場合は max+1 を使い、重複しないようにする。
func TimestampID[T any](id func(T) int64, now func() time.Time) func([]T) int64 {
	next := SequentialID(id)
	return func(items []T) int64 {
		ts := now().UnixMilli()
		if n := next(items); n > ts {
			return n
		}
		return ts
	}
}

// TimestampStringID は現在時刻（ミリ秒）の文字列を ID として割り当てる NextID を返す。
// 既存 ID と衝突する場合は 1 ずつ進める。
func TimestampStringID[T any](id func(T) string, now func() time.Time) func([]T) string {
	return func(items []T) string {
		used := make(map[string]bool, len(items))
		for _, item := range items {
			used[id(item)] = true
		}
		ts := now().UnixMilli()
		for used[strconv.FormatInt(ts, 10)] {
			ts++
		}
		return strconv.FormatInt(ts, 10)
	}
}
