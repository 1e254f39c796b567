package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source はコレクションを読み出した層を表す
type Source string

const (
	SourceRemote Source = "remote"
	SourceFile   Source = "file"
)

// Store はリモート KV 層とファイル層の 2 層構成で読み書きを行う。
// 読み込みはリモート優先でファイルにフォールバックし、書き込みは両層に独立して行う。
type Store struct {
	remote        Backend
	file          Backend
	remoteTimeout time.Duration
}

// NewStore は Store を生成する。remote / file のどちらかは nil でもよいが、両方 nil は不可。
func NewStore(remote, file Backend, remoteTimeout time.Duration) (*Store, error) {
	if remote == nil && file == nil {
		return nil, errors.New("store: at least one backend is required")
	}
	return &Store{remote: remote, file: file, remoteTimeout: remoteTimeout}, nil
}

// Tier は層の識別名と Backend の組
type Tier struct {
	Source  Source
	Backend Backend
}

// Tiers は設定済みの層を優先順に返す
func (s *Store) Tiers() []Tier {
	var tiers []Tier
	if s.remote != nil {
		tiers = append(tiers, Tier{Source: SourceRemote, Backend: s.remote})
	}
	if s.file != nil {
		tiers = append(tiers, Tier{Source: SourceFile, Backend: s.file})
	}
	return tiers
}

// Loaded は Load の結果
type Loaded struct {
	Data   []byte
	Source Source
}

// Load は key のデータを読み出し accept に渡す。
//
// リモートの値が存在し null でなく accept が成功すればそれを返す。リモートの失敗・
// デコード失敗・空の値はファイル層にフォールバックする。ファイルが存在しない場合は
// empty で初期化（ベストエフォート）して empty を返す。どの層からもデータを得られ
// なかった場合は ErrStoreUnavailable を返す。
func (s *Store) Load(ctx context.Context, key string, empty []byte, accept func([]byte) error) (Loaded, error) {
	var remoteErr error
	if s.remote != nil {
		data, err := s.getRemote(ctx, key)
		switch {
		case err == nil && !isNull(data):
			if err := accept(data); err != nil {
				remoteErr = fmt.Errorf("decode: %w", err)
				break
			}
			return Loaded{Data: data, Source: SourceRemote}, nil
		case err == nil, errors.Is(err, ErrKeyNotFound):
			// リモートが空なのは失敗ではない
		default:
			remoteErr = err
		}
		if remoteErr != nil {
			slog.Warn("remote store unavailable, falling back to file",
				"key", key, "backend", s.remote.Name(), "error", remoteErr)
		}
	}

	if s.file == nil {
		if remoteErr != nil {
			return Loaded{}, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, key, remoteErr)
		}
		if err := accept(empty); err != nil {
			return Loaded{}, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, key, err)
		}
		return Loaded{Data: empty, Source: SourceRemote}, nil
	}

	data, err := s.file.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		if err := s.file.Set(ctx, key, empty); err != nil {
			slog.Warn("could not initialize collection file", "key", key, "error", err)
		}
		data, err = empty, nil
	}
	if err == nil {
		err = accept(data)
	}
	if err != nil {
		return Loaded{}, fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, key, errors.Join(remoteErr, err))
	}
	return Loaded{Data: data, Source: SourceFile}, nil
}

// Current は指定した層の現在の値を返す（未保存・null の場合は empty）
func (s *Store) Current(ctx context.Context, key string, src Source, empty []byte) ([]byte, error) {
	var data []byte
	var err error
	switch {
	case src == SourceRemote && s.remote != nil:
		data, err = s.getRemote(ctx, key)
	case src == SourceFile && s.file != nil:
		data, err = s.file.Get(ctx, key)
	default:
		return empty, nil
	}
	if errors.Is(err, ErrKeyNotFound) || (err == nil && isNull(data)) {
		return empty, nil
	}
	return data, err
}

// Save は両層へ独立に書き込む。どちらか一方が成功すれば成功とし、
// 両方失敗した場合のみ ErrStorageExhausted を返す。
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	var remoteErr, fileErr error
	var g errgroup.Group
	if s.remote != nil {
		g.Go(func() error {
			remoteErr = s.setRemote(ctx, key, data)
			return nil
		})
	}
	if s.file != nil {
		g.Go(func() error {
			fileErr = s.file.Set(ctx, key, data)
			return nil
		})
	}
	_ = g.Wait()

	remoteOK := s.remote != nil && remoteErr == nil
	fileOK := s.file != nil && fileErr == nil
	if !remoteOK && !fileOK {
		slog.Error("all storage tiers rejected write", "key", key, "remote_error", remoteErr, "file_error", fileErr)
		return fmt.Errorf("%w: %s: %w", ErrStorageExhausted, key, errors.Join(remoteErr, fileErr))
	}
	if remoteErr != nil {
		slog.Warn("remote store write failed, saved to file only", "key", key, "backend", s.remote.Name(), "error", remoteErr)
	}
	if fileErr != nil {
		slog.Warn("file write failed, saved to remote only", "key", key, "error", fileErr)
	}
	return nil
}

func (s *Store) getRemote(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := s.withRemoteTimeout(ctx)
	defer cancel()
	return s.remote.Get(ctx, key)
}

func (s *Store) setRemote(ctx context.Context, key string, data []byte) error {
	ctx, cancel := s.withRemoteTimeout(ctx)
	defer cancel()
	return s.remote.Set(ctx, key, data)
}

func (s *Store) withRemoteTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.remoteTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.remoteTimeout)
}

func isNull(data []byte) bool {
	t := bytes.TrimSpace(data)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Version はデータのバージョンスタンプ（SHA-256 の先頭 8 バイト）を返す
func Version(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
