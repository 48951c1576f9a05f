package continuity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound は永続化された継続性レコードが存在しないことを示します。
var ErrNotFound = errors.New("continuity record not found")

// Backend は継続性レコードの永続化先です。保存形式はバイト列として扱います。
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// FileBackend はローカルファイルに JSON として保存する Backend です。
type FileBackend struct {
	path string
}

// NewFileBackend は指定したパスを保存先とする FileBackend を生成します。
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load implements Backend.
func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("継続性ファイルの読み込みに失敗しました (%s): %w", b.path, err)
	}
	return data, nil
}

// Save implements Backend. 一時ファイルに書いてから置き換えます。
func (b *FileBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("継続性ファイルのディレクトリ作成に失敗しました: %w", err)
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("継続性ファイルの書き込みに失敗しました (%s): %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("継続性ファイルの置き換えに失敗しました (%s): %w", b.path, err)
	}
	return nil
}

// Delete implements Backend. ファイルがなければ何もしません。
func (b *FileBackend) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("継続性ファイルの削除に失敗しました (%s): %w", b.path, err)
	}
	return nil
}

// MemoryBackend はプロセス内に保持する Backend です。テストや一時的な実行に使います。
type MemoryBackend struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryBackend は空の MemoryBackend を生成します。
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load implements Backend.
func (b *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b.data...), nil
}

// Save implements Backend.
func (b *MemoryBackend) Save(_ context.Context, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append([]byte(nil), data...)
	return nil
}

// Delete implements Backend.
func (b *MemoryBackend) Delete(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = nil
	return nil
}
