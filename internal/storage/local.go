package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type Local struct {
	BaseDir string
}

func NewLocal(baseDir string) *Local {
	return &Local{BaseDir: baseDir}
}

func (l *Local) Load(ctx context.Context, name string) ([]byte, error) {
	_ = ctx

	data, err := os.ReadFile(filepath.Join(l.BaseDir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (l *Local) Save(ctx context.Context, name string, data []byte) error {
	_ = ctx

	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.BaseDir, filepath.Base(name)), data, 0o644)
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
