package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes attachments to disk below dir/tickets.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	folder := filepath.Join(s.dir, ticketFolder)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	target := filepath.Join(folder, name)
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}

	return localRef(name), nil
}

// Delete removes the file behind a reference returned by Save. A missing
// file is not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	prefix := path.Join(URLPrefix, ticketFolder) + "/"
	if !strings.HasPrefix(ref, prefix) {
		return ErrInvalidName
	}
	name, err := cleanName(strings.TrimPrefix(ref, prefix))
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(s.dir, ticketFolder, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}
