package vfs

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OSFileSystem 本地文件系统直通后端，所有 VFS 路径映射到 root 之下.
type OSFileSystem struct {
	root string
}

// NewOSFileSystem 创建本地文件系统后端，根目录不存在时自动创建.
func NewOSFileSystem(root string) (*OSFileSystem, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vfs root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create vfs root: %w", err)
	}
	return &OSFileSystem{root: abs}, nil
}

// resolve 将 VFS 路径映射为本地路径，拒绝逃逸根目录.
func (f *OSFileSystem) resolve(path string) (string, error) {
	path = Normalize(path)
	local := filepath.Join(f.root, filepath.FromSlash(path))
	local = filepath.Clean(local)
	if local != f.root && !strings.HasPrefix(local, f.root+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes vfs root: %s", path)
	}
	return local, nil
}

func (f *OSFileSystem) Stat(_ context.Context, path string) (Info, error) {
	local, err := f.resolve(path)
	if err != nil {
		return Info{}, err
	}
	st, err := os.Stat(local)
	if err != nil {
		if os.IsNotExist(err) {
			return Info{}, nil
		}
		return Info{}, err
	}
	return Info{
		Exists:           true,
		IsDirectory:      st.IsDir(),
		Size:             st.Size(),
		ModificationTime: st.ModTime(),
	}, nil
}

func (f *OSFileSystem) Mkdir(_ context.Context, path string, intermediates bool) error {
	local, err := f.resolve(path)
	if err != nil {
		return err
	}
	if intermediates {
		return os.MkdirAll(local, 0o755)
	}
	err = os.Mkdir(local, 0o755)
	if err != nil && os.IsExist(err) {
		st, statErr := os.Stat(local)
		if statErr == nil && st.IsDir() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	if err != nil && os.IsNotExist(err) {
		return NotFoundError(Parent(path))
	}
	return err
}

func (f *OSFileSystem) List(_ context.Context, path string) ([]string, error) {
	local, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(local)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError(path)
		}
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (f *OSFileSystem) WriteString(_ context.Context, path, content string, enc Encoding) error {
	local, err := f.resolve(path)
	if err != nil {
		return err
	}
	data := []byte(content)
	if enc == EncodingBase64 {
		data, err = base64.StdEncoding.DecodeString(content)
		if err != nil {
			return fmt.Errorf("decode base64 content: %w", err)
		}
	}
	if _, err := os.Stat(filepath.Dir(local)); os.IsNotExist(err) {
		return NotFoundError(Parent(path))
	}
	return os.WriteFile(local, data, 0o644)
}

func (f *OSFileSystem) ReadString(_ context.Context, path string, enc Encoding) (string, error) {
	local, err := f.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(local)
	if err != nil {
		if os.IsNotExist(err) {
			return "", NotFoundError(path)
		}
		return "", err
	}
	if enc == EncodingBase64 {
		return base64.StdEncoding.EncodeToString(data), nil
	}
	return string(data), nil
}

func (f *OSFileSystem) Copy(ctx context.Context, from, to string) error {
	content, err := f.ReadString(ctx, from, EncodingBase64)
	if err != nil {
		return err
	}
	return f.WriteString(ctx, to, content, EncodingBase64)
}

func (f *OSFileSystem) Move(_ context.Context, from, to string) error {
	src, err := f.resolve(from)
	if err != nil {
		return err
	}
	dst, err := f.resolve(to)
	if err != nil {
		return err
	}
	if err := os.Rename(src, dst); err != nil {
		if os.IsNotExist(err) {
			return NotFoundError(from)
		}
		return err
	}
	return nil
}

func (f *OSFileSystem) Delete(_ context.Context, path string, idempotent bool) error {
	local, err := f.resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(local); err != nil {
		if os.IsNotExist(err) {
			if idempotent {
				return nil
			}
			return NotFoundError(path)
		}
		return err
	}
	return os.RemoveAll(local)
}

func (f *OSFileSystem) Close() error {
	return nil
}
