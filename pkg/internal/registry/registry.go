// Package registry 维护顶层文件夹（相册）的注册表.
//
// 文件夹名称顺序保存在 KV 的 folders 键下（JSON 数组），注册表是
// 文件夹存在性的唯一权威：VFS 目录可以滞后创建，首次存照片时补齐.
package registry

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	plog "github.com/yeisme/photovault/pkg/log"
)

const foldersKey = "folders"

var (
	// ErrEmptyName 文件夹名为空或仅空白.
	ErrEmptyName = errors.New("registry: folder name is empty")
	// ErrDuplicate 同名文件夹已注册.
	ErrDuplicate = errors.New("registry: folder already exists")
	// ErrNotRegistered 文件夹未注册.
	ErrNotRegistered = errors.New("registry: folder not registered")
)

// Registry 文件夹注册表.
type Registry struct {
	mu    sync.Mutex
	store *kv.Store
	fs    *vfs.Client
	// photosRoot 照片目录根，物理目录位于 <root>/<folder>
	photosRoot string
}

// New 创建文件夹注册表.
func New(store *kv.Store, fs *vfs.Client, photosRoot string) *Registry {
	return &Registry{store: store, fs: fs, photosRoot: vfs.Normalize(photosRoot)}
}

func (r *Registry) load(ctx context.Context) []string {
	raw, ok := r.store.Get(ctx, foldersKey)
	if !ok || raw == "" {
		return []string{}
	}
	folders := []string{}
	if err := sonic.UnmarshalString(raw, &folders); err != nil {
		plog.Logger().Warn().Err(err).Msg("folders blob corrupted, starting empty")
		return []string{}
	}
	return folders
}

func (r *Registry) save(ctx context.Context, folders []string) {
	raw, err := sonic.MarshalString(folders)
	if err != nil {
		plog.Logger().Error().Err(err).Msg("marshal folders")
		return
	}
	r.store.Set(ctx, foldersKey, raw)
}

// DirPath 返回文件夹的 VFS 目录路径.
func (r *Registry) DirPath(folderName string) string {
	return r.photosRoot + "/" + folderName
}

// List 按注册顺序返回全部文件夹名.
func (r *Registry) List(ctx context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Exists 判断文件夹是否已注册.
func (r *Registry) Exists(ctx context.Context, folderName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return contains(r.load(ctx), folderName)
}

// Create 注册新文件夹，名称去除首尾空白. 目录延迟到首次存照片时创建.
func (r *Registry) Create(ctx context.Context, folderName string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(folderName)
	if name == "" {
		return "", ErrEmptyName
	}

	folders := r.load(ctx)
	if contains(folders, name) {
		return "", ErrDuplicate
	}

	r.save(ctx, append(folders, name))
	return name, nil
}

// Rename 改名文件夹：注册表原位替换，物理目录存在时一并移动.
// 新旧同名是空操作.
func (r *Registry) Rename(ctx context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyName
	}
	if name == oldName {
		return nil
	}

	folders := r.load(ctx)
	if !contains(folders, oldName) {
		return ErrNotRegistered
	}
	if contains(folders, name) {
		return ErrDuplicate
	}

	for i, f := range folders {
		if f == oldName {
			folders[i] = name
		}
	}
	r.save(ctx, folders)

	oldDir := r.DirPath(oldName)
	info, err := r.fs.Stat(ctx, oldDir)
	if err != nil {
		return err
	}
	if info.Exists {
		if err := r.fs.Move(ctx, oldDir, r.DirPath(name)); err != nil {
			return err
		}
	}
	return nil
}

// Delete 注销文件夹并删除其目录及全部照片. 未注册的名称是空操作.
func (r *Registry) Delete(ctx context.Context, folderName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	folders := r.load(ctx)
	kept := make([]string, 0, len(folders))
	for _, f := range folders {
		if f != folderName {
			kept = append(kept, f)
		}
	}
	r.save(ctx, kept)

	return r.fs.Delete(ctx, r.DirPath(folderName), true)
}

func contains(folders []string, name string) bool {
	for _, f := range folders {
		if f == name {
			return true
		}
	}
	return false
}
