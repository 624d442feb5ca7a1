package vfs

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	plog "github.com/yeisme/photovault/pkg/log"
)

// treeKey 整棵文件系统树在 KV 中的存储键.
const treeKey = "photoclass_filesystem"

// dirEntry 目录条目，时间戳为毫秒级 epoch，与持久化 JSON 保持一致.
type dirEntry struct {
	ModificationTime int64 `json:"modificationTime"`
	Created          int64 `json:"created"`
}

// fileEntry 文件条目.
type fileEntry struct {
	Content          string `json:"content"`
	Size             int64  `json:"size"`
	ModificationTime int64  `json:"modificationTime"`
	Encoding         string `json:"encoding"`
}

// fsTree 扁平化的文件系统树，键为规范化后的绝对路径.
type fsTree struct {
	Directories map[string]dirEntry  `json:"directories"`
	Files       map[string]fileEntry `json:"files"`
}

func newFSTree() *fsTree {
	return &fsTree{
		Directories: make(map[string]dirEntry),
		Files:       make(map[string]fileEntry),
	}
}

// KVFileSystem 基于 KV 存储的虚拟文件系统.
//
// 整棵树作为单个 JSON blob 读改写，互斥锁保证每个操作的
// load-modify-save 原子可见. 存储适配器吞掉的读失败表现为空树，
// 与首次启动无法区分，这是软失败契约的代价.
type KVFileSystem struct {
	mu    sync.Mutex
	store *kv.Store
}

// NewKVFileSystem 创建 KV 后端的文件系统.
func NewKVFileSystem(store *kv.Store) *KVFileSystem {
	return &KVFileSystem{store: store}
}

func (f *KVFileSystem) load(ctx context.Context) *fsTree {
	raw, ok := f.store.Get(ctx, treeKey)
	if !ok || raw == "" {
		return newFSTree()
	}
	tree := newFSTree()
	if err := sonic.UnmarshalString(raw, tree); err != nil {
		plog.Logger().Warn().Err(err).Msg("filesystem blob corrupted, starting from empty tree")
		return newFSTree()
	}
	if tree.Directories == nil {
		tree.Directories = make(map[string]dirEntry)
	}
	if tree.Files == nil {
		tree.Files = make(map[string]fileEntry)
	}
	return tree
}

func (f *KVFileSystem) save(ctx context.Context, tree *fsTree) error {
	raw, err := sonic.MarshalString(tree)
	if err != nil {
		return fmt.Errorf("marshal filesystem tree: %w", err)
	}
	f.store.Set(ctx, treeKey, raw)
	return nil
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// Stat 查询路径状态，根目录始终存在.
func (f *KVFileSystem) Stat(ctx context.Context, path string) (Info, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	if path == "" {
		return Info{Exists: true, IsDirectory: true}, nil
	}

	tree := f.load(ctx)
	if d, ok := tree.Directories[path]; ok {
		return Info{
			Exists:           true,
			IsDirectory:      true,
			ModificationTime: time.UnixMilli(d.ModificationTime),
		}, nil
	}
	if fe, ok := tree.Files[path]; ok {
		return Info{
			Exists:           true,
			Size:             fe.Size,
			ModificationTime: time.UnixMilli(fe.ModificationTime),
		}, nil
	}
	return Info{}, nil
}

// Mkdir 创建目录；对已存在的目录幂等，路径被文件占用时报错.
func (f *KVFileSystem) Mkdir(ctx context.Context, path string, intermediates bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	if path == "" {
		return nil
	}

	tree := f.load(ctx)
	if _, ok := tree.Files[path]; ok {
		return fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	if _, ok := tree.Directories[path]; ok {
		return nil
	}

	parent := Parent(path)
	if parent != "" {
		if _, ok := tree.Files[parent]; ok {
			return fmt.Errorf("%w: %s", ErrNotDirectory, parent)
		}
		if _, ok := tree.Directories[parent]; !ok {
			if !intermediates {
				return NotFoundError(parent)
			}
			f.mkdirAll(tree, parent)
		}
	}

	now := nowMillis()
	tree.Directories[path] = dirEntry{ModificationTime: now, Created: now}
	return f.save(ctx, tree)
}

// mkdirAll 在内存树上逐级补齐缺失的祖先目录.
func (f *KVFileSystem) mkdirAll(tree *fsTree, path string) {
	if path == "" {
		return
	}
	if _, ok := tree.Directories[path]; ok {
		return
	}
	f.mkdirAll(tree, Parent(path))
	now := nowMillis()
	tree.Directories[path] = dirEntry{ModificationTime: now, Created: now}
}

// List 返回目录的直接子项名称，字典序排序.
func (f *KVFileSystem) List(ctx context.Context, path string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	tree := f.load(ctx)

	if path != "" {
		if _, ok := tree.Directories[path]; !ok {
			return nil, NotFoundError(path)
		}
	}

	names := make([]string, 0)
	for p := range tree.Directories {
		if isChildOf(p, path) {
			names = append(names, Base(p))
		}
	}
	for p := range tree.Files {
		if isChildOf(p, path) {
			names = append(names, Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

// WriteString 创建或覆盖文件，父目录必须已存在.
func (f *KVFileSystem) WriteString(ctx context.Context, path, content string, enc Encoding) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	if path == "" {
		return fmt.Errorf("%w: cannot write to root", ErrNotDirectory)
	}

	tree := f.load(ctx)
	if _, ok := tree.Directories[path]; ok {
		return fmt.Errorf("%w: %s is a directory", ErrNotDirectory, path)
	}
	parent := Parent(path)
	if parent != "" {
		if _, ok := tree.Directories[parent]; !ok {
			return NotFoundError(parent)
		}
	}

	tree.Files[path] = fileEntry{
		Content:          content,
		Size:             int64(len(content)),
		ModificationTime: nowMillis(),
		Encoding:         string(enc),
	}
	return f.save(ctx, tree)
}

// ReadString 读取文件内容，按需在 utf8 与 base64 之间转换.
func (f *KVFileSystem) ReadString(ctx context.Context, path string, enc Encoding) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	tree := f.load(ctx)
	fe, ok := tree.Files[path]
	if !ok {
		return "", NotFoundError(path)
	}
	return convertEncoding(fe.Content, Encoding(fe.Encoding), enc)
}

// convertEncoding 将存储编码的内容转换为请求的编码.
func convertEncoding(content string, stored, want Encoding) (string, error) {
	if stored == "" {
		stored = EncodingUTF8
	}
	if want == "" {
		want = EncodingUTF8
	}
	if stored == want {
		return content, nil
	}
	switch {
	case stored == EncodingUTF8 && want == EncodingBase64:
		return base64.StdEncoding.EncodeToString([]byte(content)), nil
	case stored == EncodingBase64 && want == EncodingUTF8:
		raw, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return "", fmt.Errorf("decode base64 content: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unsupported encoding conversion: %s -> %s", stored, want)
	}
}

// Copy 复制单个文件.
func (f *KVFileSystem) Copy(ctx context.Context, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	from, to = Normalize(from), Normalize(to)
	tree := f.load(ctx)
	fe, ok := tree.Files[from]
	if !ok {
		return NotFoundError(from)
	}
	parent := Parent(to)
	if parent != "" {
		if _, ok := tree.Directories[parent]; !ok {
			return NotFoundError(parent)
		}
	}

	fe.ModificationTime = nowMillis()
	tree.Files[to] = fe
	return f.save(ctx, tree)
}

// Move 移动文件或目录. 目录移动重写子树内所有键，
// 只替换路径中第一次出现的前缀，避免误改后段同名片段.
func (f *KVFileSystem) Move(ctx context.Context, from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	from, to = Normalize(from), Normalize(to)
	if from == to {
		return nil
	}

	tree := f.load(ctx)

	if fe, ok := tree.Files[from]; ok {
		delete(tree.Files, from)
		fe.ModificationTime = nowMillis()
		tree.Files[to] = fe
		return f.save(ctx, tree)
	}

	de, ok := tree.Directories[from]
	if !ok {
		return NotFoundError(from)
	}

	delete(tree.Directories, from)
	de.ModificationTime = nowMillis()
	tree.Directories[to] = de

	for p, d := range tree.Directories {
		if isDescendantOf(p, from) {
			delete(tree.Directories, p)
			tree.Directories[rebase(p, from, to)] = d
		}
	}
	for p, fe := range tree.Files {
		if isDescendantOf(p, from) {
			delete(tree.Files, p)
			tree.Files[rebase(p, from, to)] = fe
		}
	}
	return f.save(ctx, tree)
}

// Delete 删除路径，目录递归删除所有后代.
func (f *KVFileSystem) Delete(ctx context.Context, path string, idempotent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = Normalize(path)
	tree := f.load(ctx)

	if _, ok := tree.Files[path]; ok {
		delete(tree.Files, path)
		return f.save(ctx, tree)
	}

	if _, ok := tree.Directories[path]; ok {
		delete(tree.Directories, path)
		for p := range tree.Directories {
			if isDescendantOf(p, path) {
				delete(tree.Directories, p)
			}
		}
		for p := range tree.Files {
			if isDescendantOf(p, path) {
				delete(tree.Files, p)
			}
		}
		return f.save(ctx, tree)
	}

	if idempotent {
		return nil
	}
	return NotFoundError(path)
}

// Close KV 后端无独立资源，由存储管理器统一关闭底层客户端.
func (f *KVFileSystem) Close() error {
	return nil
}
