package registry

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
)

func newTestRegistry(t *testing.T) (*Registry, *vfs.Client, *kv.Store) {
	t.Helper()
	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	store := kv.NewStore(mem)
	fs := &vfs.Client{FileSystem: vfs.NewKVFileSystem(store)}
	return New(store, fs, "/photos"), fs, store
}

func TestCreateAndList(t *testing.T) {
	r, _, store := newTestRegistry(t)
	ctx := context.Background()

	name, err := r.Create(ctx, "  Chemistry  ")
	if err != nil || name != "Chemistry" {
		t.Fatalf("create = %q, %v", name, err)
	}
	if _, err := r.Create(ctx, "Biology"); err != nil {
		t.Fatal(err)
	}

	// 注册顺序保持
	if got := r.List(ctx); strings.Join(got, ",") != "Chemistry,Biology" {
		t.Errorf("list = %v", got)
	}

	if _, err := r.Create(ctx, "Chemistry"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate create err = %v", err)
	}
	if _, err := r.Create(ctx, "   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty create err = %v", err)
	}

	// 持久化为 JSON 数组
	raw, ok := store.Get(ctx, "folders")
	if !ok || raw != `["Chemistry","Biology"]` {
		t.Errorf("persisted folders = %q", raw)
	}
}

func TestRename(t *testing.T) {
	r, fs, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Create(ctx, "Chem"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Create(ctx, "Bio"); err != nil {
		t.Fatal(err)
	}

	// 物理目录存在时随注册表一起移动
	if err := fs.Mkdir(ctx, "/photos/Chem", true); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteString(ctx, "/photos/Chem/photo_001.jpg", "img", vfs.EncodingUTF8); err != nil {
		t.Fatal(err)
	}

	if err := r.Rename(ctx, "Chem", "Chemistry"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if got := r.List(ctx); strings.Join(got, ",") != "Chemistry,Bio" {
		t.Errorf("list after rename = %v", got)
	}
	info, _ := fs.Stat(ctx, "/photos/Chemistry/photo_001.jpg")
	if !info.Exists {
		t.Error("photo did not follow directory rename")
	}
	info, _ = fs.Stat(ctx, "/photos/Chem")
	if info.Exists {
		t.Error("old directory still exists")
	}

	if err := r.Rename(ctx, "Ghost", "X"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("rename unknown err = %v", err)
	}
	if err := r.Rename(ctx, "Chemistry", "Bio"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("rename collision err = %v", err)
	}
	// 同名改名是空操作
	if err := r.Rename(ctx, "Chemistry", "Chemistry"); err != nil {
		t.Errorf("self rename err = %v", err)
	}
}

func TestRenameWithoutPhysicalDirectory(t *testing.T) {
	r, _, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Create(ctx, "Empty"); err != nil {
		t.Fatal(err)
	}
	// 目录从未创建过也能改名
	if err := r.Rename(ctx, "Empty", "Renamed"); err != nil {
		t.Fatalf("rename without directory: %v", err)
	}
	if !r.Exists(ctx, "Renamed") || r.Exists(ctx, "Empty") {
		t.Error("registry state wrong after rename")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	r, fs, _ := newTestRegistry(t)
	ctx := context.Background()

	if _, err := r.Create(ctx, "Chem"); err != nil {
		t.Fatal(err)
	}
	if err := fs.Mkdir(ctx, "/photos/Chem", true); err != nil {
		t.Fatal(err)
	}
	if err := fs.WriteString(ctx, "/photos/Chem/photo_001.jpg", "img", vfs.EncodingUTF8); err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(ctx, "Chem"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(r.List(ctx)) != 0 {
		t.Error("folder survived delete")
	}
	info, _ := fs.Stat(ctx, "/photos/Chem")
	if info.Exists {
		t.Error("directory survived delete")
	}

	// 再次删除以及删除未注册文件夹都不报错
	if err := r.Delete(ctx, "Chem"); err != nil {
		t.Errorf("second delete: %v", err)
	}
	if err := r.Delete(ctx, "NeverExisted"); err != nil {
		t.Errorf("delete unknown: %v", err)
	}
}
