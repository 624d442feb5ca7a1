package service_test

import (
	"context"
	"testing"

	"github.com/yeisme/photovault/pkg/configs"
	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/service"
	"github.com/yeisme/photovault/pkg/internal/storage"
	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	"github.com/yeisme/photovault/pkg/internal/types"
)

// newTestService 构造内存 KV + kv 文件系统的服务，不挂 MQ.
func newTestService(t *testing.T) (*service.PhotoService, context.Context) {
	t.Helper()

	if err := configs.InitConfig(t.TempDir()); err != nil {
		t.Fatalf("init config: %v", err)
	}

	ctx := context.Background()

	mem, err := kv.NewMemoryKV(ctx, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = mem.Close() })

	store := kv.NewStore(mem)
	mgr := &storage.Manager{
		KV:    &kv.Client{KVStore: mem},
		Store: store,
		VFS:   &vfs.Client{FileSystem: vfs.NewKVFileSystem(store)},
	}

	ctx = ctxPkg.WithStorageManager(ctx, mgr)

	return service.NewPhotoService(ctx), ctx
}

func savePhoto(t *testing.T, svc *service.PhotoService, ctx context.Context, folder, name, content string) *types.SavePhotoResponse {
	t.Helper()

	resp, err := svc.SavePhoto(ctx, &types.SavePhotoRequest{
		Folder:   folder,
		FileName: name,
		Content:  content,
		Encoding: "utf8",
	})
	if err != nil {
		t.Fatalf("save photo: %v", err)
	}

	return resp
}

func TestSavePhotoSequentialNaming(t *testing.T) {
	svc, ctx := newTestService(t)

	first := savePhoto(t, svc, ctx, "Chemistry", "", "a")
	second := savePhoto(t, svc, ctx, "Chemistry", "", "b")

	if first.FileName != "photo_001.jpg" {
		t.Fatalf("first photo name: got %q", first.FileName)
	}

	if second.FileName != "photo_002.jpg" {
		t.Fatalf("second photo name: got %q", second.FileName)
	}

	// 存照片会自动注册文件夹
	folders := svc.ListFolders(ctx).Folders
	if len(folders) != 1 || folders[0] != "Chemistry" {
		t.Fatalf("folders after save: %v", folders)
	}
}

func TestGalleryOrderingAndFiltering(t *testing.T) {
	svc, ctx := newTestService(t)

	savePhoto(t, svc, ctx, "Trips", "photo_010.jpg", "x")
	savePhoto(t, svc, ctx, "Trips", "photo_002.jpg", "y")
	savePhoto(t, svc, ctx, "Trips", "notes.txt", "not a photo")

	resp, err := svc.ListGallery(ctx, "Trips")
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}

	if len(resp.Photos) != 2 {
		t.Fatalf("gallery entries: got %d, want 2", len(resp.Photos))
	}

	if resp.Photos[0].FileName != "photo_002.jpg" || resp.Photos[1].FileName != "photo_010.jpg" {
		t.Fatalf("gallery order: %v", resp.Photos)
	}
}

func TestGalleryOfRegisteredEmptyFolder(t *testing.T) {
	svc, ctx := newTestService(t)

	if _, err := svc.CreateFolder(ctx, &types.CreateFolderRequest{Name: "Empty"}); err != nil {
		t.Fatalf("create folder: %v", err)
	}

	resp, err := svc.ListGallery(ctx, "Empty")
	if err != nil {
		t.Fatalf("list gallery: %v", err)
	}

	if len(resp.Photos) != 0 {
		t.Fatalf("empty folder gallery: %v", resp.Photos)
	}
}

func TestMovePhotoMigratesMetadata(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Inbox", "", "img")
	svc.AddTag(ctx, "Inbox", saved.FileName, "lab")

	moved, err := svc.MovePhoto(ctx, &types.MovePhotoRequest{
		FromFolder: "Inbox",
		FileName:   saved.FileName,
		ToFolder:   "Chemistry",
	})
	if err != nil {
		t.Fatalf("move photo: %v", err)
	}

	got := svc.GetMetadata(ctx, "Chemistry", saved.FileName)
	if len(got.Metadata.Tags) != 1 || got.Metadata.Tags[0] != "lab" {
		t.Fatalf("metadata after move: %+v", got.Metadata)
	}

	if old := svc.Meta().Get(ctx, saved.Path); len(old.Tags) != 0 {
		t.Fatalf("old URI still tagged: %v", old.Tags)
	}

	if _, err := svc.GetPhoto(ctx, "Chemistry", saved.FileName, "utf8"); err != nil {
		t.Fatalf("photo unreadable at %s: %v", moved.To, err)
	}
}

func TestMovePhotoKeepsSiblingMetadata(t *testing.T) {
	svc, ctx := newTestService(t)

	moved := savePhoto(t, svc, ctx, "Inbox", "photo_001.jpg", "a")
	// 邻居文件名以被移动文件的完整名字开头
	sibling := savePhoto(t, svc, ctx, "Inbox", "photo_001.jpg.png", "b")
	svc.AddTag(ctx, "Inbox", sibling.FileName, "keepme")

	if _, err := svc.MovePhoto(ctx, &types.MovePhotoRequest{
		FromFolder: "Inbox",
		FileName:   moved.FileName,
		ToFolder:   "Archive",
	}); err != nil {
		t.Fatalf("move photo: %v", err)
	}

	if rec := svc.Meta().Get(ctx, sibling.Path); len(rec.Tags) != 1 || rec.Tags[0] != "keepme" {
		t.Fatalf("sibling metadata disturbed by move: %+v", rec)
	}
}

func TestCopyPhotoStartsWithEmptyMetadata(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Inbox", "", "img")
	svc.AddTag(ctx, "Inbox", saved.FileName, "lab")

	copied, err := svc.CopyPhoto(ctx, &types.CopyPhotoRequest{
		FromFolder: "Inbox",
		FileName:   saved.FileName,
		ToFolder:   "Archive",
	})
	if err != nil {
		t.Fatalf("copy photo: %v", err)
	}

	if rec := svc.Meta().Get(ctx, copied.To); len(rec.Tags) != 0 {
		t.Fatalf("copy inherited tags: %v", rec.Tags)
	}

	// 原件元数据不受影响
	if rec := svc.Meta().Get(ctx, saved.Path); len(rec.Tags) != 1 {
		t.Fatalf("source lost tags: %v", rec.Tags)
	}
}

func TestDeletePhotoIdempotent(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Inbox", "", "img")

	if err := svc.DeletePhoto(ctx, &types.DeletePhotoRequest{Folder: "Inbox", FileName: saved.FileName}); err != nil {
		t.Fatalf("delete photo: %v", err)
	}

	// 非幂等的二次删除报 not found
	err := svc.DeletePhoto(ctx, &types.DeletePhotoRequest{Folder: "Inbox", FileName: saved.FileName})
	if err == nil {
		t.Fatal("second strict delete succeeded")
	}

	// 幂等删除不报错
	if err := svc.DeletePhoto(ctx, &types.DeletePhotoRequest{Folder: "Inbox", FileName: saved.FileName, Idempotent: true}); err != nil {
		t.Fatalf("idempotent delete: %v", err)
	}
}

func TestRenameFolderMigratesEverything(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Chem", "", "img")
	svc.AddTag(ctx, "Chem", saved.FileName, "titration")

	resp, err := svc.RenameFolder(ctx, "Chem", &types.RenameFolderRequest{NewName: "Chemistry"})
	if err != nil {
		t.Fatalf("rename folder: %v", err)
	}

	if resp.MetaMigrated != 1 {
		t.Fatalf("meta migrated: got %d, want 1", resp.MetaMigrated)
	}

	// 新名字下照片和元数据都在
	photo, err := svc.GetPhoto(ctx, "Chemistry", saved.FileName, "utf8")
	if err != nil {
		t.Fatalf("photo under new name: %v", err)
	}

	if len(photo.Metadata.Tags) != 1 || photo.Metadata.Tags[0] != "titration" {
		t.Fatalf("metadata under new name: %+v", photo.Metadata)
	}

	// 计数器跟着迁移，编号继续
	next := savePhoto(t, svc, ctx, "Chemistry", "", "img2")
	if next.FileName != "photo_002.jpg" {
		t.Fatalf("numbering after rename: got %q", next.FileName)
	}

	// 标签检索返回新 URI
	results := svc.Meta().SearchByTag(ctx, "titration")
	if len(results) != 1 || results[0].URI != photo.Path {
		t.Fatalf("search after rename: %+v", results)
	}
}

func TestDeleteFolderCleansUp(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Old", "", "img")
	svc.AddTag(ctx, "Old", saved.FileName, "junk")

	if err := svc.DeleteFolder(ctx, "Old"); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if svc.Registry().Exists(ctx, "Old") {
		t.Fatal("folder still registered")
	}

	if uris := svc.Meta().URIsWithPrefix(ctx, saved.Path); len(uris) != 0 {
		t.Fatalf("metadata survived folder delete: %v", uris)
	}

	// 计数器清零，重建的同名文件夹从 1 开始
	again := savePhoto(t, svc, ctx, "Old", "", "img")
	if again.FileName != "photo_001.jpg" {
		t.Fatalf("numbering after folder delete: got %q", again.FileName)
	}
}

func TestSearchFilters(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Chemistry", "", "img")
	svc.AddTag(ctx, "Chemistry", saved.FileName, "titration")

	ann := "flask on the left"
	svc.UpdateMetadata(ctx, "Chemistry", saved.FileName, &types.UpdateMetadataRequest{Annotations: &ann})

	// 标签精确匹配，结果携带照片的标签集
	resp := svc.Search(ctx, &types.SearchRequest{Query: "titration", Filter: types.SearchFilterTags})
	if len(resp.Results) != 1 || resp.Results[0].MatchField != types.MatchTag {
		t.Fatalf("tag search: %+v", resp.Results)
	}

	if tags := resp.Results[0].Tags; len(tags) != 1 || tags[0] != "titration" {
		t.Fatalf("tag search result tags: %v", tags)
	}

	// 无精确命中时按子串扩展
	resp = svc.Search(ctx, &types.SearchRequest{Query: "titr", Filter: types.SearchFilterTags})
	if len(resp.Results) != 1 {
		t.Fatalf("tag substring search: %+v", resp.Results)
	}

	// 注释大小写不敏感
	resp = svc.Search(ctx, &types.SearchRequest{Query: "FLASK", Filter: types.SearchFilterAnnotations})
	if len(resp.Results) != 1 || resp.Results[0].MatchField != types.MatchAnnotation {
		t.Fatalf("annotation search: %+v", resp.Results)
	}

	if tags := resp.Results[0].Tags; len(tags) != 1 || tags[0] != "titration" {
		t.Fatalf("annotation search result tags: %v", tags)
	}

	// 文件夹子串
	resp = svc.Search(ctx, &types.SearchRequest{Query: "chem", Filter: types.SearchFilterFolders})
	if len(resp.Results) != 1 || resp.Results[0].Type != types.ResultTypeFolder {
		t.Fatalf("folder search: %+v", resp.Results)
	}

	// all 范围内同一张照片只出现一次
	resp = svc.Search(ctx, &types.SearchRequest{Query: "titration", Filter: types.SearchFilterAll})
	photoHits := 0
	for _, r := range resp.Results {
		if r.Type == types.ResultTypePhoto {
			photoHits++
		}
	}

	if photoHits != 1 {
		t.Fatalf("duplicate photo results in all search: %+v", resp.Results)
	}
}

func TestRecentSearchesMostRecentFirstCapFour(t *testing.T) {
	svc, ctx := newTestService(t)

	for _, q := range []string{"a", "b", "c", "d", "e"} {
		svc.AddRecentSearch(ctx, q)
	}

	got := svc.RecentSearches(ctx)
	want := []string{"e", "d", "c", "b"}

	if len(got) != len(want) {
		t.Fatalf("recent searches: %v", got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recent searches order: got %v, want %v", got, want)
		}
	}

	// 重复搜索去重并提前
	svc.AddRecentSearch(ctx, "c")

	got = svc.RecentSearches(ctx)
	if got[0] != "c" || len(got) != 4 {
		t.Fatalf("after duplicate search: %v", got)
	}

	svc.ClearRecentSearches(ctx)

	if left := svc.RecentSearches(ctx); len(left) != 0 {
		t.Fatalf("after clear: %v", left)
	}
}

func TestSweepOrphanMetadata(t *testing.T) {
	svc, ctx := newTestService(t)

	saved := savePhoto(t, svc, ctx, "Inbox", "", "img")
	svc.AddTag(ctx, "Inbox", saved.FileName, "keep")

	// 直接造一条没有照片文件的元数据
	svc.AddTag(ctx, "Inbox", "ghost.jpg", "dangling")

	removed := svc.SweepOrphanMetadata(ctx)
	if removed != 1 {
		t.Fatalf("orphans removed: got %d, want 1", removed)
	}

	if rec := svc.Meta().Get(ctx, saved.Path); len(rec.Tags) != 1 {
		t.Fatalf("live metadata swept: %+v", rec)
	}
}

func TestSelfTest(t *testing.T) {
	svc, ctx := newTestService(t)

	if !svc.SelfTest(ctx) {
		t.Fatal("self test failed on memory backend")
	}
}
