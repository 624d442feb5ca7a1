package meta

import (
	"context"
	"strings"
	"testing"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
)

func newTestStore(t *testing.T) (*Store, *kv.Store) {
	t.Helper()
	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	adapter := kv.NewStore(mem)
	return NewStore(adapter), adapter
}

func TestGetDefaultDoesNotPersist(t *testing.T) {
	s, adapter := newTestStore(t)
	ctx := context.Background()

	rec := s.Get(ctx, "/photos/chem/photo_001.jpg")
	if rec.Annotations != "" || len(rec.Tags) != 0 || rec.CreatedAt == "" {
		t.Errorf("default record = %+v", rec)
	}

	// 读取默认记录不应产生持久化
	if _, ok := adapter.Get(ctx, "photoclass_metadata_v1"); ok {
		t.Error("read of unknown photo persisted metadata")
	}
}

func TestUpdateAndTagRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	uri := "/photos/chem/photo_001.jpg"

	ann := "benzene ring experiment"
	rec := s.Update(ctx, uri, Patch{Annotations: &ann})
	if rec.Annotations != ann || rec.UpdatedAt == "" {
		t.Errorf("updated record = %+v", rec)
	}

	tags := s.AddTag(ctx, uri, "chemistry")
	if len(tags) != 1 || tags[0] != "chemistry" {
		t.Errorf("tags after add = %v", tags)
	}
	// 重复添加为空操作
	tags = s.AddTag(ctx, uri, "chemistry")
	if len(tags) != 1 {
		t.Errorf("duplicate add changed tags: %v", tags)
	}

	s.AddTag(ctx, uri, "lab")
	tags = s.RemoveTag(ctx, uri, "chemistry")
	if len(tags) != 1 || tags[0] != "lab" {
		t.Errorf("tags after remove = %v", tags)
	}

	got := s.Get(ctx, uri)
	if got.Annotations != ann {
		t.Errorf("annotations lost across tag ops: %+v", got)
	}
}

func TestAllTagsSortedAndDeduplicated(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddTag(ctx, "/a.jpg", "zoo")
	s.AddTag(ctx, "/b.jpg", "ant")
	s.AddTag(ctx, "/c.jpg", "zoo")

	tags := s.AllTags(ctx)
	if strings.Join(tags, ",") != "ant,zoo" {
		t.Errorf("all tags = %v", tags)
	}
}

func TestSearchByTagExactMatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddTag(ctx, "/a.jpg", "chem")
	s.AddTag(ctx, "/b.jpg", "chemistry")

	results := s.SearchByTag(ctx, "chem")
	if len(results) != 1 || results[0].URI != "/a.jpg" {
		t.Errorf("exact tag search = %+v", results)
	}
	if len(s.SearchByTag(ctx, "che")) != 0 {
		t.Error("partial tag matched in exact search")
	}
}

func TestSearchByAnnotationCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ann := "Titration of NaOH"
	s.Update(ctx, "/a.jpg", Patch{Annotations: &ann})

	results := s.SearchByAnnotation(ctx, "naoh")
	if len(results) != 1 || results[0].URI != "/a.jpg" {
		t.Errorf("annotation search = %+v", results)
	}
	if len(s.SearchByAnnotation(ctx, "acid")) != 0 {
		t.Error("unrelated term matched")
	}
}

func TestDeleteTagGlobally(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddTag(ctx, "/a.jpg", "old")
	s.AddTag(ctx, "/b.jpg", "old")
	s.AddTag(ctx, "/b.jpg", "keep")
	_ = s.Color(ctx, "old")

	changed := s.DeleteTagGlobally(ctx, "old")
	if changed != 2 {
		t.Errorf("changed = %d, want 2", changed)
	}
	if len(s.SearchByTag(ctx, "old")) != 0 {
		t.Error("tag survived global delete")
	}
	if got := s.Get(ctx, "/b.jpg").Tags; len(got) != 1 || got[0] != "keep" {
		t.Errorf("unrelated tags disturbed: %v", got)
	}
	if _, ok := s.AllColors(ctx)["old"]; ok {
		t.Error("color survived global tag delete")
	}
}

func TestMigrateSingleKey(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.AddTag(ctx, "/photos/inbox/photo_001.jpg", "moved")
	s.AddTag(ctx, "/photos/inbox/photo_001.jpg.png", "stays")

	if !s.Migrate(ctx, "/photos/inbox/photo_001.jpg", "/photos/archive/photo_001.jpg") {
		t.Fatal("migrate reported no record")
	}

	if got := s.Get(ctx, "/photos/archive/photo_001.jpg"); len(got.Tags) != 1 || got.Tags[0] != "moved" {
		t.Errorf("migrated record = %+v", got)
	}
	if got := s.Get(ctx, "/photos/inbox/photo_001.jpg"); len(got.Tags) != 0 {
		t.Error("old uri still resolves")
	}
	// 文件名以被迁移键开头的邻居不受影响
	if got := s.Get(ctx, "/photos/inbox/photo_001.jpg.png"); len(got.Tags) != 1 || got.Tags[0] != "stays" {
		t.Errorf("sibling record disturbed: %+v", got)
	}

	if s.Migrate(ctx, "/photos/inbox/photo_001.jpg", "/photos/archive/photo_001.jpg") {
		t.Error("migrate of missing key reported a record")
	}
}

func TestMigratePrefix(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	ann := "kept across rename"
	s.Update(ctx, "/photos/chem/photo_001.jpg", Patch{Annotations: &ann})
	s.AddTag(ctx, "/photos/chem/photo_001.jpg", "lab")
	s.AddTag(ctx, "/photos/other/photo_001.jpg", "untouched")

	// 新前缀仍以旧前缀开头，不能发生二次迁移
	n := s.MigratePrefix(ctx, "/photos/chem", "/photos/chemistry")
	if n != 1 {
		t.Errorf("migrated = %d, want 1", n)
	}

	rec := s.Get(ctx, "/photos/chemistry/photo_001.jpg")
	if rec.Annotations != ann || len(rec.Tags) != 1 {
		t.Errorf("migrated record = %+v", rec)
	}
	if got := s.Get(ctx, "/photos/chem/photo_001.jpg"); got.Annotations != "" {
		t.Error("old uri still resolves")
	}
	if got := s.Get(ctx, "/photos/other/photo_001.jpg"); len(got.Tags) != 1 {
		t.Error("unrelated uri disturbed")
	}
}

func TestEnvelopeShapeAndLegacyFormat(t *testing.T) {
	s, adapter := newTestStore(t)
	ctx := context.Background()

	s.AddTag(ctx, "/a.jpg", "x")

	raw, ok := adapter.Get(ctx, "photoclass_metadata_v1")
	if !ok {
		t.Fatal("metadata blob missing")
	}
	for _, field := range []string{`"data"`, `"timestamp"`, `"version"`, `"1.0"`} {
		if !strings.Contains(raw, field) {
			t.Errorf("envelope missing %s: %s", field, raw)
		}
	}

	// 旧格式（无信封的裸 map）也要能读出
	adapter.Set(ctx, "photoclass_metadata_v1",
		`{"/legacy.jpg":{"annotations":"old","tags":["t"],"createdAt":"2020-01-01T00:00:00Z"}}`)
	rec := s.Get(ctx, "/legacy.jpg")
	if rec.Annotations != "old" || len(rec.Tags) != 1 {
		t.Errorf("legacy record = %+v", rec)
	}
}

func TestTagColorStability(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first := s.Color(ctx, "chem")
	if first == "" {
		t.Fatal("no color assigned")
	}
	valid := false
	for _, c := range tagPalette {
		if c == first {
			valid = true
			break
		}
	}
	if !valid {
		t.Errorf("color %s not from palette", first)
	}

	// 重复访问颜色稳定
	for range 5 {
		if got := s.Color(ctx, "chem"); got != first {
			t.Fatalf("color changed: %s -> %s", first, got)
		}
	}

	s.SetColor(ctx, "chem", "#FF6B6B")
	if got := s.Color(ctx, "chem"); got != "#FF6B6B" {
		t.Errorf("explicit color = %s", got)
	}

	s.RemoveColor(ctx, "chem")
	if _, ok := s.AllColors(ctx)["chem"]; ok {
		t.Error("color survived removal")
	}
}
