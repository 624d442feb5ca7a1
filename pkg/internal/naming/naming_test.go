package naming

import (
	"context"
	"testing"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
)

func newTestService(t *testing.T) (*Service, *vfs.Client, *kv.Store) {
	t.Helper()
	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	store := kv.NewStore(mem)
	fs := &vfs.Client{FileSystem: vfs.NewKVFileSystem(store)}
	return NewService(store, fs, "/photos"), fs, store
}

func TestNextNumberMonotonic(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		if got := s.NextNumber(ctx, "chem"); got != want {
			t.Fatalf("NextNumber = %d, want %d", got, want)
		}
	}

	// 各文件夹独立计数
	if got := s.NextNumber(ctx, "bio"); got != 1 {
		t.Errorf("independent folder started at %d", got)
	}
}

func TestGenerateFileNamePadding(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	if name := s.GenerateFileName(ctx, "chem"); name != "photo_001.jpg" {
		t.Errorf("first name = %s", name)
	}
	if name := s.GenerateFileName(ctx, "chem"); name != "photo_002.jpg" {
		t.Errorf("second name = %s", name)
	}
}

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"photo_001.jpg", 1},
		{"photo_042.jpg", 42},
		{"photo_1234.jpg", 1234},
		{"copy_of_photo_007.jpg", 7},
		{"selfie.jpg", 0},
		{"photo_abc.jpg", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ExtractNumber(c.in); got != c.want {
			t.Errorf("ExtractNumber(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestResyncTakesMaxObserved(t *testing.T) {
	s, fs, _ := newTestService(t)
	ctx := context.Background()

	if err := fs.Mkdir(ctx, "/photos/chem", true); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"photo_003.jpg", "photo_010.jpg", "notes.txt", "scan.png"} {
		if err := fs.WriteString(ctx, "/photos/chem/"+name, "x", vfs.EncodingUTF8); err != nil {
			t.Fatal(err)
		}
	}

	s.Resync(ctx, "chem")

	// 重建后编号从最大值继续
	if got := s.NextNumber(ctx, "chem"); got != 11 {
		t.Errorf("NextNumber after resync = %d, want 11", got)
	}
}

func TestResyncEmptyDirectoryZeroesCounter(t *testing.T) {
	s, fs, _ := newTestService(t)
	ctx := context.Background()

	// 先推进计数器再清空目录
	s.NextNumber(ctx, "chem")
	s.NextNumber(ctx, "chem")

	if err := fs.Mkdir(ctx, "/photos/chem", true); err != nil {
		t.Fatal(err)
	}
	s.Resync(ctx, "chem")

	if got := s.NextNumber(ctx, "chem"); got != 1 {
		t.Errorf("NextNumber after empty resync = %d, want 1", got)
	}
}

func TestResyncMissingDirectoryNoop(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	s.NextNumber(ctx, "chem")
	s.Resync(ctx, "chem")

	// 目录不存在时计数器保持不变
	if got := s.NextNumber(ctx, "chem"); got != 2 {
		t.Errorf("NextNumber after noop resync = %d, want 2", got)
	}
}

func TestResetAndCounterFolders(t *testing.T) {
	s, _, _ := newTestService(t)
	ctx := context.Background()

	s.NextNumber(ctx, "chem")
	s.NextNumber(ctx, "bio")

	folders := s.CounterFolders(ctx)
	if len(folders) != 2 {
		t.Errorf("counter folders = %v", folders)
	}

	s.Reset(ctx, "chem")
	if got := s.NextNumber(ctx, "chem"); got != 1 {
		t.Errorf("NextNumber after reset = %d, want 1", got)
	}
}
