// Package naming 为每个文件夹维护顺序照片编号，生成 photo_NNN.jpg 形式的文件名.
//
// 计数器按文件夹名存入 KV（键 photo_counter_<folder>），与目录内容可能
// 漂移：导入或手工改动后调用 Resync 从目录实际文件重建计数器.
package naming

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	plog "github.com/yeisme/photovault/pkg/log"
)

const counterKeyPrefix = "photo_counter_"

// photoNumberRe 不锚定：任何包含 photo_<digits>.jpg 的文件名都能提取编号.
var photoNumberRe = regexp.MustCompile(`photo_(\d+)\.jpg`)

// Service 顺序命名服务.
type Service struct {
	store *kv.Store
	fs    *vfs.Client
	// photosRoot 照片目录根，计数器重建时在 <root>/<folder> 下扫描
	photosRoot string
}

// NewService 创建命名服务.
func NewService(store *kv.Store, fs *vfs.Client, photosRoot string) *Service {
	return &Service{store: store, fs: fs, photosRoot: vfs.Normalize(photosRoot)}
}

func counterKey(folderName string) string {
	return counterKeyPrefix + folderName
}

// NextNumber 返回文件夹的下一个顺序编号并推进计数器.
// 计数器缺失或损坏时从 1 开始.
func (s *Service) NextNumber(ctx context.Context, folderName string) int {
	key := counterKey(folderName)

	next := 1
	if raw, ok := s.store.Get(ctx, key); ok {
		if cur, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			next = cur + 1
		}
	}

	s.store.Set(ctx, key, strconv.Itoa(next))
	return next
}

// GenerateFileName 生成下一个顺序文件名，编号左侧补零到三位.
func (s *Service) GenerateFileName(ctx context.Context, folderName string) string {
	return fmt.Sprintf("photo_%03d.jpg", s.NextNumber(ctx, folderName))
}

// ExtractNumber 从文件名提取顺序编号，无法匹配时返回 0.
func ExtractNumber(filename string) int {
	m := photoNumberRe.FindStringSubmatch(filename)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Resync 扫描文件夹目录下的图片文件，把计数器重建为观察到的最大编号.
// 目录不存在时不做任何事；目录为空时计数器归零.
func (s *Service) Resync(ctx context.Context, folderName string) {
	dir := s.photosRoot + "/" + folderName

	info, err := s.fs.Stat(ctx, dir)
	if err != nil || !info.Exists {
		return
	}

	names, err := s.fs.List(ctx, dir)
	if err != nil {
		plog.Logger().Warn().Err(err).Str("folder", folderName).Msg("counter resync list failed")
		return
	}

	maxNumber := 0
	for _, name := range names {
		if !isImageFile(name) {
			continue
		}
		if n := ExtractNumber(name); n > maxNumber {
			maxNumber = n
		}
	}

	s.store.Set(ctx, counterKey(folderName), strconv.Itoa(maxNumber))
}

// Reset 删除文件夹的计数器，下一次编号重新从 1 开始.
func (s *Service) Reset(ctx context.Context, folderName string) {
	s.store.Remove(ctx, counterKey(folderName))
}

// CounterFolders 列出当前存在计数器的文件夹名称.
func (s *Service) CounterFolders(ctx context.Context) []string {
	keys := s.store.KeysWithPrefix(ctx, counterKeyPrefix)
	folders := make([]string, 0, len(keys))
	for _, k := range keys {
		folders = append(folders, strings.TrimPrefix(k, counterKeyPrefix))
	}
	return folders
}

func isImageFile(name string) bool {
	return strings.HasSuffix(name, ".jpg") ||
		strings.HasSuffix(name, ".jpeg") ||
		strings.HasSuffix(name, ".png")
}
