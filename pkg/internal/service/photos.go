package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/naming"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
)

// folderDir 返回文件夹的 VFS 目录路径.
func (s *PhotoService) folderDir(folderName string) string {
	return s.photosRoot + "/" + folderName
}

func (s *PhotoService) photoPath(folderName, fileName string) string {
	return s.folderDir(folderName) + "/" + fileName
}

// SavePhoto 保存一张照片到文件夹：按需补齐目录，顺序命名，写入内容.
// Source 区分拍摄（camera）与导入（import），只影响事件与响应.
func (s *PhotoService) SavePhoto(ctx context.Context, req *types.SavePhotoRequest) (*types.SavePhotoResponse, error) {
	if !s.registry.Exists(ctx, req.Folder) {
		// 允许向未注册文件夹存照片时自动注册，与目录的延迟创建对齐
		if _, err := s.registry.Create(ctx, req.Folder); err != nil {
			return nil, fmt.Errorf("register folder %s: %w", req.Folder, err)
		}
	}

	dir := s.folderDir(req.Folder)
	if err := s.fs.Mkdir(ctx, dir, true); err != nil {
		return nil, fmt.Errorf("ensure folder directory: %w", err)
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = s.naming.GenerateFileName(ctx, req.Folder)
	}
	path := dir + "/" + fileName

	enc := vfs.Encoding(req.Encoding)
	if enc == "" {
		enc = vfs.EncodingBase64
	}
	if err := s.fs.WriteString(ctx, path, req.Content, enc); err != nil {
		return nil, fmt.Errorf("write photo: %w", err)
	}

	info, err := s.fs.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	publish(ctx, s, queue.TopicPhotoStored, configs.GetConfig().Events.Photo.Stored,
		queue.PhotoStoredPayload{
			Photo: queue.PhotoRef{
				Folder:   req.Folder,
				FileName: fileName,
				Path:     path,
				Size:     info.Size,
			},
			Source: req.Source,
		})

	return &types.SavePhotoResponse{
		Folder:   req.Folder,
		FileName: fileName,
		Path:     path,
		Size:     info.Size,
	}, nil
}

// GetPhoto 读取照片内容与元数据.
func (s *PhotoService) GetPhoto(ctx context.Context, folderName, fileName string, encoding string) (*types.GetPhotoResponse, error) {
	path := s.photoPath(folderName, fileName)

	enc := vfs.Encoding(encoding)
	if enc == "" {
		enc = vfs.EncodingBase64
	}

	content, err := s.fs.ReadString(ctx, path, enc)
	if err != nil {
		return nil, err
	}

	rec := s.metaStore.Get(ctx, path)

	return &types.GetPhotoResponse{
		Folder:   folderName,
		FileName: fileName,
		Path:     path,
		Content:  content,
		Encoding: string(enc),
		Metadata: rec,
	}, nil
}

// ListGallery 列出文件夹内照片，按顺序编号升序（无编号的文件排最前）.
func (s *PhotoService) ListGallery(ctx context.Context, folderName string) (*types.GalleryResponse, error) {
	dir := s.folderDir(folderName)

	info, err := s.fs.Stat(ctx, dir)
	if err != nil {
		return nil, err
	}
	if !info.Exists {
		// 文件夹已注册但还没存过照片
		return &types.GalleryResponse{Folder: folderName, Photos: []types.GalleryEntry{}}, nil
	}

	names, err := s.fs.List(ctx, dir)
	if err != nil {
		return nil, err
	}

	photos := make([]types.GalleryEntry, 0, len(names))
	for _, name := range names {
		if !isImageName(name) {
			continue
		}
		path := dir + "/" + name
		st, err := s.fs.Stat(ctx, path)
		if err != nil {
			return nil, err
		}
		photos = append(photos, types.GalleryEntry{
			FileName: name,
			Path:     path,
			Number:   naming.ExtractNumber(name),
			Size:     st.Size,
		})
	}

	sort.SliceStable(photos, func(i, j int) bool { return photos[i].Number < photos[j].Number })

	return &types.GalleryResponse{Folder: folderName, Photos: photos}, nil
}

// MovePhoto 将照片移到另一个文件夹并迁移其元数据.
// 目标文件夹目录按需补齐；文件移动与元数据迁移是两次独立持久化，
// 中间失败时元数据可能暂留旧 URI，由孤儿清理任务兜底.
func (s *PhotoService) MovePhoto(ctx context.Context, req *types.MovePhotoRequest) (*types.MovePhotoResponse, error) {
	from := s.photoPath(req.FromFolder, req.FileName)

	toName := req.ToFileName
	if toName == "" {
		toName = req.FileName
	}
	to := s.photoPath(req.ToFolder, toName)

	if err := s.fs.Mkdir(ctx, s.folderDir(req.ToFolder), true); err != nil {
		return nil, err
	}
	if err := s.fs.Move(ctx, from, to); err != nil {
		return nil, err
	}

	// 只迁移这一个键，避免把文件名恰好以 from 开头的同目录邻居一并带走
	s.metaStore.Migrate(ctx, from, to)

	publish(ctx, s, queue.TopicPhotoMoved, configs.GetConfig().Events.Photo.Moved,
		queue.PhotoMovedPayload{
			From: queue.PhotoRef{Folder: req.FromFolder, FileName: req.FileName, Path: from},
			To:   queue.PhotoRef{Folder: req.ToFolder, FileName: toName, Path: to},
		})

	return &types.MovePhotoResponse{From: from, To: to}, nil
}

// CopyPhoto 复制照片. 元数据不随拷贝复制，新照片从空元数据开始.
func (s *PhotoService) CopyPhoto(ctx context.Context, req *types.CopyPhotoRequest) (*types.CopyPhotoResponse, error) {
	from := s.photoPath(req.FromFolder, req.FileName)

	toName := req.ToFileName
	if toName == "" {
		toName = s.naming.GenerateFileName(ctx, req.ToFolder)
	}
	to := s.photoPath(req.ToFolder, toName)

	if err := s.fs.Mkdir(ctx, s.folderDir(req.ToFolder), true); err != nil {
		return nil, err
	}
	if err := s.fs.Copy(ctx, from, to); err != nil {
		return nil, err
	}

	publish(ctx, s, queue.TopicPhotoCopied, configs.GetConfig().Events.Photo.Stored,
		queue.PhotoCopiedPayload{
			From: queue.PhotoRef{Folder: req.FromFolder, FileName: req.FileName, Path: from},
			To:   queue.PhotoRef{Folder: req.ToFolder, FileName: toName, Path: to},
		})

	return &types.CopyPhotoResponse{From: from, To: to, FileName: toName}, nil
}

// DeletePhoto 删除照片及其元数据. idempotent 为 true 时照片不存在不报错.
func (s *PhotoService) DeletePhoto(ctx context.Context, req *types.DeletePhotoRequest) error {
	path := s.photoPath(req.Folder, req.FileName)

	if err := s.fs.Delete(ctx, path, req.Idempotent); err != nil {
		return err
	}

	s.metaStore.Remove(ctx, path)

	publish(ctx, s, queue.TopicPhotoDeleted, configs.GetConfig().Events.Photo.Deleted,
		queue.PhotoDeletedPayload{
			Photo: queue.PhotoRef{Folder: req.Folder, FileName: req.FileName, Path: path},
		})

	return nil
}

func isImageName(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}
