package service

import (
	"context"
	"strconv"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
)

// ListFolders 按注册顺序返回全部文件夹.
func (s *PhotoService) ListFolders(ctx context.Context) *types.ListFoldersResponse {
	return &types.ListFoldersResponse{Folders: s.registry.List(ctx)}
}

// CreateFolder 注册新文件夹. 目录延迟到首次存照片时创建.
func (s *PhotoService) CreateFolder(ctx context.Context, req *types.CreateFolderRequest) (*types.CreateFolderResponse, error) {
	name, err := s.registry.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	publish(ctx, s, queue.TopicFolderCreated, configs.GetConfig().Events.Photo.FolderChanged,
		queue.FolderCreatedPayload{Name: name})

	return &types.CreateFolderResponse{Name: name, Path: s.registry.DirPath(name)}, nil
}

// ResyncCounter 从文件夹目录里已有的照片文件重建顺序计数器.
func (s *PhotoService) ResyncCounter(ctx context.Context, folderName string) *types.ResyncCounterResponse {
	s.naming.Resync(ctx, folderName)

	counter := 0
	if raw, ok := s.store.Get(ctx, "photo_counter_"+folderName); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			counter = n
		}
	}

	publish(ctx, s, queue.TopicCounterResynced, configs.GetConfig().Events.Photo.FolderChanged,
		queue.CounterResyncedPayload{Folder: folderName})

	return &types.ResyncCounterResponse{Folder: folderName, Counter: counter}
}

// RenameFolder 改名文件夹：注册表与物理目录由注册表处理，
// 之后迁移元数据 URI 前缀并把顺序计数器跟到新名字下.
func (s *PhotoService) RenameFolder(ctx context.Context, oldName string, req *types.RenameFolderRequest) (*types.RenameFolderResponse, error) {
	if err := s.registry.Rename(ctx, oldName, req.NewName); err != nil {
		return nil, err
	}

	migrated := s.metaStore.MigratePrefix(ctx,
		s.folderDir(oldName)+"/", s.folderDir(req.NewName)+"/")

	s.moveCounter(ctx, oldName, req.NewName)

	publish(ctx, s, queue.TopicFolderRenamed, configs.GetConfig().Events.Photo.FolderChanged,
		queue.FolderRenamedPayload{OldName: oldName, NewName: req.NewName, MetaMigrated: migrated})

	return &types.RenameFolderResponse{
		OldName:      oldName,
		NewName:      req.NewName,
		MetaMigrated: migrated,
	}, nil
}

// moveCounter 把顺序计数器从旧文件夹名迁到新名字下，编号序列不中断.
func (s *PhotoService) moveCounter(ctx context.Context, oldName, newName string) {
	raw, ok := s.store.Get(ctx, "photo_counter_"+oldName)
	if !ok {
		return
	}
	if _, err := strconv.Atoi(raw); err != nil {
		return
	}
	s.store.Set(ctx, "photo_counter_"+newName, raw)
	s.store.Remove(ctx, "photo_counter_"+oldName)
}

// DeleteFolder 注销文件夹，删除其目录、全部照片、计数器，
// 并清理指向该目录的元数据.
func (s *PhotoService) DeleteFolder(ctx context.Context, name string) error {
	if err := s.registry.Delete(ctx, name); err != nil {
		return err
	}

	s.naming.Reset(ctx, name)
	s.removeMetaUnder(ctx, s.folderDir(name)+"/")

	publish(ctx, s, queue.TopicFolderDeleted, configs.GetConfig().Events.Photo.FolderChanged,
		queue.FolderDeletedPayload{Name: name})

	return nil
}

// removeMetaUnder 删除 URI 以 prefix 开头的全部元数据.
func (s *PhotoService) removeMetaUnder(ctx context.Context, prefix string) {
	for _, uri := range s.metaStore.URIsWithPrefix(ctx, prefix) {
		s.metaStore.Remove(ctx, uri)
	}
}
