package service

import (
	"context"

	"github.com/yeisme/photovault/pkg/configs"
	"github.com/yeisme/photovault/pkg/internal/meta"
	"github.com/yeisme/photovault/pkg/internal/types"
	"github.com/yeisme/photovault/pkg/queue"
)

// GetMetadata 返回照片的元数据及其各标签的颜色.
func (s *PhotoService) GetMetadata(ctx context.Context, folderName, fileName string) *types.MetadataResponse {
	uri := s.photoPath(folderName, fileName)
	rec := s.metaStore.Get(ctx, uri)

	colors := make(map[string]string, len(rec.Tags))
	for _, tag := range rec.Tags {
		colors[tag] = s.metaStore.Color(ctx, tag)
	}

	return &types.MetadataResponse{URI: uri, Metadata: rec, TagColors: colors}
}

// UpdateMetadata 部分更新照片的注释或标签集.
func (s *PhotoService) UpdateMetadata(ctx context.Context, folderName, fileName string, req *types.UpdateMetadataRequest) *types.MetadataResponse {
	uri := s.photoPath(folderName, fileName)

	rec := s.metaStore.Update(ctx, uri, meta.Patch{
		Annotations: req.Annotations,
		Tags:        req.Tags,
	})

	publish(ctx, s, queue.TopicMetaUpdated, configs.GetConfig().Events.Photo.MetaUpdated,
		queue.MetaUpdatedPayload{URI: uri, Tags: rec.Tags})

	return &types.MetadataResponse{URI: uri, Metadata: rec}
}

// AddTag 给照片贴标签，返回更新后的标签集与标签颜色.
func (s *PhotoService) AddTag(ctx context.Context, folderName, fileName, tag string) *types.TagsResponse {
	uri := s.photoPath(folderName, fileName)
	tags := s.metaStore.AddTag(ctx, uri, tag)
	color := s.metaStore.Color(ctx, tag)

	publish(ctx, s, queue.TopicMetaUpdated, configs.GetConfig().Events.Photo.MetaUpdated,
		queue.MetaUpdatedPayload{URI: uri, Tags: tags})

	return &types.TagsResponse{URI: uri, Tags: tags, TagColor: color}
}

// RemoveTag 摘除照片标签.
func (s *PhotoService) RemoveTag(ctx context.Context, folderName, fileName, tag string) *types.TagsResponse {
	uri := s.photoPath(folderName, fileName)
	tags := s.metaStore.RemoveTag(ctx, uri, tag)

	publish(ctx, s, queue.TopicMetaUpdated, configs.GetConfig().Events.Photo.MetaUpdated,
		queue.MetaUpdatedPayload{URI: uri, Tags: tags})

	return &types.TagsResponse{URI: uri, Tags: tags}
}

// AllTags 返回标签全集及全部颜色映射.
func (s *PhotoService) AllTags(ctx context.Context) *types.AllTagsResponse {
	return &types.AllTagsResponse{
		Tags:   s.metaStore.AllTags(ctx),
		Colors: s.metaStore.AllColors(ctx),
	}
}

// TagColor 返回标签颜色，首次访问时从调色板分配并持久化.
func (s *PhotoService) TagColor(ctx context.Context, tag string) *types.TagColorResponse {
	return &types.TagColorResponse{Tag: tag, Color: s.metaStore.Color(ctx, tag)}
}

// SetTagColor 覆盖标签颜色.
func (s *PhotoService) SetTagColor(ctx context.Context, tag, color string) *types.TagColorResponse {
	s.metaStore.SetColor(ctx, tag, color)
	return &types.TagColorResponse{Tag: tag, Color: color}
}

// RemoveTagColor 删除标签颜色映射，下次访问重新分配.
func (s *PhotoService) RemoveTagColor(ctx context.Context, tag string) {
	s.metaStore.RemoveColor(ctx, tag)
}

// AllTagColors 返回完整的标签颜色表.
func (s *PhotoService) AllTagColors(ctx context.Context) map[string]string {
	return s.metaStore.AllColors(ctx)
}

// SweepOrphanMetadata 删除 URI 已无对应照片文件的元数据条目，返回删除数量.
func (s *PhotoService) SweepOrphanMetadata(ctx context.Context) int {
	removed := 0

	for _, uri := range s.metaStore.URIsWithPrefix(ctx, s.photosRoot+"/") {
		info, err := s.fs.Stat(ctx, uri)
		if err != nil || info.Exists {
			continue
		}

		s.metaStore.Remove(ctx, uri)
		removed++

		publish(ctx, s, queue.TopicMetaRemoved, configs.GetConfig().Events.Photo.MetaUpdated,
			queue.MetaRemovedPayload{URI: uri})
	}

	return removed
}

// DeleteTagGlobally 全局删除标签（所有照片与颜色）.
func (s *PhotoService) DeleteTagGlobally(ctx context.Context, tag string) *types.DeleteTagResponse {
	changed := s.metaStore.DeleteTagGlobally(ctx, tag)

	publish(ctx, s, queue.TopicTagDeleted, configs.GetConfig().Events.Photo.TagDeleted,
		queue.TagDeletedPayload{Tag: tag, PhotosChanged: changed})

	return &types.DeleteTagResponse{Tag: tag, PhotosChanged: changed}
}
