// Package service 实现照片库的业务逻辑：照片存取、文件夹管理、元数据与搜索.
// 服务对象从请求上下文取出存储管理器，逐请求构造，无内部状态.
package service

import (
	"context"

	"github.com/yeisme/photovault/pkg/cache"
	"github.com/yeisme/photovault/pkg/configs"
	ctxPkg "github.com/yeisme/photovault/pkg/context"
	"github.com/yeisme/photovault/pkg/internal/meta"
	"github.com/yeisme/photovault/pkg/internal/naming"
	"github.com/yeisme/photovault/pkg/internal/registry"
	"github.com/yeisme/photovault/pkg/internal/storage/kv"
	"github.com/yeisme/photovault/pkg/internal/storage/mq"
	"github.com/yeisme/photovault/pkg/internal/storage/vfs"
	plog "github.com/yeisme/photovault/pkg/log"
	"github.com/yeisme/photovault/pkg/queue"
)

// PhotoService 聚合照片库业务所需的全部依赖.
type PhotoService struct {
	store      *kv.Store
	fs         *vfs.Client
	metaStore  *meta.Store
	naming     *naming.Service
	registry   *registry.Registry
	mqClient   *mq.Client
	cache      *cache.Cache
	photosRoot string
}

// NewPhotoService 从上下文的存储管理器构造服务.
func NewPhotoService(c context.Context) *PhotoService {
	store := ctxPkg.GetStore(c)
	fs := ctxPkg.GetVFSClient(c)
	photosRoot := configs.GetConfig().VFS.PhotosDir

	svc := &PhotoService{
		store:      store,
		fs:         fs,
		metaStore:  meta.NewStore(store),
		naming:     naming.NewService(store, fs, photosRoot),
		registry:   registry.New(store, fs, photosRoot),
		mqClient:   ctxPkg.GetMQClient(c),
		photosRoot: vfs.Normalize(photosRoot),
	}
	if kvc := ctxPkg.GetKVClient(c); kvc != nil {
		svc.cache = cache.NewCache(kvc)
	}

	return svc
}

// Meta 暴露元数据存储，供任务与测试直接操作.
func (s *PhotoService) Meta() *meta.Store { return s.metaStore }

// Naming 暴露命名服务.
func (s *PhotoService) Naming() *naming.Service { return s.naming }

// Registry 暴露文件夹注册表.
func (s *PhotoService) Registry() *registry.Registry { return s.registry }

// publish 发布领域事件. MQ 未初始化、总开关或分主题开关关闭时为空操作，
// 发布失败只记日志，不影响业务结果.
func publish[T any](ctx context.Context, s *PhotoService, topic string, enabled bool, payload T) {
	if s.mqClient == nil || !configs.GetConfig().Events.Enabled || !enabled {
		return
	}

	msg, err := queue.NewWatermillMessage(topic, payload, queue.WithProducer(configs.AppName))
	if err != nil {
		plog.Logger().Error().Err(err).Str("topic", topic).Msg("build event message")
		return
	}

	if err := s.mqClient.Publish(ctx, topic, msg); err != nil {
		plog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event")
	}
}

// SelfTest 对 KV 存储执行写读删自检.
func (s *PhotoService) SelfTest(ctx context.Context) bool {
	return s.store.SelfTest(ctx)
}
