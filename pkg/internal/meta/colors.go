package meta

import (
	"context"
	"math/rand"

	"github.com/bytedance/sonic"

	plog "github.com/yeisme/photovault/pkg/log"
)

// tagPalette 标签配色盘，首次访问某个标签的颜色时从中随机分配.
var tagPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#85C1E9", "#D7BDE2",
	"#A3E4D7", "#F9E79F", "#D5A6BD", "#AED6F1", "#A9DFBF",
}

func (s *Store) loadColors(ctx context.Context) map[string]string {
	raw, ok := s.store.Get(ctx, tagColorsKey)
	if !ok || raw == "" {
		return map[string]string{}
	}
	colors := map[string]string{}
	if err := sonic.UnmarshalString(raw, &colors); err != nil {
		plog.Logger().Warn().Err(err).Msg("tag colors blob corrupted, starting empty")
		return map[string]string{}
	}
	return colors
}

func (s *Store) saveColors(ctx context.Context, colors map[string]string) {
	raw, err := sonic.MarshalString(colors)
	if err != nil {
		plog.Logger().Error().Err(err).Msg("marshal tag colors")
		return
	}
	s.store.Set(ctx, tagColorsKey, raw)
}

// Color 返回标签的颜色. 未分配过的标签随机取色并持久化，
// 后续访问保持稳定.
func (s *Store) Color(ctx context.Context, tag string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	colors := s.loadColors(ctx)
	if c, ok := colors[tag]; ok {
		return c
	}
	c := tagPalette[rand.Intn(len(tagPalette))]
	colors[tag] = c
	s.saveColors(ctx, colors)
	return c
}

// SetColor 显式指定标签颜色.
func (s *Store) SetColor(ctx context.Context, tag, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	colors := s.loadColors(ctx)
	colors[tag] = color
	s.saveColors(ctx, colors)
}

// RemoveColor 删除标签颜色，未分配时为空操作.
func (s *Store) RemoveColor(ctx context.Context, tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	colors := s.loadColors(ctx)
	if _, ok := colors[tag]; !ok {
		return
	}
	delete(colors, tag)
	s.saveColors(ctx, colors)
}

// AllColors 返回全部标签颜色映射.
func (s *Store) AllColors(ctx context.Context) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadColors(ctx)
}
