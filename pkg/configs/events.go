package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled bool              `mapstructure:"enabled"` // 总开关
	Photo   PhotoEventsConfig `mapstructure:"photo"`
}

// PhotoEventsConfig 针对照片领域的事件开关。
type PhotoEventsConfig struct {
	Stored        bool `mapstructure:"stored"`
	Moved         bool `mapstructure:"moved"`
	Deleted       bool `mapstructure:"deleted"`
	MetaUpdated   bool `mapstructure:"meta_updated"`
	TagDeleted    bool `mapstructure:"tag_deleted"`
	FolderChanged bool `mapstructure:"folder_changed"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", false)
	v.SetDefault("events.photo.stored", true)
	v.SetDefault("events.photo.moved", true)
	v.SetDefault("events.photo.deleted", true)
	v.SetDefault("events.photo.meta_updated", true)
	v.SetDefault("events.photo.tag_deleted", true)
	v.SetDefault("events.photo.folder_changed", true)
}
