package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishPhotoStored 发布 pv.photo.stored 事件。
// 用于照片写入虚拟文件系统后通知下游流程（计数器、索引等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishPhotoStored(pub message.Publisher, payload PhotoStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicPhotoStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicPhotoStored, msg)
}

// ParsePhotoStored 将 Watermill 消息解析为强类型 Envelope（PhotoStoredPayload）。
func ParsePhotoStored(msg *message.Message) (Message[PhotoStoredPayload], error) {
	return ParseWatermillMessage[PhotoStoredPayload](msg)
}
