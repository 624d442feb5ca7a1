package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/yeisme/photovault/pkg/queue"
)

func TestMessageEnvelopeRoundTrip(t *testing.T) {
	payload := queue.PhotoStoredPayload{
		Photo: queue.PhotoRef{
			Folder:   "Chemistry",
			FileName: "photo_001.jpg",
			Path:     "/photos/Chemistry/photo_001.jpg",
			Size:     42,
		},
		Source: "capture",
	}

	msg, err := queue.NewWatermillMessage(queue.TopicPhotoStored, payload,
		queue.WithProducer("photovault"), queue.WithTraceID("trace-1"))
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	env, err := queue.ParsePhotoStored(msg)
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}

	if env.Header.Topic != queue.TopicPhotoStored {
		t.Fatalf("header topic: %q", env.Header.Topic)
	}

	if env.Header.Producer != "photovault" || env.Header.TraceID != "trace-1" {
		t.Fatalf("header: %+v", env.Header)
	}

	if env.Payload.Photo.Path != payload.Photo.Path || env.Payload.Source != "capture" {
		t.Fatalf("payload: %+v", env.Payload)
	}
}

func TestPublishPhotoStoredOverChannel(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	t.Cleanup(func() { _ = pubSub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	msgs, err := pubSub.Subscribe(ctx, queue.TopicPhotoStored)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	payload := queue.PhotoStoredPayload{
		Photo: queue.PhotoRef{Folder: "Trips", FileName: "photo_007.jpg", Path: "/photos/Trips/photo_007.jpg"},
	}

	if err := queue.PublishPhotoStored(pubSub, payload); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-msgs:
		env, err := queue.ParsePhotoStored(msg)
		if err != nil {
			t.Fatalf("parse delivered message: %v", err)
		}

		if env.Payload.Photo.FileName != "photo_007.jpg" {
			t.Fatalf("delivered payload: %+v", env.Payload)
		}

		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}
