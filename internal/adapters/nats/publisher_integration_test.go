//go:build integration
// +build integration

package natsadapter_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/locainsight/internal/adapters/nats"
	"github.com/samirrijal/locainsight/internal/core/domain"
)

func natsURL(t *testing.T) string {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("NATS_URL")
	if url == "" {
		url = nats.DefaultURL
	}
	return url
}

// TestPublishRecommendation_Integration publishes an event and reads it back
// from the stream.
func TestPublishRecommendation_Integration(t *testing.T) {
	url := natsURL(t)

	pub, err := natsadapter.NewPublisher(url)
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	defer pub.Close()

	if !pub.IsConnected() {
		t.Fatal("expected publisher to be connected")
	}

	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()
	js, err := nc.JetStream()
	if err != nil {
		t.Fatalf("jetstream: %v", err)
	}

	sub, err := js.SubscribeSync(natsadapter.SubjectGenerated, nats.DeliverNew())
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	event := &domain.RecommendationEvent{
		ID:        "it-" + time.Now().Format("150405.000000"),
		Location:  "Bilbao",
		Count:     3,
		Model:     "gpt-3.5-turbo",
		Duration:  1200 * time.Millisecond,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pub.PublishRecommendation(ctx, event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("next msg: %v", err)
	}

	var got domain.RecommendationEvent
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if got.ID != event.ID || got.Location != "Bilbao" || got.Count != 3 {
		t.Errorf("unexpected event: %+v", got)
	}
	if msg.Header.Get(nats.MsgIdHdr) != event.ID {
		t.Errorf("expected Nats-Msg-Id %q, got %q", event.ID, msg.Header.Get(nats.MsgIdHdr))
	}
}
