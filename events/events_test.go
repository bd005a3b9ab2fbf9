package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/rs/zerolog"
)

func TestTypedMessageHandler(t *testing.T) {
	var got []string
	h := &TypedMessageHandler[ScriptConsumed]{
		Validate:   func(m *ScriptConsumed) bool { return len(m.DocumentIDs) > 0 },
		Process:    func(_ context.Context, m *ScriptConsumed) error { got = append(got, m.DocumentIDs...); return nil },
		AlwaysMark: true,
	}

	cases := []struct {
		name     string
		payload  string
		wantMark bool
	}{
		{"valid", `{"date":"20250401","document_ids":["a","b"]}`, true},
		{"garbage", `not json`, true},
		{"rejected", `{"date":"20250401","document_ids":[]}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mark, err := h.HandleMessage(context.Background(), []byte(tc.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mark != tc.wantMark {
				t.Fatalf("mark = %v, want %v", mark, tc.wantMark)
			}
		})
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 processed ids, got %v", got)
	}
}

func TestTypedMessageHandlerProcessFailure(t *testing.T) {
	h := &TypedMessageHandler[ScriptConsumed]{
		Process:    func(context.Context, *ScriptConsumed) error { return errors.New("store down") },
		AlwaysMark: true,
	}
	mark, err := h.HandleMessage(context.Background(), []byte(`{"document_ids":["a"]}`))
	if err == nil || mark {
		t.Fatalf("processing failure must not mark, got mark=%v err=%v", mark, err)
	}
}

func TestProducerPublish(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, cfg)
	mp.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev ScriptGenerated
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Date != "20250401" || len(ev.DocumentIDs) != 3 {
			return errors.New("unexpected event payload")
		}
		return nil
	})

	p := NewProducerWith(mp, zerolog.Nop())
	defer p.Close()

	err := p.Publish(context.Background(), TopicScriptGenerated, "20250401", ScriptGenerated{
		Date:        "20250401",
		DocumentIDs: []string{"a", "b", "c"},
		ScriptKey:   "scripts/20250401.json",
	})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestProducerPublishFailure(t *testing.T) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	mp := mocks.NewSyncProducer(t, cfg)
	mp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerWith(mp, zerolog.Nop())
	defer p.Close()

	if err := p.Publish(context.Background(), TopicScriptGenerated, "k", ScriptGenerated{}); !errors.Is(err, sarama.ErrOutOfBrokers) {
		t.Fatalf("expected ErrOutOfBrokers, got %v", err)
	}
}
