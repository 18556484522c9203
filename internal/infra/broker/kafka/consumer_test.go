package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
)

type scriptedHandler struct {
	failOffsets map[int64]error
	handled     []int64
}

func (h *scriptedHandler) Handle(_ context.Context, msg *sarama.ConsumerMessage) error {
	h.handled = append(h.handled, msg.Offset)
	return h.failOffsets[msg.Offset]
}

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return nil }
func (s *fakeSession) MemberID() string           { return "member-1" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string)  {}
func (s *fakeSession) Commit()                                  {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                              { return "moto.events.v1" }
func (c *fakeClaim) Partition() int32                           { return 0 }
func (c *fakeClaim) InitialOffset() int64                       { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64                 { return 0 }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage   { return c.messages }

func TestConsumeClaimMarksOnlyHandledMessages(t *testing.T) {
	handler := &scriptedHandler{failOffsets: map[int64]error{
		1: errors.New("store unavailable"),
	}}
	session := &fakeSession{ctx: context.Background()}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 3)}
	for offset := int64(0); offset < 3; offset++ {
		claim.messages <- &sarama.ConsumerMessage{Topic: "moto.events.v1", Offset: offset}
	}
	close(claim.messages)

	gh := &groupHandler{handler: handler}
	if err := gh.ConsumeClaim(session, claim); err != nil {
		t.Fatalf("ConsumeClaim: %v", err)
	}

	if len(handler.handled) != 3 {
		t.Fatalf("handled %d messages, want 3", len(handler.handled))
	}
	if len(session.marked) != 2 {
		t.Fatalf("marked %d offsets, want 2", len(session.marked))
	}
	for _, offset := range session.marked {
		if offset == 1 {
			t.Error("failed offset 1 was marked, must stay unmarked for redelivery")
		}
	}
}
