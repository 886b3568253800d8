package events

import (
	"context"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", Ordered, func() {
	Context("buffer", func() {
		It("keeps FIFO order", func() {
			buffer := newBuffer()

			buffer.PushBack(&message{Kind: BriefMessageKind, Data: []byte("msg1")})
			Expect(buffer.Size()).To(Equal(1))

			buffer.PushBack(&message{Kind: BriefMessageKind, Data: []byte("msg2")})
			buffer.PushBack(&message{Kind: BriefMessageKind, Data: []byte("msg3")})
			Expect(buffer.Size()).To(Equal(3))

			Expect(buffer.Pop().Data).To(Equal([]byte("msg1")))
			Expect(buffer.Pop().Data).To(Equal([]byte("msg2")))
			Expect(buffer.Pop().Data).To(Equal([]byte("msg3")))
			Expect(buffer.Pop()).To(BeNil())
			Expect(buffer.Size()).To(Equal(0))
		})
	})
})

var _ = Describe("producer", Ordered, func() {
	Context("emit", func() {
		It("delivers events to the writer", func() {
			w := newTestWriter()
			ep := NewEventProducer(w)

			err := ep.Emit(context.TODO(), BriefMessageKind, BriefSavedEvent{
				ProjectID: uuid.New(),
				BriefID:   uuid.New(),
				Version:   1,
				IsValid:   true,
			})
			Expect(err).To(BeNil())

			err = ep.Emit(context.TODO(), AdMessageKind, AdRequestedEvent{
				ProjectID:   uuid.New(),
				AdID:        uuid.New(),
				Format:      "video",
				FunnelStage: "TOFU",
			})
			Expect(err).To(BeNil())

			Eventually(func() int { return w.Len() }, 2*time.Second).Should(Equal(2))
			Expect(w.Get(0).Type()).To(Equal(BriefMessageKind))
			Expect(w.Get(0).Source()).To(Equal(eventSource))
			Expect(w.Get(1).Type()).To(Equal(AdMessageKind))

			ep.Close()
		})

		It("keys events by project", func() {
			w := newTestWriter()
			ep := NewEventProducer(w)
			projectID := uuid.New()

			err := ep.Emit(context.TODO(), BriefMessageKind, BriefSavedEvent{
				ProjectID: projectID,
				BriefID:   uuid.New(),
				Version:   1,
			})
			Expect(err).To(BeNil())

			err = ep.Emit(context.TODO(), AdMessageKind, AdRequestedEvent{
				ProjectID: projectID,
				AdID:      uuid.New(),
			})
			Expect(err).To(BeNil())

			Eventually(func() int { return w.Len() }, 2*time.Second).Should(Equal(2))
			Expect(w.Get(0).Subject()).To(Equal(projectID.String()))
			Expect(w.Get(1).Subject()).To(Equal(projectID.String()))

			ep.Close()
		})

		It("honors a custom topic", func() {
			w := newTestWriter()
			ep := NewEventProducer(w, WithOutputTopic("custom.topic"))

			err := ep.Emit(context.TODO(), AdsAnalysisMessageKind, AdsAnalysisRequestedEvent{
				ProjectID:   uuid.New(),
				Competitors: 3,
			})
			Expect(err).To(BeNil())

			Eventually(func() int { return w.Len() }, 2*time.Second).Should(Equal(1))
			Expect(w.Topic(0)).To(Equal("custom.topic"))

			ep.Close()
		})
	})
})

type testwriter struct {
	mu       sync.Mutex
	messages []cloudevents.Event
	topics   []string
}

func newTestWriter() *testwriter {
	return &testwriter{}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Close(_ context.Context) error {
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *testwriter) Get(i int) cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.messages[i]
}

func (t *testwriter) Topic(i int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.topics[i]
}
