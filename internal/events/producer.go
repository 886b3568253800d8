package events

import (
	"context"
	"encoding/json"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/made-to-scale/scaleops/pkg/metrics"
)

const (
	BriefMessageKind       string = "made-to-scale.scaleops.events.brief"
	GenerationMessageKind  string = "made-to-scale.scaleops.events.generation"
	AdMessageKind          string = "made-to-scale.scaleops.events.ad"
	AdsAnalysisMessageKind string = "made-to-scale.scaleops.events.ads-analysis"
	defaultTopic           string = "made-to-scale.scaleops.events"

	eventSource = "made-to-scale.scaleops"
)

// partitionKeyed payloads pin their events to one partition. All lifecycle
// events key on the project ID so events of one project stay ordered.
type partitionKeyed interface {
	PartitionKey() string
}

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer buffers lifecycle events so API requests never wait on the
// event sink.
type EventProducer struct {
	buffer           *buffer
	startConsumingCh chan any
	doneCh           chan any
	writer           Writer
	topic            string
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer:           newBuffer(),
		startConsumingCh: make(chan any),
		doneCh:           make(chan any),
		writer:           w,
		topic:            defaultTopic,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

// Emit marshals the payload and queues it under the given kind.
func (ep *EventProducer) Emit(ctx context.Context, kind string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &message{Kind: kind, Data: data}
	if keyed, ok := payload.(partitionKeyed); ok {
		msg.Key = keyed.PartitionKey()
	}

	prevSize := ep.buffer.Size()
	ep.buffer.PushBack(msg)

	if prevSize == 0 {
		// unblock the consumer loop
		ep.startConsumingCh <- struct{}{}
	}
	return nil
}

func (ep *EventProducer) Close() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		ep.doneCh <- struct{}{}
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event_producer").Info("event producer closed")
	return nil
}

func (ep *EventProducer) run() {
	for {
		select {
		case <-ep.doneCh:
			return
		default:
		}

		if ep.buffer.Size() == 0 {
			select {
			case <-ep.startConsumingCh:
			case <-ep.doneCh:
				return
			}
		}

		msg := ep.buffer.Pop()
		if msg == nil {
			continue
		}

		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource(eventSource)
		e.SetType(msg.Kind)
		if msg.Key != "" {
			e.SetSubject(msg.Key)
		}
		_ = e.SetData(*cloudevents.StringOfApplicationJSON(), msg.Data)

		if err := ep.writer.Write(context.TODO(), ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send message", "error", err, "event", e)
			continue
		}
		metrics.IncreaseEventsEmittedMetric(msg.Kind)
	}
}
