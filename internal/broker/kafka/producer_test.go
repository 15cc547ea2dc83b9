package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := newProducerWithWriter(fw)

	require.NoError(t, p.Publish(context.Background(), "request.mirrored", []byte("MRKU1234567"), []byte(`{}`)))
	require.Len(t, fw.last, 1)
	require.Equal(t, "request.mirrored", fw.last[0].Topic)
	require.Equal(t, []byte("MRKU1234567"), fw.last[0].Key)
}

func TestProducer_PublishError(t *testing.T) {
	fw := &fakeWriter{err: context.DeadlineExceeded}
	p := newProducerWithWriter(fw)
	require.Error(t, p.Publish(context.Background(), "t", nil, nil))
}

func TestNewProducer_Close(t *testing.T) {
	p := NewProducer([]string{"localhost:0"})
	require.NotNil(t, p)
	require.NoError(t, p.Close())
}
