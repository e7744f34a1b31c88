package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProducer_InertWithoutBrokers(t *testing.T) {
	t.Parallel()

	p := NewProducer(nil)

	err := p.PublishEvent(context.Background(), TopicSweetEvents, "key", map[string]any{"type": "sweet_created"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestProducer_MarshalFailure(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"localhost:9092"})
	t.Cleanup(func() { _ = p.Close() })

	err := p.PublishEvent(context.Background(), TopicSweetEvents, "key", map[string]any{"bad": make(chan int)})
	require.Error(t, err)
}
