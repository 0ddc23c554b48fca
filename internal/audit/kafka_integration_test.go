//go:build integration

package audit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"prequal/pkg/testutil/containers"
)

func TestKafkaSinkAppend(t *testing.T) {
	rp := containers.NewRedpandaContainer(t)

	const topic = "prequal.evaluations.test"
	sink, err := NewKafkaSink([]string{rp.Broker}, topic)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })

	rate := 13.5
	event := Event{
		Timestamp:   time.Now().UTC().Truncate(time.Millisecond),
		RequestID:   "req-integration",
		Phone:       "+919812345678",
		LenderID:    "hdfc_bank",
		Path:        PathBRE,
		Eligible:    true,
		ReasonCodes: []string{},
		Rate:        &rate,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(rp.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, []byte("+919812345678"), records[0].Key)

	var got Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, "hdfc_bank", got.LenderID)
	require.Equal(t, "req-integration", got.RequestID)
	require.True(t, got.Eligible)
	require.NotNil(t, got.Rate)
	require.Equal(t, 13.5, *got.Rate)
}
