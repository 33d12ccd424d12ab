package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/victoragudo/hotel-booking-aggregator/internal/application/polling"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
)

const (
	hotelListJSON = `[
		{"id":"diH7","name":"The Fullerton Hotel","address":"1 Fullerton Square","rating":5,"latitude":1.28624,"longitude":103.852889,"trustyou":{"score":{"overall":95}}},
		{"id":"obxM","name":"Marina Bay Sands","address1":"10 Bayfront Avenue","rating":4.5,"trustyou":{"score":{"kaligo_overall":8.9}}}
	]`
	completedPricesJSON = `{"completed":true,"currency":"USD","hotels":[
		{"id":"obxM","converted_price":420.5,"lowest_converted_price":400,"rooms_available":2,"free_cancellation":false},
		{"id":"diH7","converted_price":310,"lowest_converted_price":290,"rooms_available":5,"free_cancellation":true}
	]}`
	pendingPricesJSON = `{"completed":false,"hotels":[]}`
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noWait(context.Context, time.Duration) error {
	return nil
}

func newTestPoller(t *testing.T, provider hotel.Provider, maxAttempts int) *polling.Poller {
	t.Helper()
	poller, err := polling.NewPoller(provider, polling.Policy{MaxAttempts: maxAttempts, Interval: time.Millisecond}, discardLogger(), polling.WithWaitFunc(noWait))
	require.NoError(t, err)
	return poller
}

func raw(body string) json.RawMessage {
	return json.RawMessage(body)
}
