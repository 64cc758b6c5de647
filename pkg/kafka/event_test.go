package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productPayload struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func TestNewEvent_PopulatesEnvelope(t *testing.T) {
	evt, err := NewEvent("catalog.product.created", "p-1", "product", "catalog", productPayload{
		ID: "p-1", Title: "Blue Widget", Price: 19.99,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "catalog.product.created", evt.EventType)
	assert.Equal(t, "p-1", evt.AggregateID)
	assert.Equal(t, 1, evt.Version)
	assert.WithinDuration(t, time.Now().UTC(), evt.Timestamp, time.Minute)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	evt, err := NewEvent("catalog.product.deleted", "p-2", "product", "catalog", productPayload{ID: "p-2"})
	require.NoError(t, err)

	raw, err := evt.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID, decoded.EventID)

	var payload productPayload
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "p-2", payload.ID)
}

func TestUnmarshalEvent_RejectsGarbage(t *testing.T) {
	_, err := UnmarshalEvent([]byte("not json"))
	assert.Error(t, err)
}
