// FILE: internal/dto/event_dto_test.go
package dto_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-discovery-be/internal/dto"
	"event-discovery-be/internal/pkg/serverutils"
)

func validIngestRequest() dto.IngestEventRequest {
	start := time.Now().AddDate(0, 0, 7)
	return dto.IngestEventRequest{
		ExternalId: "ext-1",
		Title:      "Jazz night at the commons",
		StartTime:  &start,
	}
}

func TestIngestEventRequestValid(t *testing.T) {
	req := dto.IngestEventsRequest{Events: []dto.IngestEventRequest{validIngestRequest()}}
	assert.NoError(t, serverutils.ValidateRequest(req))
}

func TestIngestEventRequestTitleCappedAtColumnWidth(t *testing.T) {
	// The events table stores titles in varchar(255); anything longer has
	// to be rejected at validation instead of surfacing as a DB error.
	event := validIngestRequest()
	event.Title = strings.Repeat("x", 300)

	err := serverutils.ValidateRequest(dto.IngestEventsRequest{Events: []dto.IngestEventRequest{event}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title failed max")
}

func TestIngestEventRequestLocationCappedAtColumnWidth(t *testing.T) {
	event := validIngestRequest()
	event.Location = strings.Repeat("x", 256)

	err := serverutils.ValidateRequest(dto.IngestEventsRequest{Events: []dto.IngestEventRequest{event}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Location failed max")
}
