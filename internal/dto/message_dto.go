// FILE: internal/dto/message_dto.go
package dto

import "github.com/google/uuid"

// PublishRefreshEventMessage asks the consumer to rebuild one event's
// search text and embedding.
type PublishRefreshEventMessage struct {
	EventId uuid.UUID `json:"event_id"`
}
