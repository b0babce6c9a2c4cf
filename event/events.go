package event

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

// PublishEvent hands a committed change to the registered handlers, their failures never reach the caller.
func PublishEvent(sourceType string, sourceId types.ID, sourceDesc string, category EventCategory,
	updatedProperties UpdatedProperties, updatedRelations UpdatedRelations, payload interface{}) *EventRecord {

	record := EventRecord{
		Event: Event{
			SourceType: sourceType,
			SourceId:   sourceId,
			SourceDesc: sourceDesc,

			EventCategory:     category,
			UpdatedProperties: updatedProperties,
			UpdatedRelations:  updatedRelations,
			Payload:           payload,
		},
		Timestamp: time.Now(),
	}
	InvokeHandlersFunc(&record)
	return &record
}
