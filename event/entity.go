package event

import (
	"time"

	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryCreated         = "CREATED"
	EventCategoryDeleted         = "DELETED"
	EventCategoryPropertyUpdated = "PROPERTY_UPDATED"
	EventCategoryRelationUpdated = "RELATION_UPDATED"
)

const (
	SourceTypeProject      = "PROJECT"
	SourceTypeTask         = "TASK"
	SourceTypeCollaborator = "COLLABORATOR"
)

type EventCategory string

type Event struct {
	SourceId   types.ID `json:"sourceId"`
	SourceType string   `json:"sourceType"`
	SourceDesc string   `json:"sourceDesc"`

	EventCategory     EventCategory     `json:"eventCategory"` // CREATED, DELETED, PROPERTY_UPDATED, RELATION_UPDATED
	UpdatedProperties UpdatedProperties `json:"updatedProperties,omitempty"`
	UpdatedRelations  UpdatedRelations  `json:"updatedRelations,omitempty"`

	// state of the source after the change, nil for deletions
	Payload interface{} `json:"payload,omitempty"`
}

type EventRecord struct {
	Event

	Timestamp time.Time `json:"timestamp"`
}

type UpdatedProperty struct {
	PropertyName string `json:"propertyName"`
	OldValue     string `json:"oldValue"`
	NewValue     string `json:"newValue"`
}

type UpdatedProperties []UpdatedProperty

type UpdatedRelation struct {
	PropertyName string `json:"propertyName"`
	TargetType   string `json:"targetType"`

	OldTargetId string `json:"oldTargetId"`
	NewTargetId string `json:"newTargetId"`
}

type UpdatedRelations []UpdatedRelation

// Track appends a property change when the value differs.
func (p UpdatedProperties) Track(name, oldValue, newValue string) UpdatedProperties {
	if oldValue == newValue {
		return p
	}
	return append(p, UpdatedProperty{PropertyName: name, OldValue: oldValue, NewValue: newValue})
}
