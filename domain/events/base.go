package events

import (
	"time"
)

// Event sources carried on the bus envelope. Rules match on these plus the
// detail type, so they are part of the wire contract.
const (
	SourceDeleteItemImages = "catalog.delete.item.images"
	SourceBatchDeleteItems = "catalog.batch.delete.items"
)

// Detail types (the envelope discriminant).
const (
	TypeDeleteItemImages = "DeleteItemImages"
	TypeBatchDeleteItems = "BatchDeleteItems"
)

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetSource() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"-"`
	EventType   string    `json:"-"`
	Source      string    `json:"-"`
	Timestamp   time.Time `json:"-"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetSource() string       { return e.Source }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
