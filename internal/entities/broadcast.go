package entities

import "github.com/google/uuid"

type BroadcastKind int

const (
	BroadcastText BroadcastKind = iota
	BroadcastForward
)

// BroadcastJob is one admin-initiated delivery to a list of recipients.
// Jobs travel through the queue to the broadcaster service.
type BroadcastJob struct {
	Id         uuid.UUID
	Kind       BroadcastKind
	Text       string
	FromChatId int64 // forward source
	MessageId  int
	Recipients []int64
	ReportTo   int64 // chat that receives the delivered/failed totals
}
