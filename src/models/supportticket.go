package models

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusNew    TicketStatus = "new"
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

type SupportTicket struct {
	ID        int       `db:"id"`
	Reference uuid.UUID `db:"reference"`

	UserID *int `db:"user_id"` // nil when submitted anonymously

	Email   string `db:"email"`
	Subject string `db:"subject"`
	Message string `db:"message"`

	Timestamp time.Time    `db:"timestamp"`
	Status    TicketStatus `db:"status"`
}
