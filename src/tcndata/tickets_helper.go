package tcndata

import (
	"context"
	"strings"
	"time"

	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/models"
	"git.teamcore.network/tcn/tcn/src/oops"
	"github.com/google/uuid"
)

/*
Records a support ticket. The submitter may be anonymous; logged-in users get
linked so staff can see their history. The opaque reference is what users
quote in follow-up mail, so the sequential id never leaks.
*/
func CreateTicket(ctx context.Context, dbConn db.ConnOrTx, userID *int, email, subject, message string) (*models.SupportTicket, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if strings.TrimSpace(subject) == "" {
		return nil, ValidationError{Field: "subject", Reason: "must not be empty"}
	}
	if strings.TrimSpace(message) == "" {
		return nil, ValidationError{Field: "message", Reason: "must not be empty"}
	}

	ticket, err := db.QueryOne[models.SupportTicket](ctx, dbConn,
		`
		INSERT INTO support_ticket (reference, user_id, email, subject, message, timestamp, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING $columns
		`,
		uuid.New(), userID, email, subject, message, time.Now(), models.TicketStatusNew,
	)
	if err != nil {
		return nil, oops.New(err, "failed to create support ticket")
	}
	return ticket, nil
}

// Fetches tickets for the staff dashboard, newest first.
func FetchTickets(ctx context.Context, dbConn db.ConnOrTx) ([]*models.SupportTicket, error) {
	tickets, err := db.Query[models.SupportTicket](ctx, dbConn,
		`
		SELECT $columns
		FROM support_ticket
		ORDER BY timestamp DESC, id DESC
		`,
	)
	if err != nil {
		return nil, oops.New(err, "failed to fetch support tickets")
	}
	return tickets, nil
}

// Moves a ticket through its lifecycle (new -> open -> closed, or back).
func UpdateTicketStatus(ctx context.Context, dbConn db.ConnOrTx, ticketID int, status models.TicketStatus) error {
	tag, err := dbConn.Exec(ctx,
		`
		UPDATE support_ticket
		SET status = $2
		WHERE id = $1
		`,
		ticketID, status,
	)
	if err != nil {
		return oops.New(err, "failed to update ticket status")
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound
	}
	return nil
}
