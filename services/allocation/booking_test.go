package allocation

import (
	"testing"
	"time"

	ticketModel "bus-registration/models/ticket"
)

func TestTerminateTicketAlreadyTerminatedIsNoOp(t *testing.T) {
	terminatedAt := time.Now().Add(-time.Hour)
	ticket := &ticketModel.Ticket{
		ID:           1,
		TicketID:     "BT-1-A",
		IsTerminated: true,
		TerminatedAt: &terminatedAt,
	}

	// nil db: a second termination must return before touching storage.
	if err := TerminateTicket(nil, ticket, "admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ticket.TerminatedAt.Equal(terminatedAt) {
		t.Fatal("termination timestamp must not change on repeat calls")
	}
}
