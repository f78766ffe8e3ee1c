package main

import (
	"errors"
	"strings"
	"testing"
)

func TestTicketRoundTrip(t *testing.T) {
	tk := NewTickets(nil)
	ticket, err := tk.Issue("match-1", "Ace")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	mid, name, err := tk.Validate(ticket)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mid != "match-1" || name != "Ace" {
		t.Errorf("got (%q, %q), want (match-1, Ace)", mid, name)
	}
}

func TestTicketRejectsTampering(t *testing.T) {
	tk := NewTickets(nil)
	ticket, err := tk.Issue("match-1", "Ace")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(ticket, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, _, err := tk.Validate(tampered); !errors.Is(err, errInvalidTicket) {
		t.Errorf("expected errInvalidTicket, got %v", err)
	}
	if _, _, err := tk.Validate("garbage"); !errors.Is(err, errInvalidTicket) {
		t.Errorf("expected errInvalidTicket for garbage, got %v", err)
	}
}

func TestTicketOtherSecret(t *testing.T) {
	ticket, err := NewTickets(nil).Issue("match-1", "Ace")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, _, err := NewTickets(nil).Validate(ticket); err == nil {
		t.Error("ticket signed with another secret should not validate")
	}
}

func TestTicketSecretPersisted(t *testing.T) {
	db := openTestDB(t)
	ticket, err := NewTickets(db).Issue("match-1", "Ace")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if db.GetSetting(ticketSecretKey) == "" {
		t.Fatal("secret was not stored")
	}
	if _, _, err := NewTickets(db).Validate(ticket); err != nil {
		t.Errorf("ticket should survive a restart: %v", err)
	}
}
