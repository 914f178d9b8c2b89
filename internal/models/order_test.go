package models

import "testing"

func TestValidOrderStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		if !ValidOrderStatus(status) {
			t.Fatalf("expected %q to be a valid status", status)
		}
	}

	invalid := []string{"", "pending", "TO_PAY", "to pay", "done"}
	for _, status := range invalid {
		if ValidOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestUnresolvedStatusesBlockDeletion(t *testing.T) {
	unresolved := map[string]bool{
		StatusToPay:     true,
		StatusToShip:    true,
		StatusToReceive: true,
	}

	if len(UnresolvedStatuses) != 3 {
		t.Fatalf("expected 3 unresolved statuses, got %d", len(UnresolvedStatuses))
	}
	for _, status := range UnresolvedStatuses {
		if !unresolved[status] {
			t.Fatalf("unexpected unresolved status %q", status)
		}
	}
	for _, status := range []string{StatusCompleted, StatusRefund, StatusCancelled} {
		if unresolved[status] {
			t.Fatalf("%q must not block deletion", status)
		}
	}
}
