package services

import (
	"testing"

	"classtrack_go/models"
)

func TestFlipPayment(t *testing.T) {
	if got := flipPayment(models.PaymentUnpaid); got != models.PaymentPaid {
		t.Fatalf("expected paid, got %q", got)
	}
	if got := flipPayment(models.PaymentPaid); got != models.PaymentUnpaid {
		t.Fatalf("expected unpaid, got %q", got)
	}
	// An absent row reads as unpaid, so the first flip always lands on paid.
	if got := flipPayment(""); got != models.PaymentPaid {
		t.Fatalf("expected paid for unknown status, got %q", got)
	}
}

func TestFlipPaymentRoundTrip(t *testing.T) {
	for _, start := range []string{models.PaymentPaid, models.PaymentUnpaid} {
		if got := flipPayment(flipPayment(start)); got != start {
			t.Fatalf("double flip of %q returned %q", start, got)
		}
	}
}

func TestToggleCreatesPaidRow(t *testing.T) {
	db := newTestDB(t)
	ps := NewPaymentService()

	status, err := ps.Toggle("t1", "s1", 3, "2025-01")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if status != models.PaymentPaid {
		t.Fatalf("first toggle = %q, want paid", status)
	}

	var rows []models.PaymentStatus
	if err := db.Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want exactly one lazily created row", len(rows))
	}
	row := rows[0]
	if row.StudentID != "s1" || row.ClassID != 3 || row.Month != "2025-01" {
		t.Fatalf("row key = %q, want s1_3_2025-01", row.Key())
	}
	if row.Status != models.PaymentPaid || row.TeacherID != "t1" {
		t.Fatalf("row = %+v, want paid attributed to t1", row)
	}
}

func TestToggleRoundTripsWithoutExtraRows(t *testing.T) {
	db := newTestDB(t)
	ps := NewPaymentService()

	if _, err := ps.Toggle("t1", "s1", 3, "2025-01"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	status, err := ps.Toggle("t1", "s1", 3, "2025-01")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if status != models.PaymentUnpaid {
		t.Fatalf("second toggle = %q, want unpaid", status)
	}

	stored, err := ps.StatusFor("s1", 3, "2025-01")
	if err != nil {
		t.Fatalf("status for: %v", err)
	}
	if stored != models.PaymentUnpaid {
		t.Fatalf("stored status = %q, want unpaid", stored)
	}

	var count int64
	db.Model(&models.PaymentStatus{}).Count(&count)
	if count != 1 {
		t.Fatalf("rows after round trip = %d, want the row updated in place", count)
	}

	status, err = ps.Toggle("t1", "s1", 3, "2025-01")
	if err != nil {
		t.Fatalf("third toggle: %v", err)
	}
	if status != models.PaymentPaid {
		t.Fatalf("third toggle = %q, want paid again", status)
	}
}

func TestStatusForAbsentRowReadsUnpaid(t *testing.T) {
	newTestDB(t)
	ps := NewPaymentService()

	status, err := ps.StatusFor("s1", 3, "2025-01")
	if err != nil {
		t.Fatalf("status for: %v", err)
	}
	if status != models.PaymentUnpaid {
		t.Fatalf("absent row reads %q, want unpaid", status)
	}
}
