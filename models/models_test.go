package models

import "testing"

func TestPaymentKey(t *testing.T) {
	tests := []struct {
		name      string
		studentID string
		classID   uint
		month     string
		exp       string
	}{
		{"normal key", "s1", 7, "2025-01", "s1_7_2025-01"},
		{"pending student", PendingStudentID, 3, "2024-12", "pending_3_2024-12"},
		{"empty month", "s1", 7, "", "s1_7_"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := PaymentKey(tc.studentID, tc.classID, tc.month); got != tc.exp {
				t.Fatalf("expected %q, got %q", tc.exp, got)
			}
		})
	}
}

func TestPaymentStatusKey(t *testing.T) {
	p := PaymentStatus{StudentID: "s9", ClassID: 12, Month: "2025-03"}
	if got := p.Key(); got != "s9_12_2025-03" {
		t.Fatalf("expected s9_12_2025-03, got %q", got)
	}
}
