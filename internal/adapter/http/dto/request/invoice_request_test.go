package request

import "testing"

func TestManualTriggerRequest_Normalized(t *testing.T) {
	r := ManualTriggerRequest{InvoiceID: " inv-1 ", PaymentIntentID: "  "}
	invoiceID, intentID := r.Normalized()
	if invoiceID != "inv-1" {
		t.Fatalf("expected inv-1, got %q", invoiceID)
	}
	if intentID != "" {
		t.Fatalf("expected empty intent id, got %q", intentID)
	}

	r2 := ManualTriggerRequest{PaymentIntentID: " pi_123 "}
	invoiceID, intentID = r2.Normalized()
	if invoiceID != "" || intentID != "pi_123" {
		t.Fatalf("unexpected result: %q %q", invoiceID, intentID)
	}
}
