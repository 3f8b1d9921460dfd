package entities

import "testing"

func TestTotalWithTaxCents(t *testing.T) {
	cases := []struct {
		name    string
		preTax  int64
		rate    float64
		total   int64
	}{
		{name: "zero rate", preTax: 10000, rate: 0, total: 10000},
		{name: "whole percent", preTax: 10000, rate: 10, total: 11000},
		{name: "fractional percent", preTax: 500000, rate: 8.5, total: 542500},
		{name: "round half up", preTax: 101, rate: 0.5, total: 102},
		{name: "small amount", preTax: 1, rate: 8.5, total: 1},
		{name: "large amount", preTax: 123456789, rate: 21, total: 149382715},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TotalWithTaxCents(tc.preTax, tc.rate)
			if got != tc.total {
				t.Fatalf("TotalWithTaxCents(%d, %v) = %d, want %d", tc.preTax, tc.rate, got, tc.total)
			}
		})
	}
}

func TestPreTaxFromTotalCentsRoundTrip(t *testing.T) {
	preTaxes := []int64{1000, 101, 500000, 9999, 123456789}
	rates := []float64{0, 0.5, 5, 8.5, 10, 21, 100}

	for _, preTax := range preTaxes {
		for _, rate := range rates {
			total := TotalWithTaxCents(preTax, rate)
			back := PreTaxFromTotalCents(total, rate)
			if back != preTax {
				t.Fatalf("round trip failed: preTax=%d rate=%v total=%d back=%d", preTax, rate, total, back)
			}
		}
	}
}

func TestPaymentDedupID(t *testing.T) {
	got := PaymentDedupID("user-1", ActivityInvoicePaid, "pi_123")
	want := "user-1#invoice_paid#pi_123"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
