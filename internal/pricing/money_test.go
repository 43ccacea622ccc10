package pricing

import "testing"

func TestToKobo(t *testing.T) {
	tests := []struct {
		ngn  float64
		want int64
	}{
		{4500, 450000},
		{4500.00, 450000},
		{2500, 250000},
		{0.01, 1},
		{37500.5, 3750050},
		{0, 0},
	}

	for _, tt := range tests {
		if got := ToKobo(tt.ngn); got != tt.want {
			t.Fatalf("ToKobo(%v) = %d, want %d", tt.ngn, got, tt.want)
		}
	}
}

func TestFormatNGN(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{35000, "₦35,000"},
		{500, "₦500"},
		{1234567, "₦1,234,567"},
		{-2500, "-₦2,500"},
		{0, "₦0"},
	}

	for _, tt := range tests {
		if got := FormatNGN(tt.amount); got != tt.want {
			t.Fatalf("FormatNGN(%v) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}
