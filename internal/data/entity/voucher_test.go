package entity

import "testing"

func TestDiscountFor(t *testing.T) {
	tests := []struct {
		name    string
		voucher Voucher
		total   int64
		want    int64
	}{
		{
			name:    "fixed discount",
			voucher: Voucher{DiscountType: DiscountTypeFixed, DiscountValue: 100000, MinSpend: 500000},
			total:   1000000,
			want:    100000,
		},
		{
			name:    "below minimum spend",
			voucher: Voucher{DiscountType: DiscountTypeFixed, DiscountValue: 100000, MinSpend: 2000000},
			total:   1000000,
			want:    0,
		},
		{
			name:    "percent discount",
			voucher: Voucher{DiscountType: DiscountTypePercent, DiscountValue: 10},
			total:   1000000,
			want:    100000,
		},
		{
			name:    "fixed discount capped at total",
			voucher: Voucher{DiscountType: DiscountTypeFixed, DiscountValue: 500000},
			total:   300000,
			want:    300000,
		},
		{
			name:    "minimum spend boundary",
			voucher: Voucher{DiscountType: DiscountTypeFixed, DiscountValue: 50000, MinSpend: 500000},
			total:   500000,
			want:    50000,
		},
	}

	for _, tt := range tests {
		if got := tt.voucher.DiscountFor(tt.total); got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}
