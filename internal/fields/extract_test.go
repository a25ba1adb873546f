package fields

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Record
	}{
		{
			name: "empty input yields empty record",
			text: "",
			want: Record{},
		},
		{
			name: "amount with thousands separators",
			text: "Total: $1,234.56",
			want: Record{Amount: "1234.56"},
		},
		{
			name: "amount label variants",
			text: "Balance due: €99.00",
			want: Record{Amount: "99.00"},
		},
		{
			name: "amount without currency symbol",
			text: "Invoice Total 42",
			want: Record{Amount: "42"},
		},
		{
			name: "amount value on following line",
			text: "Amount:\n£12.50",
			want: Record{Amount: "12.50"},
		},
		{
			name: "numeric date",
			text: "Date: 5/1/2024",
			want: Record{Date: "5/1/2024"},
		},
		{
			name: "numeric date with dashes and short year",
			text: "Date: 05-01-24",
			want: Record{Date: "05-01-24"},
		},
		{
			name: "textual date when no numeric date present",
			text: "Invoice Date: January 5, 2024",
			want: Record{Date: "January 5, 2024"},
		},
		{
			name: "bill date textual fallback",
			text: "Bill Date: March 12, 2023",
			want: Record{Date: "March 12, 2023"},
		},
		{
			name: "numeric date outranks textual date",
			text: "Invoice Date: May 1, 2024\nDate: 5/1/2024",
			want: Record{Date: "5/1/2024"},
		},
		{
			name: "buyer takes first line only",
			text: "Bill To: Acme Corp\n123 Main St",
			want: Record{Buyer: "Acme Corp"},
		},
		{
			name: "buyer label on last line of input",
			text: "some preamble\nBill To: Acme Corp",
			want: Record{Buyer: "Acme Corp"},
		},
		{
			name: "seller label variants",
			text: "Seller: Widgets Inc",
			want: Record{Seller: "Widgets Inc"},
		},
		{
			name: "seller label with empty trailing content",
			text: "Vendor:\nBill To: Acme Corp",
			want: Record{Buyer: "Acme Corp", Seller: ""},
		},
		{
			name: "first label occurrence wins for amount",
			text: "Subtotal: $10.00\nTotal: $15.00",
			want: Record{Amount: "10.00"},
		},
		{
			name: "all four fields together",
			text: "From: Widgets Inc\nBill To: Acme Corp\n456 Oak Ave\nDate: 12/31/2024\nTotal: $2,000.00",
			want: Record{Amount: "2000.00", Buyer: "Acme Corp", Seller: "Widgets Inc", Date: "12/31/2024"},
		},
		{
			name: "labels are case-insensitive",
			text: "bill to: acme corp\nTOTAL: 7.25",
			want: Record{Amount: "7.25", Buyer: "acme corp"},
		},
		{
			name: "surrounding whitespace trimmed from captures",
			text: "Bill To:   Acme Corp   \nVendor:   Widgets Inc \t",
			want: Record{Buyer: "Acme Corp", Seller: "Widgets Inc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "From: Widgets Inc\nBill To: Acme Corp\nDate: 5/1/2024\nTotal: $1,234.56"
	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first, second)
}

func TestExtractHostileInput(t *testing.T) {
	// Binary garbage and pathological lines must not panic and must
	// still yield a complete record.
	inputs := []string{
		string([]byte{0x00, 0xff, 0xfe, 0x01, 0x02}),
		strings.Repeat("a", 1<<20),
		"Total: " + strings.Repeat("9,", 10000) + "\n" + strings.Repeat("\n", 500),
		"Bill To",
	}
	for _, in := range inputs {
		require.NotPanics(t, func() { Extract(in) })
	}
}

func TestRecordIsEmpty(t *testing.T) {
	assert.True(t, Record{}.IsEmpty())
	assert.False(t, Record{Amount: "1.00"}.IsEmpty())
	assert.False(t, Record{Seller: "x"}.IsEmpty())
}
