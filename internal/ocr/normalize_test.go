package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
		{
			name: "crlf becomes lf",
			in:   "Bill To: Acme\r\nTotal: 5.00\r",
			want: "Bill To: Acme\nTotal: 5.00",
		},
		{
			name: "tabs and runs of spaces collapse",
			in:   "Total:\t\t$5.00   due",
			want: "Total: $5.00 due",
		},
		{
			name: "blank line runs capped at one",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "ruled lines removed",
			in:   "Invoice\n-----\nTotal: 5.00",
			want: "Invoice\n\nTotal: 5.00",
		},
		{
			name: "letter O between digits becomes zero",
			in:   "Total: $1O0.5O2\nPO Box 12",
			want: "Total: $100.502\nPO Box 12",
		},
		{
			name: "adjacent misread zeros both fixed",
			in:   "Amount: 1OO1",
			want: "Amount: 1001",
		},
		{
			name: "trailing spaces trimmed per line",
			in:   "Bill To: Acme   \nFrom: Widgets  ",
			want: "Bill To: Acme\nFrom: Widgets",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
