// Package fields locates labeled values inside free-form invoice text and
// normalizes them into a fixed record shape. Matching is heuristic and
// best-effort: a field that cannot be found is an empty string, never an
// error.
package fields

// Record is the result of one extraction call. It always carries exactly
// these four fields; an unmatched field is the empty string.
type Record struct {
	Amount string `json:"amount"`
	Buyer  string `json:"buyer"`
	Seller string `json:"seller"`
	Date   string `json:"date"`
}

// IsEmpty reports whether no field matched at all. Callers use this to
// decide how to report "no data extracted".
func (r Record) IsEmpty() bool {
	return r.Amount == "" && r.Buyer == "" && r.Seller == "" && r.Date == ""
}
