package statement

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StatusCounts tracks how many invoices carry each status label. Labels are
// kept in first-seen order so the rendered breakdown and the JSON summary
// list statuses in the order they appeared in the input.
type StatusCounts struct {
	counts map[string]int
	labels []string
}

// NewStatusCounts returns an empty status tally.
func NewStatusCounts() *StatusCounts {
	return &StatusCounts{counts: make(map[string]int)}
}

// Add increments the count for label, registering it on first sight.
func (s *StatusCounts) Add(label string) {
	if _, seen := s.counts[label]; !seen {
		s.labels = append(s.labels, label)
	}
	s.counts[label]++
}

// Get returns the count for label, zero if never seen.
func (s *StatusCounts) Get(label string) int {
	return s.counts[label]
}

// Labels returns the distinct labels in first-seen order.
func (s *StatusCounts) Labels() []string {
	out := make([]string, len(s.labels))
	copy(out, s.labels)
	return out
}

// Len returns the number of distinct labels.
func (s *StatusCounts) Len() int {
	return len(s.labels)
}

// Total returns the sum of all counts.
func (s *StatusCounts) Total() int {
	total := 0
	for _, c := range s.counts {
		total += c
	}
	return total
}

// MarshalJSON emits a JSON object with keys in first-seen order. A plain
// map would lose the ordering contract.
func (s *StatusCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range s.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", s.counts[label])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the tally preserving the key order of the JSON
// object.
func (s *StatusCounts) UnmarshalJSON(data []byte) error {
	s.counts = make(map[string]int)
	s.labels = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("status counts: expected JSON object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("status counts: non-string key %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		if _, seen := s.counts[label]; !seen {
			s.labels = append(s.labels, label)
		}
		s.counts[label] = count
	}
	_, err = dec.Token() // closing brace
	return err
}

// Summary is the aggregate view of one statement computation.
type Summary struct {
	StatusCounts             *StatusCounts `json:"status_counts"`
	Error                    string        `json:"error,omitempty"`
	TotalBalanceDue          float64       `json:"total_balance_due"`
	TotalInterest            float64       `json:"total_interest"`
	TotalBalancePlusInterest float64       `json:"total_balance_plus_interest"`
	TotalPaidAmount          float64       `json:"total_paid_amount"`
	TotalUnusedAmount        float64       `json:"total_unused_amount"`
	NetOutstanding           float64       `json:"net_outstanding"`
	InvoicesCount            int           `json:"invoices_count"`
	PaymentsCount            int           `json:"payments_count"`
	RowsWritten              int           `json:"rows_written"`
}
