package ticket

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Required CSV columns, matched case-insensitively against the header row.
const (
	colID          = "ticket_id"
	colCustomer    = "customer"
	colDescription = "issue_description"
)

// ValidationError reports a malformed batch. The whole batch is
// rejected before classification begins; there is no per-row salvage.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ParseCSV reads a ticket batch from CSV. The header row must contain
// ticket_id, customer, and issue_description columns; extra columns are
// ignored. A row with an empty issue_description fails the batch.
func ParseCSV(r io.Reader) ([]Ticket, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, validationErrorf("empty file")
	}
	if err != nil {
		return nil, validationErrorf("read header: %v", err)
	}

	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colID, colCustomer, colDescription} {
		if _, ok := idx[required]; !ok {
			return nil, validationErrorf("missing required column %q", required)
		}
	}

	var tickets []Ticket
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, validationErrorf("row %d: %v", row, err)
		}

		t := Ticket{
			ID:          strings.TrimSpace(rec[idx[colID]]),
			Customer:    strings.TrimSpace(rec[idx[colCustomer]]),
			Description: strings.TrimSpace(rec[idx[colDescription]]),
		}
		if t.Description == "" {
			return nil, validationErrorf("row %d: issue_description is empty", row)
		}
		tickets = append(tickets, t)
	}

	if len(tickets) == 0 {
		return nil, validationErrorf("no ticket rows")
	}
	return tickets, nil
}
