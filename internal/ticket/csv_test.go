package ticket

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV_Valid(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"ticket_id,customer,issue_description",
		"EPM-001,Global Finance Corp,The sync failed this morning",
		`EPM-002,Strategy Partners,"Formula shows #REF errors, 450 entries"`,
	}, "\n")

	tickets, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("len = %d, want 2", len(tickets))
	}
	if tickets[0].ID != "EPM-001" {
		t.Errorf("ID = %q, want EPM-001", tickets[0].ID)
	}
	if tickets[1].Customer != "Strategy Partners" {
		t.Errorf("Customer = %q, want Strategy Partners", tickets[1].Customer)
	}
	if !strings.Contains(tickets[1].Description, "#REF") {
		t.Errorf("Description = %q, want to contain #REF", tickets[1].Description)
	}
}

func TestParseCSV_HeaderCaseInsensitive(t *testing.T) {
	t.Parallel()

	in := "Ticket_ID,Customer,Issue_Description\nT-1,Acme,login broken\n"
	tickets, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("len = %d, want 1", len(tickets))
	}
}

func TestParseCSV_ExtraColumnsIgnored(t *testing.T) {
	t.Parallel()

	in := "priority,ticket_id,customer,issue_description\nP1,T-1,Acme,api stuck\n"
	tickets, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if tickets[0].Description != "api stuck" {
		t.Errorf("Description = %q, want %q", tickets[0].Description, "api stuck")
	}
}

func TestParseCSV_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"empty file", ""},
		{"missing description column", "ticket_id,customer\nT-1,Acme\n"},
		{"missing customer column", "ticket_id,issue_description\nT-1,broken\n"},
		{"empty description row", "ticket_id,customer,issue_description\nT-1,Acme,\n"},
		{"whitespace-only description", "ticket_id,customer,issue_description\nT-1,Acme,   \n"},
		{"header only", "ticket_id,customer,issue_description\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseCSV(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("error type = %T, want *ValidationError", err)
			}
		})
	}
}

func TestParseCSV_EmptyDescriptionFailsWholeBatch(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"ticket_id,customer,issue_description",
		"T-1,Acme,sync failed",
		"T-2,Beta,",
		"T-3,Gamma,login broken",
	}, "\n")

	tickets, err := ParseCSV(strings.NewReader(in))
	if err == nil {
		t.Fatal("expected error for batch with empty description")
	}
	if tickets != nil {
		t.Errorf("tickets = %v, want nil on batch failure", tickets)
	}
}
