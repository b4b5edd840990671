package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSeatID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SeatID
		wantErr bool
	}{
		{
			name:  "should parse single digit seat",
			input: "A7",
			want:  SeatID{Row: "A", Number: 7},
		},
		{
			name:  "should parse double digit seat",
			input: "H12",
			want:  SeatID{Row: "H", Number: 12},
		},
		{
			name:  "should parse rows outside the default layout",
			input: "Z9",
			want:  SeatID{Row: "Z", Number: 9},
		},
		{
			name:    "should fail on lowercase row",
			input:   "a7",
			wantErr: true,
		},
		{
			name:    "should fail on missing number",
			input:   "A",
			wantErr: true,
		},
		{
			name:    "should fail on missing row",
			input:   "12",
			wantErr: true,
		},
		{
			name:    "should fail on seat number zero",
			input:   "A0",
			wantErr: true,
		},
		{
			name:    "should fail on three digit number",
			input:   "A123",
			wantErr: true,
		},
		{
			name:    "should fail on empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "should fail on trailing garbage",
			input:   "A7x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeatID(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeatID(%q) expected error, got %v", tt.input, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseSeatID(%q) unexpected error: %v", tt.input, err)
			}

			if got != tt.want {
				t.Errorf("ParseSeatID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSeatIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []SeatID
		wantErr bool
	}{
		{
			name:  "should parse multiple identifiers",
			input: []string{"A1", "A2", "B5"},
			want: []SeatID{
				{Row: "A", Number: 1},
				{Row: "A", Number: 2},
				{Row: "B", Number: 5},
			},
		},
		{
			name:    "should fail on duplicate identifiers",
			input:   []string{"A1", "A1"},
			wantErr: true,
		},
		{
			name:    "should fail when any identifier is malformed",
			input:   []string{"A1", "bogus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeatIDs(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeatIDs(%v) expected error, got %v", tt.input, got)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseSeatIDs(%v) unexpected error: %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseSeatIDs(%v) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSortSeatIDs(t *testing.T) {
	ids := []SeatID{
		{Row: "B", Number: 5},
		{Row: "A", Number: 10},
		{Row: "A", Number: 2},
	}

	SortSeatIDs(ids)

	want := []SeatID{
		{Row: "A", Number: 2},
		{Row: "A", Number: 10},
		{Row: "B", Number: 5},
	}

	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("SortSeatIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestSeatLayout(t *testing.T) {
	layout := DefaultSeatLayout

	if got := layout.Capacity(); got != 96 {
		t.Errorf("Capacity() = %d, want 96", got)
	}

	if !layout.ContainsRow("A") || !layout.ContainsRow("H") {
		t.Error("expected rows A and H to belong to the default layout")
	}

	if layout.ContainsRow("Z") || layout.ContainsRow("") || layout.ContainsRow("AB") {
		t.Error("unexpected rows reported as part of the default layout")
	}
}
