package validate

import (
	"testing"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid value", "Starry Night", false},
		{"valid with spaces", "  Water Lilies ", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Required(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"plain year", "1889", 1889, false},
		{"padded", " 1503 ", 1503, false},
		{"negative", "-500", -500, false},
		{"empty", "", 0, true},
		{"zero", "0", 0, true},
		{"not a number", "c. 1500", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Year(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Year(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Year(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
