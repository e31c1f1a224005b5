package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"081234567890", "6281234567890", false},
		{"81234567890", "6281234567890", false},
		{"6281234567890", "6281234567890", false},
		{"+6281234567890", "6281234567890", false},
		{"0812-3456-7890", "6281234567890", false},
		{"0812 3456 7890", "6281234567890", false},
		{"", "", true},
		{"abc", "", true},
		{"0812abc34", "", true},
		{"0812345", "", true},
		{"0812345678901234567", "", true},
	}

	for _, tt := range cases {
		got, err := NormalizePhone(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("NormalizePhone(%q): expected error, got %q", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizePhone(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizePhone(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}
