package ark

import "testing"

func TestValidateSize(t *testing.T) {
	tests := []struct {
		size string
		want bool
	}{
		{"1024x1024", true},
		{"100x100", true},
		{"10000x10000", true},
		{"1024x1536", true},
		{"99x100", false},
		{"100x99", false},
		{"50x50", false},
		{"10001x1024", false},
		{"1024x10001", false},
		{"abcxdef", false},
		{"1024*1024", false},
		{"1024", false},
		{"x1024", false},
		{"1024x", false},
		{"1024x1024x5", false},
		{"+100x100", false},
		{" 100x100", false},
		{"100x100 ", false},
		{"1024X1024", false},
		{"", false},
		{"000100x100", true},
	}
	for _, tt := range tests {
		if got := ValidateSize(tt.size); got != tt.want {
			t.Errorf("ValidateSize(%q) = %v, want %v", tt.size, got, tt.want)
		}
	}
}
