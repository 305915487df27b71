package constants

import "testing"

func TestNormalizeExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{".PDF", "pdf"},
		{".csv", "csv"},
		{"CSV", "csv"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeExt(tt.in); got != tt.want {
			t.Errorf("NormalizeExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapExtToFormat(t *testing.T) {
	tests := []struct{ in, want string }{
		{".pdf", PDF},
		{".PDF", PDF},
		{".csv", CSV},
		{".txt", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MapExtToFormat(tt.in); got != tt.want {
			t.Errorf("MapExtToFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
