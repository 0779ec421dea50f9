package textutil

import "testing"

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"/media/movie.mkv", 40, "/media/movie.mkv"},
		{"/media/library/movie.mkv", 12, "...movie.mkv"},
		{"abcdef", 3, "def"},
		{"abcdef", 0, ""},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := TruncateLeft(tt.value, tt.width); got != tt.want {
			t.Errorf("TruncateLeft(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestTruncateRight(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{"Stream mapping:", 40, "Stream mapping:"},
		{"frame=  234 fps= 34", 10, "frame= ..."},
		{"abcdef", 2, "ab"},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := TruncateRight(tt.value, tt.width); got != tt.want {
			t.Errorf("TruncateRight(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
		}
	}
}

func TestSingleLine(t *testing.T) {
	if got := SingleLine("a\tb\r\nc\x1b[0m"); got != "a bc[0m" {
		t.Fatalf("SingleLine = %q", got)
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "yes", "no") != "yes" || Ternary(false, 1, 2) != 2 {
		t.Fatal("unexpected ternary result")
	}
}
