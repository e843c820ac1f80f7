package textnorm

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Phở bò", "pho bo"},
		{"Bún chả", "bun cha"},
		{"Cơm tấm", "com tam"},
		{"PHO BO", "pho bo"},
		{"plain ascii", "plain ascii"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"empty term matches", "Phở bò", "", true},
		{"diacritic-insensitive hit", "Phở bò", "pho", true},
		{"reverse direction", "Pho bo", "phở", true},
		{"any keyword suffices", "Com tam", "pho tam", true},
		{"no keyword hits", "Com tam", "pho bun", false},
		{"substring match", "Bún chả Hà Nội", "noi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsAny(tt.text, tt.term); got != tt.want {
				t.Errorf("ContainsAny(%q, %q) = %v, want %v", tt.text, tt.term, got, tt.want)
			}
		})
	}
}
