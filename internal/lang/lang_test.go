package lang

import (
	"testing"
)

func TestForExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext  string
		want string
	}{
		{".rb", "ruby"},
		{".py", ""},
		{".erb", ""},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got := ForExtension(tt.ext)
			if got != tt.want {
				t.Errorf("ForExtension(%q) = %q, want %q", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLanguagesRegistered(t *testing.T) {
	t.Parallel()

	rb, ok := Languages["ruby"]
	if !ok {
		t.Fatal("ruby language not registered")
	}
	if rb.GetLanguage() == nil {
		t.Error("ruby language is nil")
	}
	if rb.Lower == nil {
		t.Error("ruby Lower hook is nil")
	}
}

func TestNewParser(t *testing.T) {
	t.Parallel()

	p := Languages["ruby"].NewParser()
	if p == nil {
		t.Fatal("NewParser returned nil")
	}
}
