package pkg

import (
	"os"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "cfglang" {
		t.Errorf("Name = %q, want %q", Name, "cfglang")
	}
}

func TestVersion(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}
}

func TestAuthor(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("Author is empty")
	}

	for i, a := range Author {
		if a.Name == "" && a.Email == "" {
			t.Errorf("Author[%d] defines neither Name nor Email", i)
		}
	}
}
