package board

import (
	"errors"
	"fmt"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "stripsDiacritics", in: "Ñandú", want: "nandu"},
		{name: "lowercases", in: "ACME", want: "acme"},
		{name: "trims", in: "  café  ", want: "cafe"},
		{name: "plainPassthrough", in: "lopez", want: "lopez"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("  Panadería El Trigal ", " TRI-01 ", " Av. San Martín 1420 ")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if c.Name != "Panadería El Trigal" || c.Code != "TRI-01" {
		t.Errorf("NewClient() trimmed = %q/%q", c.Name, c.Code)
	}
	if c.ID.String() == "" || c.CreatedAt.IsZero() {
		t.Error("NewClient() should assign ID and timestamps")
	}

	if _, err := NewClient("  ", "", ""); !errors.Is(err, ErrMissingClient) {
		t.Errorf("NewClient() blank name error = %v, want ErrMissingClient", err)
	}
}

func testDirectory(t *testing.T, names ...string) []*Client {
	t.Helper()
	clients := make([]*Client, 0, len(names))
	for _, name := range names {
		c, err := NewClient(name, "", "")
		if err != nil {
			t.Fatalf("NewClient(%q) error = %v", name, err)
		}
		clients = append(clients, c)
	}
	return clients
}

func TestSearchQuick(t *testing.T) {
	clients := testDirectory(t, "Kiosco El Ñandú", "Almacén Doña Rosa", "Verdulería López")

	matches := Search(clients, "nandu", ScopeQuick)
	if len(matches) != 1 || matches[0].Name != "Kiosco El Ñandú" {
		t.Errorf("Search(nandu) = %v, want the diacritic match", matches)
	}

	if got := Search(clients, "", ScopeQuick); got != nil {
		t.Errorf("quick search with empty query = %v, want nil", got)
	}

	if got := Search(clients, "zzz", ScopeQuick); len(got) != 0 {
		t.Errorf("Search(zzz) = %v, want no matches", got)
	}
}

func TestSearchQuickCap(t *testing.T) {
	var clients []*Client
	for i := 0; i < 20; i++ {
		c, _ := NewClient(fmt.Sprintf("Cliente %02d", i), "", "")
		clients = append(clients, c)
	}

	matches := Search(clients, "cliente", ScopeQuick)
	if len(matches) != 8 {
		t.Errorf("quick matches = %d, want capped at 8", len(matches))
	}
}

func TestSearchRouteScopeMatchesCodeAndAddress(t *testing.T) {
	c, _ := NewClient("Bar El Farol", "FAR-08", "Alsina 1204")
	clients := []*Client{c}

	if got := Search(clients, "far-08", ScopeRoute); len(got) != 1 {
		t.Errorf("route search by code = %v, want 1 match", got)
	}
	if got := Search(clients, "alsina", ScopeRoute); len(got) != 1 {
		t.Errorf("route search by address = %v, want 1 match", got)
	}
	// Quick scope matches the name only.
	if got := Search(clients, "alsina", ScopeQuick); len(got) != 0 {
		t.Errorf("quick search by address = %v, want no match", got)
	}
}

func TestSearchRouteEmptyQueryShowsSample(t *testing.T) {
	var clients []*Client
	for i := 0; i < 90; i++ {
		c, _ := NewClient(fmt.Sprintf("Cliente %02d", i), "", "")
		clients = append(clients, c)
	}

	got := Search(clients, "", ScopeRoute)
	if len(got) != 60 {
		t.Errorf("route browse sample = %d, want first 60", len(got))
	}
	if got[0] != clients[0] {
		t.Error("browse sample should preserve directory order")
	}
}
