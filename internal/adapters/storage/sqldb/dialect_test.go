package sqldb

import "testing"

func TestRebind(t *testing.T) {
	cases := []struct {
		name     string
		numbered bool
		in       string
		want     string
	}{
		{"sqlite keeps placeholders", false, "SELECT * FROM pets WHERE id = ? AND status = ?", "SELECT * FROM pets WHERE id = ? AND status = ?"},
		{"postgres numbers placeholders", true, "SELECT * FROM pets WHERE id = ? AND status = ?", "SELECT * FROM pets WHERE id = $1 AND status = $2"},
		{"no placeholders", true, "SELECT COUNT(*) FROM pets", "SELECT COUNT(*) FROM pets"},
	}

	for _, tc := range cases {
		d := Dialect{Numbered: tc.numbered}
		if got := d.Rebind(tc.in); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestWhere(t *testing.T) {
	var w where
	if w.String() != "" {
		t.Fatalf("expected empty where, got %q", w.String())
	}

	w.add("species = ?", "Dog")
	w.add("age BETWEEN ? AND ?", 1, 5)

	if got, want := w.String(), " WHERE species = ? AND age BETWEEN ? AND ?"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if len(w.args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(w.args))
	}
}
