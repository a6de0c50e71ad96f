package notebook

import "testing"

func TestRegistry_AddGetRemove(t *testing.T) {
	r := NewRegistry()

	st := &State{FacadePath: "/tmp/nb/analysis.ipynb"}
	r.Add(st)

	got, ok := r.Get("/tmp/nb/analysis.ipynb")
	if !ok || got != st {
		t.Fatal("Get did not return the added state")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Remove("/tmp/nb/analysis.ipynb")
	if _, ok := r.Get("/tmp/nb/analysis.ipynb"); ok {
		t.Error("state still present after Remove")
	}
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestRegistry_AddReplaces(t *testing.T) {
	r := NewRegistry()

	r.Add(&State{FacadePath: "/tmp/a.ipynb", ShadowLanguage: "python"})
	r.Add(&State{FacadePath: "/tmp/a.ipynb", ShadowLanguage: "julia"})

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	st, _ := r.Get("/tmp/a.ipynb")
	if st.ShadowLanguage != "julia" {
		t.Errorf("ShadowLanguage = %q, want the replacement record", st.ShadowLanguage)
	}
}

func TestRegistry_Each_Order(t *testing.T) {
	r := NewRegistry()
	r.Add(&State{FacadePath: "/tmp/a.ipynb"})
	r.Add(&State{FacadePath: "/tmp/b.ipynb"})
	r.Add(&State{FacadePath: "/tmp/c.ipynb"})
	r.Remove("/tmp/b.ipynb")

	var seen []string
	r.Each(func(st *State) bool {
		seen = append(seen, st.FacadePath)
		return true
	})

	want := []string{"/tmp/a.ipynb", "/tmp/c.ipynb"}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("visit order %v, want %v", seen, want)
			break
		}
	}
}

func TestRegistry_Each_Stops(t *testing.T) {
	r := NewRegistry()
	r.Add(&State{FacadePath: "/tmp/a.ipynb"})
	r.Add(&State{FacadePath: "/tmp/b.ipynb"})

	count := 0
	r.Each(func(*State) bool {
		count++
		return false
	})

	if count != 1 {
		t.Errorf("Each visited %d states after stop, want 1", count)
	}
}

func TestRegistry_ResolveDisplayName(t *testing.T) {
	r := NewRegistry()
	r.Add(&State{FacadePath: "/tmp/one/analysis.ipynb"})
	r.Add(&State{FacadePath: "/tmp/two/report.ipynb"})

	loc, ok := r.ResolveDisplayName("report.ipynb")
	if !ok || loc != "/tmp/two/report.ipynb" {
		t.Errorf("ResolveDisplayName = %q, %v", loc, ok)
	}

	if _, ok := r.ResolveDisplayName("absent.ipynb"); ok {
		t.Error("unexpected resolution for unknown name")
	}
	if _, ok := r.ResolveDisplayName(""); ok {
		t.Error("empty name must not resolve")
	}
	if _, ok := r.ResolveDisplayName("tmp/analysis.ipynb"); ok {
		t.Error("names containing separators must not resolve")
	}
}
