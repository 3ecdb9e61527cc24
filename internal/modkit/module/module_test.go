package module

import (
	"testing"

	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/testkit"
)

type lookuper interface{ Lookup(string) string }

type fixedLookup struct{}

func (fixedLookup) Lookup(k string) string { return "note:" + k }

type stub struct {
	name  string
	ports any
}

func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }
func (s stub) Name() string             { return s.name }

func TestPortsOf(t *testing.T) {
	type bundle struct {
		Lookup lookuper
		hidden lookuper
	}
	cases := []struct {
		name  string
		ports any
		ok    bool
	}{
		{"nil", nil, false},
		{"direct", fixedLookup{}, true},
		{"struct field", bundle{Lookup: fixedLookup{}}, true},
		{"unexported field only", bundle{hidden: fixedLookup{}}, false},
		{"nil field", bundle{}, false},
		{"pointer bundle", &bundle{Lookup: fixedLookup{}}, true},
		{"nil pointer bundle", (*bundle)(nil), false},
		{"unrelated", 42, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[lookuper](stub{name: "annotations", ports: c.ports})
			if ok != c.ok {
				t.Fatalf("ok = %v want %v", ok, c.ok)
			}
			if ok && got.Lookup("mars") != "note:mars" {
				t.Fatalf("wrong port")
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustPortsOf[lookuper](stub{ports: fixedLookup{}}) })
	testkit.MustPanic(t, func() { MustPortsOf[lookuper](stub{name: "catalog"}) })
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if err := r.Add(stub{name: "annotations", ports: fixedLookup{}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(stub{name: "meta"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Add(stub{name: "annotations"}); err == nil {
		t.Fatal("duplicate name should fail")
	}

	if l, ok := PortsAs[lookuper](r, "annotations"); !ok || l.Lookup("x") != "note:x" {
		t.Fatalf("registered port not found")
	}
	if _, ok := PortsAs[lookuper](r, "missing"); ok {
		t.Fatal("missing name should not resolve")
	}
	if _, ok := PortsAs[string](r, "annotations"); ok {
		t.Fatal("wrong type should not resolve")
	}
	if !r.Has("meta") || r.Has("catalog") {
		t.Fatal("Has disagrees with Add")
	}
	if got := r.Names(); len(got) != 2 || got[0] != "annotations" || got[1] != "meta" {
		t.Fatalf("names = %v", got)
	}
}
