package eventbus

import "testing"

func TestFoldNameASCIIOnly(t *testing.T) {
	cases := map[string]string{
		"Connect":     "connect",
		"CONNECT":     "connect",
		"connect":     "connect",
		"Peer-Found":  "peer-found",
		"caf\xc3\xa9": "caf\xc3\xa9", // non-ASCII bytes pass through untouched
	}
	for in, want := range cases {
		if got := foldName(in); got != want {
			t.Errorf("foldName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameIndexGetMiss(t *testing.T) {
	idx := newNameIndex()
	if _, ok := idx.get("connect"); ok {
		t.Fatal("get on empty index returned ok=true")
	}
}

func TestNameIndexPutIfAbsent(t *testing.T) {
	idx := newNameIndex()
	e := &event{name: "Connect"}

	if !idx.putIfAbsent("Connect", e) {
		t.Fatal("first insert should report inserted")
	}
	if idx.putIfAbsent("CONNECT", &event{name: "CONNECT"}) {
		t.Fatal("second insert under a case-folded collision should report already-present")
	}

	got, ok := idx.get("connect")
	if !ok || got != e {
		t.Fatalf("get(\"connect\") = %v, %v; want original event, true", got, ok)
	}
}
