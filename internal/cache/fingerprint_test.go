package cache

import "testing"

func TestBuildDeckCacheKeyDeterministic(t *testing.T) {
	a := BuildDeckCacheKey("Too much plastic waste", "Biodegradable packaging", "gpt-4", "v1")
	b := BuildDeckCacheKey("Too much plastic waste", "Biodegradable packaging", "gpt-4", "v1")

	if a != b {
		t.Fatalf("identical requests must produce identical keys: %v vs %v", a, b)
	}
	if a.String() != b.String() {
		t.Fatalf("identical keys must render identically")
	}
}

func TestBuildDeckCacheKeyDistinguishesFields(t *testing.T) {
	base := BuildDeckCacheKey("problem", "solution", "gpt-4", "v1")

	if k := BuildDeckCacheKey("problem!", "solution", "gpt-4", "v1"); k.Hash == base.Hash {
		t.Fatalf("changing the problem must change the fingerprint")
	}
	if k := BuildDeckCacheKey("problem", "solution!", "gpt-4", "v1"); k.Hash == base.Hash {
		t.Fatalf("changing the solution must change the fingerprint")
	}
}

// Whitespace and casing are significant: the fingerprint is an exact match
// on the request bytes, not a normalized form.
func TestBuildDeckCacheKeyExactMatch(t *testing.T) {
	base := BuildDeckCacheKey("problem", "solution", "gpt-4", "v1")

	if k := BuildDeckCacheKey(" problem", "solution", "gpt-4", "v1"); k.Hash == base.Hash {
		t.Fatalf("leading whitespace must produce a distinct fingerprint")
	}
	if k := BuildDeckCacheKey("Problem", "solution", "gpt-4", "v1"); k.Hash == base.Hash {
		t.Fatalf("casing must produce a distinct fingerprint")
	}
}

// The field separator must not allow two different (problem, solution)
// pairs to collide by shifting bytes across the boundary.
func TestBuildDeckCacheKeyBoundary(t *testing.T) {
	a := BuildDeckCacheKey("ab", "c", "gpt-4", "v1")
	b := BuildDeckCacheKey("a", "bc", "gpt-4", "v1")

	if a.Hash == b.Hash {
		t.Fatalf("field boundary must be part of the fingerprint")
	}
}

func TestDeckCacheKeyString(t *testing.T) {
	k := DeckCacheKey{ModelID: "gpt-4", VersionID: "v2", Hash: "deadbeef"}
	if got, want := k.String(), "deck:gpt-4:v2:deadbeef"; got != want {
		t.Fatalf("key string: got %q want %q", got, want)
	}

	parts, ok := parseDeckKey(k.String())
	if !ok {
		t.Fatalf("round-trip parse failed for %q", k.String())
	}
	if parts.modelID != "gpt-4" || parts.versionID != "v2" || parts.hash != "deadbeef" {
		t.Fatalf("unexpected parts: %#v", parts)
	}
}
