package scoring

import "testing"

func TestConfigHashDeterministic(t *testing.T) {
	t.Parallel()

	first := map[string]any{
		"version": Version,
		"date":    "2026-09-01",
		"alpha":   0.25,
	}
	// Same entries, different insertion order.
	second := map[string]any{}
	second["alpha"] = 0.25
	second["date"] = "2026-09-01"
	second["version"] = Version

	h1, err := ConfigHash(first)
	if err != nil {
		t.Fatalf("hash first: %v", err)
	}
	h2, err := ConfigHash(second)
	if err != nil {
		t.Fatalf("hash second: %v", err)
	}

	if h1 != h2 {
		t.Fatalf("hash must be insertion-order independent: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected hex sha256, got %q", h1)
	}
}

func TestConfigHashChangesWithParameters(t *testing.T) {
	t.Parallel()

	base := RunConfig{Version: Version, Date: "2026-09-01", Alpha: 0.25}
	changed := RunConfig{Version: Version, Date: "2026-09-02", Alpha: 0.25}

	h1, err := ConfigHash(base.Params())
	if err != nil {
		t.Fatalf("hash base: %v", err)
	}
	h2, err := ConfigHash(changed.Params())
	if err != nil {
		t.Fatalf("hash changed: %v", err)
	}

	if h1 == h2 {
		t.Fatalf("different run dates must hash differently")
	}
}
