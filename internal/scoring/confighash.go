package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Version tags the scoring configuration generation. It changes whenever
// the formulas or their coefficients change.
const Version = "sbv_v2_likely_lovely"

// RunConfig captures every parameter that influences a scoring run.
type RunConfig struct {
	Version string
	Date    string
	Alpha   float64
}

// Params renders the configuration as the canonical key/value set fed to
// the hash.
func (c RunConfig) Params() map[string]any {
	return map[string]any{
		"version": c.Version,
		"date":    c.Date,
		"alpha":   c.Alpha,
	}
}

// ConfigHash produces the reproducible audit key for a run's scoring
// parameters: keys are serialized in sorted order so identical inputs
// always hash identically, regardless of insertion order.
func ConfigHash(params map[string]any) (string, error) {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kj, err := json.Marshal(k)
		if err != nil {
			return "", fmt.Errorf("marshal key %s: %w", k, err)
		}
		vj, err := json.Marshal(params[k])
		if err != nil {
			return "", fmt.Errorf("marshal value for %s: %w", k, err)
		}
		b.Write(kj)
		b.WriteByte(':')
		b.Write(vj)
	}
	b.WriteByte('}')

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:]), nil
}
