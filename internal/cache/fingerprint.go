package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// BuildDeckCacheKey fingerprints a generation request from its semantically
// relevant fields (problem + solution) plus:
//   - modelID (a different model must not share cached output),
//   - versionID (backend version for invalidation).
//
// The problem and solution bytes are hashed exactly as received. Requests
// differing only in whitespace or casing are distinct on purpose; callers
// rely on exact-match semantics.
func BuildDeckCacheKey(problem, solution, modelID, versionID string) DeckCacheKey {
	normalized := "problem:" + problem + "|solution:" + solution

	sum := sha256.Sum256([]byte(normalized))

	return DeckCacheKey{
		ModelID:   strings.TrimSpace(modelID),
		VersionID: strings.TrimSpace(versionID),
		Hash:      hex.EncodeToString(sum[:]),
	}
}
