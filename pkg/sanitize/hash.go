package sanitize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/nekrut/error-reports/pkg/cache"
)

// HashID replaces an identifier with a deterministic, irreversible integer:
// the first 8 hex digits of the SHA-256 digest of the canonical string form,
// reinterpreted base-16. A nil identifier stays nil. Equal inputs always map
// to equal outputs, across runs, with no mapping table retained.
func HashID(value any) any {
	if value == nil {
		return nil
	}
	sum := sha256.Sum256([]byte(canonicalString(value)))
	prefix := hex.EncodeToString(sum[:4])
	n, err := strconv.ParseInt(prefix, 16, 64)
	if err != nil {
		// Unreachable: an 8-digit hex string always fits in int64.
		return nil
	}
	return n
}

// canonicalString converts an identifier to the textual form fed into the
// digest. JSON numbers arrive as float64; integral values must render
// without a fractional part so the same identifier hashes identically no
// matter how it was encoded.
func canonicalString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Pseudonymizer memoizes HashID per distinct raw identifier, so large
// collections with few distinct users hash each identifier once.
type Pseudonymizer struct {
	cache *cache.Handler
}

func NewPseudonymizer() *Pseudonymizer {
	// The cache constructor cannot fail for an in-memory store
	c, _ := cache.New()
	return &Pseudonymizer{
		cache: c,
	}
}

// HashID returns the pseudonym for the identifier, computing and caching it
// on first sight.
func (p *Pseudonymizer) HashID(value any) any {
	if value == nil {
		return nil
	}
	key := canonicalString(value)
	if cached, ok := p.cache.Get(key); ok {
		return cached
	}
	hashed := HashID(value)
	p.cache.Set(key, hashed)
	return hashed
}
