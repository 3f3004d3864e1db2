package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	// Prefix identifies ids issued by this system.
	Prefix = "PS"

	suffixBytes = 3 // 2^24 values per day
	dateLayout  = "20060102"

	// maxRemembered bounds the per-day set of issued suffixes.
	maxRemembered = 1 << 18
)

// Generator issues customer-facing tracking ids of the form PS-YYYYMMDD-XXXXXX.
// Suffixes issued by one Generator on the same UTC day never repeat (up to maxRemembered).
type Generator struct {
	now     func() time.Time
	entropy io.Reader

	mu     sync.Mutex
	day    string
	issued map[string]struct{}
}

// NewGenerator returns a Generator backed by the wall clock and crypto/rand.
func NewGenerator() *Generator {
	return &Generator{
		now:     time.Now,
		entropy: rand.Reader,
	}
}

// NewGeneratorWith returns a Generator with an injected clock and entropy source.
func NewGeneratorWith(now func() time.Time, entropy io.Reader) *Generator {
	g := NewGenerator()
	if now != nil {
		g.now = now
	}
	if entropy != nil {
		g.entropy = entropy
	}
	return g
}

// Generate returns a new tracking id. The date segment is the current UTC date.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := g.now().UTC().Format(dateLayout)
	if day != g.day || len(g.issued) >= maxRemembered {
		g.day = day
		g.issued = make(map[string]struct{})
	}

	for {
		suffix := g.suffix()
		if _, dup := g.issued[suffix]; dup {
			continue
		}
		g.issued[suffix] = struct{}{}
		return Prefix + "-" + day + "-" + suffix
	}
}

func (g *Generator) suffix() string {
	var buf [suffixBytes]byte
	if _, err := io.ReadFull(g.entropy, buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic("tracking: read entropy: " + err.Error())
	}
	return strings.ToUpper(hex.EncodeToString(buf[:]))
}
