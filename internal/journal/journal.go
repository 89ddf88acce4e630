// Package journal keeps an in-memory, append-only record of committed session
// operations. Every payload is stored twice: as the JSON it was marshaled to,
// and in its RFC 8785 canonical form (JCS). Entries are chained by a sha256
// digest over the previous digest and the canonical payload, so Verify can
// detect any rewritten entry.
package journal

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"
)

type Kind string

const (
	KindLogin          Kind = "session.login"
	KindLogout         Kind = "session.logout"
	KindExpired        Kind = "session.expired"
	KindTransferPosted Kind = "transfer.posted"
	KindLoanApproved   Kind = "loan.approved"
	KindAccountClosed  Kind = "account.closed"
)

var ErrBrokenChain = errors.New("journal chain broken")

type Entry struct {
	ID        uuid.UUID       `json:"id"`
	Seq       int64           `json:"seq"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	Canonical string          `json:"canonical"`
	PrevHash  string          `json:"prev_hash"`
	Hash      string          `json:"hash"`
	CreatedAt time.Time       `json:"created_at"`
}

type Log struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

func New() *Log {
	return &Log{now: time.Now}
}

// Append records a committed operation.
func (l *Log) Append(_ context.Context, kind Kind, payload any) (Entry, error) {
	if strings.TrimSpace(string(kind)) == "" {
		return Entry{}, fmt.Errorf("Append: empty kind")
	}

	raw, canonical, err := canonicalize(payload)
	if err != nil {
		return Entry{}, fmt.Errorf("Append: %s: %w", kind, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prev := ""
	if n := len(l.entries); n > 0 {
		prev = l.entries[n-1].Hash
	}

	e := Entry{
		ID:        uuid.New(),
		Seq:       int64(len(l.entries) + 1),
		Kind:      kind,
		Payload:   raw,
		Canonical: canonical,
		PrevHash:  prev,
		Hash:      chainHash(prev, kind, canonical),
		CreatedAt: l.now().UTC(),
	}
	l.entries = append(l.entries, e)
	return e, nil
}

// Entries returns a copy of every entry in append order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Verify recomputes the digest chain.
func (l *Log) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return verify(l.entries)
}

func verify(entries []Entry) error {
	prev := ""
	for _, e := range entries {
		if e.PrevHash != prev {
			return fmt.Errorf("Verify: seq %d: prev hash mismatch: %w", e.Seq, ErrBrokenChain)
		}
		canon, err := jcs.Transform(e.Payload)
		if err != nil {
			return fmt.Errorf("Verify: seq %d: %w", e.Seq, err)
		}
		if string(canon) != e.Canonical {
			return fmt.Errorf("Verify: seq %d: payload does not match canonical form: %w", e.Seq, ErrBrokenChain)
		}
		if chainHash(prev, e.Kind, e.Canonical) != e.Hash {
			return fmt.Errorf("Verify: seq %d: hash mismatch: %w", e.Seq, ErrBrokenChain)
		}
		prev = e.Hash
	}
	return nil
}

func canonicalize(v any) (json.RawMessage, string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return nil, "", err
	}
	return json.RawMessage(raw), string(canon), nil
}

func chainHash(prev string, kind Kind, canonical string) string {
	h := sha256.New()
	h.Write([]byte(prev))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}
