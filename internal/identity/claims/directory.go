package claims

import (
	"bytes"
	"context"
	"log/slog"
	"sort"
	"sync"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"

	"github.com/ethereum/go-ethereum/common"
)

// Directory holds the claims of every identity. Adding a claim for an
// (issuer, topic) pair the identity already holds replaces it.
type Directory struct {
	mu     sync.RWMutex
	claims map[domain.Address]map[common.Hash]Claim
	logger *slog.Logger
}

func NewDirectory(logger *slog.Logger) *Directory {
	return &Directory{
		claims: make(map[domain.Address]map[common.Hash]Claim),
		logger: logger,
	}
}

// AddClaim stores c on identity and returns its id.
func (d *Directory) AddClaim(ctx context.Context, identity domain.Address, c Claim) (common.Hash, error) {
	if err := domain.RequireNonZero(identity, "identity"); err != nil {
		return common.Hash{}, err
	}
	if err := c.Validate(); err != nil {
		return common.Hash{}, err
	}
	c.Signature = append([]byte(nil), c.Signature...)
	c.Data = append([]byte(nil), c.Data...)
	id := c.ID()

	d.mu.Lock()
	held, ok := d.claims[identity]
	if !ok {
		held = make(map[common.Hash]Claim)
		d.claims[identity] = held
	}
	held[id] = c
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.InfoContext(ctx, "claim added",
			"identity", identity.Hex(),
			"issuer", c.Issuer.Hex(),
			"topic", uint64(c.Topic),
		)
	}
	return id, nil
}

// RemoveClaim deletes a claim from identity.
func (d *Directory) RemoveClaim(ctx context.Context, identity domain.Address, id common.Hash) error {
	d.mu.Lock()
	held := d.claims[identity]
	if _, ok := held[id]; !ok {
		d.mu.Unlock()
		return dErrors.New(dErrors.CodeNotFound, "claim not found")
	}
	delete(held, id)
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.InfoContext(ctx, "claim removed", "identity", identity.Hex(), "claim_id", id.Hex())
	}
	return nil
}

// Claim returns a single claim by id.
func (d *Directory) Claim(identity domain.Address, id common.Hash) (Claim, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.claims[identity][id]
	return c, ok
}

// ClaimsByTopic returns identity's claims on topic, ordered by issuer.
func (d *Directory) ClaimsByTopic(identity domain.Address, topic domain.Topic) []Claim {
	d.mu.RLock()
	var out []Claim
	for _, c := range d.claims[identity] {
		if c.Topic == topic {
			out = append(out, c)
		}
	}
	d.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Issuer[:], out[j].Issuer[:]) < 0
	})
	return out
}
