package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
)

// ProductCatalog is the unfiltered product list the order editor picks
// from. It is independent of the products view and its category filter.
type ProductCatalog struct {
	client Requester

	mu      sync.Mutex
	seq     uint64
	items   []model.Product
	loadErr string
}

func NewProductCatalog(client Requester) *ProductCatalog {
	return &ProductCatalog{client: client}
}

// Load fetches every product. A failed load keeps the previous snapshot;
// only the newest response is applied.
func (p *ProductCatalog) Load(ctx context.Context) error {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	raw, err := p.client.Request(ctx, http.MethodGet, ProductSchema().Path, nil)
	items := []model.Product{}
	if err == nil && raw != nil {
		if decodeErr := json.Unmarshal(raw, &items); decodeErr != nil {
			err = &domainErrors.RequestError{Message: domainErrors.GenericRequestMessage, Err: decodeErr}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.seq {
		return domainErrors.ErrSuperseded
	}
	if err != nil {
		p.loadErr = requestMessage(err)
		return err
	}
	if items == nil {
		items = []model.Product{}
	}
	p.items = items
	p.loadErr = ""
	return nil
}

// Items returns a copy of the last loaded products.
func (p *ProductCatalog) Items() []model.Product {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Product, len(p.items))
	copy(out, p.items)
	return out
}

// LoadError is the message of the last failed load, empty after a success.
func (p *ProductCatalog) LoadError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}
