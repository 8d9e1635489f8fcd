package resource

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/findash/internal/domain/model"
	testhelpers "github.com/polkiloo/findash/internal/test"
)

func TestProductCatalogLoadsWithoutFilter(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Seed("products", model.Product{Title: "Plan", Price: model.PriceFromFloat(20), Category: "subscriptions"})
	fb.Seed("products", model.Product{Title: "Router", Price: model.PriceFromFloat(10), Category: "hardware"})
	catalog := NewProductCatalog(newRequesterFor(t, fb))

	require.NoError(t, catalog.Load(context.Background()))

	assert.Len(t, catalog.Items(), 2)
	assert.Empty(t, catalog.LoadError())
	reqs := fb.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/products", reqs[0].Path)
	assert.Empty(t, reqs[0].Query)
}

func TestProductCatalogFailureKeepsSnapshot(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Seed("products", model.Product{Title: "Router", Price: model.PriceFromFloat(10), Category: "hardware"})
	catalog := NewProductCatalog(newRequesterFor(t, fb))
	require.NoError(t, catalog.Load(context.Background()))

	fb.Fail(http.MethodGet, "/products", http.StatusInternalServerError, `{"detail":"catalog down"}`)
	err := catalog.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, "catalog down", catalog.LoadError())
	assert.Len(t, catalog.Items(), 1)
}

func TestProductCatalogItemsAreCopies(t *testing.T) {
	fb := testhelpers.NewFakeBackend(t)
	fb.Seed("products", model.Product{Title: "Router", Price: model.PriceFromFloat(10), Category: "hardware"})
	catalog := NewProductCatalog(newRequesterFor(t, fb))
	require.NoError(t, catalog.Load(context.Background()))

	items := catalog.Items()
	items[0].Title = "changed"

	assert.Equal(t, "Router", catalog.Items()[0].Title)
}
