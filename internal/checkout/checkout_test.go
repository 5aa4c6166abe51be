package checkout

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anwarshop/storefront/internal/cart"
	"github.com/anwarshop/storefront/internal/catalog"
	"github.com/anwarshop/storefront/internal/config"
	"github.com/anwarshop/storefront/internal/coupon"
	"github.com/anwarshop/storefront/internal/docstore"
	"github.com/anwarshop/storefront/internal/domain"
	"github.com/anwarshop/storefront/internal/localstore"
	"github.com/anwarshop/storefront/pkg/errors"
)

// fakeStore is a minimal remote document store: catalog collections plus
// an order sink that can be switched into failure mode.
type fakeStore struct {
	mu        sync.Mutex
	orders    map[string]domain.Order
	failPuts  bool
	putCount  int
	lastOrder domain.Order
}

func (f *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/orders/") {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.putCount++
			body, _ := io.ReadAll(r.Body)
			var order domain.Order
			json.Unmarshal(body, &order)
			f.lastOrder = order
			if f.failPuts {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/orders/"), ".json")
			f.orders[id] = order
			w.Write([]byte(`{}`))
			return
		}

		switch r.URL.Path {
		case "/settings.json":
			w.Write([]byte(`{"shippingRates":{"Cairo":50,"Other":65}}`))
		case "/coupons.json":
			w.Write([]byte(`[{"id":"c1","code":"SAVE10","type":"percentage","discount":10}]`))
		default:
			w.Write([]byte(`[]`))
		}
	})
}

type fixture struct {
	svc     *Service
	carts   *cart.Manager
	coupons *coupon.Resolver
	store   *fakeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fake := &fakeStore{orders: map[string]domain.Order{}}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	client := docstore.NewClient(config.StoreConfig{BaseURL: srv.URL}, logger)

	catalogStore := catalog.NewStore(client, logger)
	catalogStore.Load(context.Background())

	local, err := localstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	carts := cart.NewManager(local, logger)
	coupons := coupon.NewResolver(catalogStore.Coupons(), logger)

	return &fixture{
		svc:     NewService(client, carts, coupons, catalogStore, logger),
		carts:   carts,
		coupons: coupons,
		store:   fake,
	}
}

func testInfo() domain.CustomerInfo {
	return domain.CustomerInfo{
		FirstName:   "Nour",
		LastName:    "Hassan",
		Phone:       "0100000000",
		Address:     "1 Tahrir Sq",
		Governorate: "Cairo",
	}
}

func TestSubmitEmptyCartBlocked(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), "u1", testInfo())

	require.Error(t, err)
	assert.IsType(t, &errors.ErrEmptyCart{}, err)
	assert.Equal(t, 0, f.store.putCount, "no write may be attempted for an empty cart")
	assert.Equal(t, StateIdle, f.svc.State())
}

func TestSubmitSuccess(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100, Image: "lamp.jpg"})
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})
	f.svc.SetNote("leave at door")

	order, err := f.svc.Submit(context.Background(), "u1", testInfo())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Len(t, order.ID, 10)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 50.0, order.Shipping)
	assert.Equal(t, 250.0, order.Total)
	assert.Equal(t, "leave at door", order.Note)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "lamp.jpg", order.Items[0].Image)

	// Success clears cart, discount, and note
	assert.Empty(t, f.carts.Cart())
	assert.Nil(t, f.coupons.Active())
	assert.Empty(t, f.svc.Note())
	assert.Equal(t, StateSuccess, f.svc.State())

	// The order landed under its own id
	stored, ok := f.store.orders[order.ID]
	require.True(t, ok)
	assert.Equal(t, order.Total, stored.Total)
}

func TestSubmitWithCoupon(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})

	_, err := f.coupons.Apply("save10", 200)
	require.NoError(t, err)

	order, err := f.svc.Submit(context.Background(), "u1", testInfo())
	require.NoError(t, err)

	require.NotNil(t, order.Discount)
	assert.Equal(t, 20.0, order.Discount.Amount)
	assert.Equal(t, 230.0, order.Total)
}

func TestSubmitGuestSentinel(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})

	order, err := f.svc.Submit(context.Background(), "", testInfo())
	require.NoError(t, err)
	assert.Equal(t, domain.GuestUserID, order.UserID)
}

func TestSubmitFallbackShipping(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})

	info := testInfo()
	info.Governorate = "Aswan"
	order, err := f.svc.Submit(context.Background(), "u1", info)
	require.NoError(t, err)
	assert.Equal(t, 65.0, order.Shipping, "unknown governorate uses the Other rate")
}

func TestSubmitFailurePreservesState(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})
	_, err := f.coupons.Apply("SAVE10", 100)
	require.NoError(t, err)
	f.svc.SetNote("fragile")
	f.store.failPuts = true

	_, err = f.svc.Submit(context.Background(), "u1", testInfo())

	require.Error(t, err)
	assert.Equal(t, StateFailed, f.svc.State())
	assert.Len(t, f.carts.Cart(), 1, "the cart is preserved so the user can retry")
	assert.NotNil(t, f.coupons.Active())
	assert.Equal(t, "fragile", f.svc.Note())
}

func TestRetryIsDistinctAttemptWithSameToken(t *testing.T) {
	f := newFixture(t)
	f.carts.AddToCart(domain.Product{ID: "p1", Name: "Lamp", Price: 100})
	f.store.failPuts = true

	_, err := f.svc.Submit(context.Background(), "u1", testInfo())
	require.Error(t, err)
	failed := f.store.lastOrder

	f.store.failPuts = false
	order, err := f.svc.Submit(context.Background(), "u1", testInfo())
	require.NoError(t, err)

	assert.Equal(t, 2, f.store.putCount)
	assert.NotEqual(t, failed.ID, order.ID, "a retry is a distinct attempt with a fresh order id")
	require.NotEmpty(t, order.AttemptToken)
	assert.Equal(t, failed.AttemptToken, order.AttemptToken,
		"the attempt token survives retries so duplicate orders can be reconciled")
}

func TestOrderIDsAreFresh(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newOrderID()
		assert.True(t, strings.HasPrefix(id, "ORD-"))
		assert.Len(t, id, 10)
		assert.False(t, seen[id], "order ids must not repeat across attempts")
		seen[id] = true
	}
}
