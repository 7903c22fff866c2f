package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/tokenkit/registry"
)

var busd = registry.TokenDescriptor{
	Name:    "Binance USD",
	Symbol:  "BUSD",
	Address: common.HexToAddress("0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56"),
}

func TestStatic(t *testing.T) {
	fn := Static(map[string]float64{"BUSD": 1.0, "CAKE": 2.35})

	price, err := fn(context.Background(), 56, busd)
	require.NoError(t, err)
	assert.Equal(t, 1.0, price)

	_, err = fn(context.Background(), 56, registry.TokenDescriptor{Symbol: "UNKNOWN"})
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		assert.Equal(t, "BUSD", r.URL.Query().Get("symbol"))
		assert.Equal(t, "56", r.URL.Query().Get("chain"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		fmt.Fprint(w, `{"price": 0.9998}`)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "test-key")
	price, err := source.Price(context.Background(), 56, busd)
	require.NoError(t, err)
	assert.Equal(t, 0.9998, price)
}

func TestHTTPSourceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such symbol", http.StatusNotFound)
	}))
	defer server.Close()

	source := NewHTTPSource(server.URL, "")
	_, err := source.Price(context.Background(), 56, busd)
	assert.Error(t, err)
}

func TestHTTPSourceUnconfigured(t *testing.T) {
	source := NewHTTPSource("", "")
	_, err := source.Price(context.Background(), 56, busd)
	assert.Error(t, err)
}

func TestHTTPSourceAsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price": 2.35}`)
	}))
	defer server.Close()

	fn := NewHTTPSource(server.URL, "").PriceFn()
	price, err := fn(context.Background(), 56, busd)
	require.NoError(t, err)
	assert.Equal(t, 2.35, price)
}
