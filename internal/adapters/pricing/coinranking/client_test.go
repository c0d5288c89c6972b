package coinranking_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boldtrade/boldtrade_backend/internal/adapters/pricing/coinranking"
	"github.com/boldtrade/boldtrade_backend/internal/apperrors"
	"github.com/boldtrade/boldtrade_backend/internal/core/domain"
)

func TestFetchPrice_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coin/Qwsogvtv82FCd", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		fmt.Fprint(w, `{"data":{"coin":{"symbol":"BTC","price":"61234.5678"}}}`)
	}))
	defer server.Close()

	client := coinranking.NewClient("test-key", coinranking.WithBaseURL(server.URL))

	quote, err := client.FetchPrice(context.Background(), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", quote.AssetID)
	assert.Equal(t, "BTC", quote.Symbol)
	assert.Equal(t, domain.QuoteSourceLive, quote.Source)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("61234.5678")))
}

func TestFetchPrice_UnknownAsset(t *testing.T) {
	client := coinranking.NewClient("test-key")

	_, err := client.FetchPrice(context.Background(), "dogecoin")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFetchPrice_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := coinranking.NewClient("test-key", coinranking.WithBaseURL(server.URL))

	_, err := client.FetchPrice(context.Background(), "bitcoin")
	require.Error(t, err)
}

func TestFetchPrice_BadPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"coin":{"symbol":"BTC","price":"not-a-number"}}}`)
	}))
	defer server.Close()

	client := coinranking.NewClient("test-key", coinranking.WithBaseURL(server.URL))

	_, err := client.FetchPrice(context.Background(), "bitcoin")
	require.Error(t, err)
}

func TestFetchPrice_NonPositivePrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"coin":{"symbol":"BTC","price":"0"}}}`)
	}))
	defer server.Close()

	client := coinranking.NewClient("test-key", coinranking.WithBaseURL(server.URL))

	_, err := client.FetchPrice(context.Background(), "bitcoin")
	require.Error(t, err)
}
