package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimResolver_Resolve_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"address":{"road":"Main St","city":"Springfield","state":"IL","country":"USA"}}`))
	}))
	defer srv.Close()

	resolver := NewNominatimResolver(srv.URL, time.Second)
	name, err := resolver.Resolve(context.Background(), 39.78, -89.65)
	require.NoError(t, err)
	assert.Equal(t, "Main St, Springfield, IL, USA", name)
}

func TestNominatimResolver_Resolve_TownFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"town":"Smallville","country":"USA"}}`))
	}))
	defer srv.Close()

	resolver := NewNominatimResolver(srv.URL, time.Second)
	name, err := resolver.Resolve(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "Smallville, USA", name)
}

func TestNominatimResolver_Resolve_NoAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	resolver := NewNominatimResolver(srv.URL, time.Second)
	_, err := resolver.Resolve(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestNominatimResolver_Resolve_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resolver := NewNominatimResolver(srv.URL, time.Second)
	_, err := resolver.Resolve(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestNominatimResolver_Resolve_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":`))
	}))
	defer srv.Close()

	resolver := NewNominatimResolver(srv.URL, time.Second)
	_, err := resolver.Resolve(context.Background(), 0, 0)
	assert.Error(t, err)
}
