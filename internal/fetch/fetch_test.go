// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/conference-scraper/pkg/types"
)

func TestPageParsesDocument(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `<html><body><dt><a href="/p.html">A Paper</a></dt></body></html>`)
	}))
	defer ts.Close()

	f := NewWithClient(ts.Client(), "test-agent/1.0", zerolog.Nop())
	doc, err := f.Page(context.Background(), ts.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent/1.0", gotUA)
	assert.Equal(t, "A Paper", doc.Find("dt a").Text())
}

func TestPageNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewWithClient(ts.Client(), "test-agent/1.0", zerolog.Nop())
	_, err := f.Page(context.Background(), ts.URL)
	require.Error(t, err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ts.URL, fe.URL)
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Contains(t, fe.Error(), "HTTP 404")
}

func TestPageTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	ts.Close() // connection refused from here on

	f := New(types.HTTPConfig{Timeout: time.Second, UserAgent: "test-agent/1.0"}, zerolog.Nop())
	_, err := f.Page(context.Background(), ts.URL)
	require.Error(t, err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ts.URL, fe.URL)
	assert.Zero(t, fe.Status)
	assert.NotNil(t, fe.Unwrap())
}

func TestPageContextCancellation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewWithClient(ts.Client(), "test-agent/1.0", zerolog.Nop())
	_, err := f.Page(ctx, ts.URL)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.True(t, errors.Is(err, context.Canceled))
}
