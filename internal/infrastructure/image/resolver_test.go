package image

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GardenBot/internal/domain"
	"GardenBot/internal/infrastructure/fetch"
)

func newPageServer(t *testing.T, html string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResolveOrder(t *testing.T) {
	t.Parallel()

	var hits int32
	server := newPageServer(t, `<meta property="og:image" content="/og.jpg">`, &hits)
	resolver := NewResolver(fetch.NewClient(server.Client(), "", time.Second), nil)
	articleURL := server.URL + "/blog/post.html"

	cases := []struct {
		name  string
		hints domain.MediaHints
		want  string
	}{
		{
			name: "media wins",
			hints: domain.MediaHints{
				MediaURL:        "https://img.ru/media.jpg",
				EnclosureURL:    "https://img.ru/enc.jpg",
				DescriptionHTML: `<img src="https://img.ru/desc.jpg">`,
			},
			want: "https://img.ru/media.jpg",
		},
		{
			name:  "enclosure next",
			hints: domain.MediaHints{EnclosureURL: "https://img.ru/enc.jpg"},
			want:  "https://img.ru/enc.jpg",
		},
		{
			name:  "description img resolved against article",
			hints: domain.MediaHints{DescriptionHTML: `<p>Анонс</p><img src="/uploads/desc.png">`},
			want:  server.URL + "/uploads/desc.png",
		},
	}

	for _, tc := range cases {
		got, err := resolver.Resolve(context.Background(), domain.Candidate{URL: articleURL, Media: tc.hints})
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
	assert.Zero(t, atomic.LoadInt32(&hits), "feed hints must not trigger a page fetch")

	got, err := resolver.Resolve(context.Background(), domain.Candidate{URL: articleURL})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/og.jpg", got)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestResolveNoImage(t *testing.T) {
	t.Parallel()

	var hits int32
	server := newPageServer(t, `<html><head><title>x</title></head></html>`, &hits)
	resolver := NewResolver(fetch.NewClient(server.Client(), "", time.Second), nil)

	_, err := resolver.Resolve(context.Background(), domain.Candidate{
		URL:   server.URL + "/post",
		Media: domain.MediaHints{DescriptionHTML: `<p>без картинки</p>`},
	})
	assert.True(t, errors.Is(err, domain.ErrNoImage), "got %v", err)
}

func TestResolveFetchFailureMeansNoImage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	resolver := NewResolver(fetch.NewClient(server.Client(), "", time.Second), nil)
	_, err := resolver.Resolve(context.Background(), domain.Candidate{URL: server.URL + "/post"})
	assert.ErrorIs(t, err, domain.ErrNoImage)
}
