package landing

import (
	"context"
	"errors"
	"testing"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/gateway"
	"github.com/stretchr/testify/assert"
)

type fakeFetcher struct {
	result gateway.ContentResult
	err    error
	calls  int
}

func (f *fakeFetcher) FetchContent(context.Context) (gateway.ContentResult, error) {
	f.calls++
	return f.result, f.err
}

func TestMountUsesFetchedContent(t *testing.T) {
	remote := content.Default()
	remote.SocialProofStats.InterestedStudents = 5000
	remote.Testimonials = remote.Testimonials[:1]
	fetcher := &fakeFetcher{result: gateway.ContentResult{Result: gateway.Result{Success: true}, Content: remote}}

	state := NewContentLoader(fetcher).Mount(context.Background())

	assert.True(t, state.Loaded)
	assert.False(t, state.Fallback)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 5000, state.Content.SocialProofStats.InterestedStudents)
	assert.Len(t, state.Content.Testimonials, 1)
}

func TestMountFallsBackToBundledContent(t *testing.T) {
	incomplete := content.Default()
	incomplete.Testimonials = nil

	cases := map[string]*fakeFetcher{
		"transport error": {err: gateway.ErrUnavailable},
		"rejected":        {result: gateway.ContentResult{Result: gateway.Result{Error: "boom", StatusCode: 500}}},
		"incomplete":      {result: gateway.ContentResult{Result: gateway.Result{Success: true}, Content: incomplete}},
		"other error":     {err: errors.New("context deadline exceeded")},
	}
	for name, fetcher := range cases {
		t.Run(name, func(t *testing.T) {
			state := NewContentLoader(fetcher).Mount(context.Background())
			assert.True(t, state.Loaded)
			assert.True(t, state.Fallback)
			assert.Equal(t, content.Default(), state.Content)
		})
	}
}

func TestMountWithoutFetcher(t *testing.T) {
	state := NewContentLoader(nil).Mount(context.Background())
	assert.True(t, state.Loaded)
	assert.Equal(t, content.Default().Testimonials, state.Content.Testimonials)
	assert.Equal(t, content.Default().SocialProofStats, state.Content.SocialProofStats)
}

func TestMountDoesNotShareBundledSlices(t *testing.T) {
	state := NewContentLoader(nil).Mount(context.Background())
	state.Content.Testimonials[0].Name = "Changed"
	assert.NotEqual(t, "Changed", content.Default().Testimonials[0].Name)
}
