package landing

import (
	"context"

	"github.com/risegum/internal/content"
	"github.com/risegum/internal/gateway"
	"github.com/risegum/internal/metrics"
	"github.com/rs/zerolog/log"
)

// ContentFetcher is the gateway operation used on mount.
type ContentFetcher interface {
	FetchContent(ctx context.Context) (gateway.ContentResult, error)
}

// PageState is everything the landing view needs for one render.
type PageState struct {
	Content    content.Model
	Loaded     bool
	Fallback   bool
	Form       Form
	Status     Status
	Submitting bool
}

// ContentLoader resolves the content model for a page mount.
type ContentLoader struct {
	fetcher ContentFetcher
}

// NewContentLoader accepts a nil fetcher, in which case the bundled content
// is always used.
func NewContentLoader(f ContentFetcher) *ContentLoader {
	return &ContentLoader{fetcher: f}
}

// Mount requests content once. A successful, complete response replaces the
// whole model; anything else keeps the bundled default. Loaded is always set.
func (l *ContentLoader) Mount(ctx context.Context) PageState {
	state := PageState{Content: content.Default(), Loaded: true}
	if l == nil || l.fetcher == nil {
		state.Fallback = true
		metrics.ContentFallbacks.Inc()
		return state
	}

	res, err := l.fetcher.FetchContent(ctx)
	switch {
	case err != nil:
		log.Debug().Err(err).Msg("content fetch failed, using bundled content")
	case !res.Success:
		log.Debug().Str("error", res.Error).Int("status", res.StatusCode).Msg("content fetch rejected, using bundled content")
	default:
		if verr := res.Content.Validate(); verr != nil {
			log.Warn().Err(verr).Msg("fetched content incomplete, using bundled content")
			break
		}
		state.Content = res.Content.Clone()
		return state
	}

	state.Fallback = true
	metrics.ContentFallbacks.Inc()
	return state
}
