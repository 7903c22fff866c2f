package tokens

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yourorg/tokenkit/internal/metrics"
	"github.com/yourorg/tokenkit/internal/telemetry"
	"github.com/yourorg/tokenkit/registry"
	"github.com/yourorg/tokenkit/wallet"
)

// Activate resolves the signer's active network against the registry and
// returns one activated handle per configured token, in registry order.
//
// The chain id comes from the signer's connected provider; a signer without
// one fails with wallet.ErrNoProvider, and a chain id the registry does not
// contain fails with registry.UnsupportedNetworkError. Tokens lacking an
// oracle feed need the fallback price function; fallback may be nil when
// every token on the network carries a feed.
//
// Per-token initialization (decimals plus the first balance/price refresh)
// runs concurrently. The call either returns the complete list or, if any
// token fails to initialize, the first error and no handles.
func Activate(ctx context.Context, signer wallet.Signer, reg registry.Registry, fallback FallbackPriceFn) ([]*Token, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "tokens.Activate")
	defer span.End()

	chainID, err := signer.ChainID(ctx)
	if err != nil {
		metrics.Activations.WithLabelValues("error").Inc()
		telemetry.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("chain_id", int64(chainID)))

	network, err := reg.Lookup(chainID)
	if err != nil {
		metrics.Activations.WithLabelValues("error").Inc()
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	// Construction is synchronous so a missing price source fails the batch
	// before any network I/O starts.
	activated := make([]*Token, len(network.Tokens))
	for i, desc := range network.Tokens {
		token, err := newToken(signer, chainID, desc, fallback)
		if err != nil {
			metrics.Activations.WithLabelValues("error").Inc()
			telemetry.RecordError(ctx, err)
			return nil, err
		}
		activated[i] = token
	}

	// Initialize all tokens in parallel, join-all with first-failure-wins.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, token := range activated {
		wg.Add(1)
		go func(t *Token) {
			defer wg.Done()

			if err := t.initialize(ctx); err != nil {
				mu.Lock()
				defer mu.Unlock()
				if firstErr == nil {
					firstErr = err
				}
			}
		}(token)
	}
	wg.Wait()

	if firstErr != nil {
		metrics.Activations.WithLabelValues("error").Inc()
		telemetry.RecordError(ctx, firstErr)
		return nil, firstErr
	}

	metrics.Activations.WithLabelValues("success").Inc()
	logrus.Infof("Activated %d tokens on %s (chain %d)", len(activated), network.Name, chainID)
	return activated, nil
}
