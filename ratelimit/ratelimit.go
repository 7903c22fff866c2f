// Package ratelimit provides a signer decorator that throttles provider
// traffic, for callers sharing a rate-limited RPC endpoint across many token
// handles.
package ratelimit

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/time/rate"

	"github.com/yourorg/tokenkit/wallet"
)

// Signer wraps another signer and waits for limiter tokens before every
// provider-bound operation. Address lookups are local and never throttled.
type Signer struct {
	inner   wallet.Signer
	limiter *rate.Limiter
}

// Wrap decorates a signer with a limiter allowing rps requests per second
// with the given burst size.
func Wrap(inner wallet.Signer, rps float64, burst int) *Signer {
	return &Signer{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Address returns the inner signer's address.
func (s *Signer) Address() common.Address {
	return s.inner.Address()
}

// ChainID resolves the chain id through the inner signer after waiting for
// the limiter.
func (s *Signer) ChainID(ctx context.Context) (uint64, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return s.inner.ChainID(ctx)
}

// CallContract executes a read call through the inner signer after waiting
// for the limiter.
func (s *Signer) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.CallContract(ctx, msg, blockNumber)
}

// Transact submits a transaction through the inner signer after waiting for
// the limiter.
func (s *Signer) Transact(ctx context.Context, to common.Address, data []byte) (*types.Transaction, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Transact(ctx, to, data)
}
