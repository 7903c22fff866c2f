// Package tokens implements the activation engine: it resolves the signer's
// active network against the registry and produces one activated handle per
// configured token, each able to report its balance and USD price and to
// submit transfers.
package tokens

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/yourorg/tokenkit/erc20"
	"github.com/yourorg/tokenkit/internal/metrics"
	"github.com/yourorg/tokenkit/internal/telemetry"
	"github.com/yourorg/tokenkit/oracle"
	"github.com/yourorg/tokenkit/registry"
	"github.com/yourorg/tokenkit/wallet"
)

// FallbackPriceFn supplies a USD price for tokens without an on-chain feed.
// It receives the active chain id and the token descriptor being priced.
type FallbackPriceFn func(ctx context.Context, chainID uint64, token registry.TokenDescriptor) (float64, error)

// MissingPriceSourceError reports a token that has neither an oracle feed nor
// a fallback price function. It is raised at construction, before any
// network I/O happens.
type MissingPriceSourceError struct {
	Symbol  string
	Address common.Address
}

func (e *MissingPriceSourceError) Error() string {
	return fmt.Sprintf("tokens: %s (%s) has no oracle and no fallback price function", e.Symbol, e.Address.Hex())
}

// priceSource is the tagged variant behind Token.Price: a token is either
// oracle-priced or callback-priced, decided once at construction.
type priceSource interface {
	price(ctx context.Context) (float64, error)
}

type oraclePriced struct {
	feed *oracle.Feed
}

func (s oraclePriced) price(ctx context.Context) (float64, error) {
	return s.feed.LatestPrice(ctx)
}

type callbackPriced struct {
	chainID uint64
	token   registry.TokenDescriptor
	fn      FallbackPriceFn
}

func (s callbackPriced) price(ctx context.Context) (float64, error) {
	return s.fn(ctx, s.chainID, s.token)
}

// Token is an activated token handle: one descriptor bound to its contract
// and price source, caching the decimal precision plus the balance and price
// from the most recent Update. A Token is owned by the caller that activated
// it and is not safe for concurrent use by multiple goroutines.
type Token struct {
	descriptor registry.TokenDescriptor
	chainID    uint64
	signer     wallet.Signer
	contract   *erc20.Token
	source     priceSource

	decimals uint8
	balance  float64
	price    float64
}

// newToken binds the contract handles for one descriptor and picks its price
// source. Tokens without an oracle require a non-nil fallback function.
func newToken(signer wallet.Signer, chainID uint64, desc registry.TokenDescriptor, fallback FallbackPriceFn) (*Token, error) {
	var source priceSource
	switch {
	case desc.HasOracle():
		source = oraclePriced{feed: oracle.Bind(desc.Oracle, signer)}
	case fallback != nil:
		source = callbackPriced{chainID: chainID, token: desc, fn: fallback}
	default:
		return nil, &MissingPriceSourceError{Symbol: desc.Symbol, Address: desc.Address}
	}

	return &Token{
		descriptor: desc,
		chainID:    chainID,
		signer:     signer,
		contract:   erc20.Bind(desc.Address, signer),
		source:     source,
	}, nil
}

// initialize fetches the decimal precision once and performs the first
// balance/price refresh.
func (t *Token) initialize(ctx context.Context) error {
	decimals, err := t.contract.Decimals(ctx)
	if err != nil {
		return fmt.Errorf("tokens: fetching decimals for %s: %w", t.descriptor.Symbol, err)
	}
	t.decimals = decimals

	return t.Update(ctx)
}

// Descriptor returns the registry entry this handle was activated from.
func (t *Token) Descriptor() registry.TokenDescriptor {
	return t.descriptor
}

// ChainID returns the chain id the handle is bound to.
func (t *Token) ChainID() uint64 {
	return t.chainID
}

// Decimals returns the cached decimal precision.
func (t *Token) Decimals() uint8 {
	return t.decimals
}

// CachedBalance returns the balance committed by the last successful Update.
func (t *Token) CachedBalance() float64 {
	return t.balance
}

// CachedPrice returns the price committed by the last successful Update.
func (t *Token) CachedPrice() float64 {
	return t.price
}

// pow10 returns 10^decimals as a big.Float scaling factor.
func pow10(decimals uint8) *big.Float {
	return new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
}

// Balance reads the signer's current token balance, normalized by the cached
// decimal precision.
func (t *Token) Balance(ctx context.Context) (float64, error) {
	raw, err := t.contract.BalanceOf(ctx, t.signer.Address())
	if err != nil {
		return 0, err
	}

	balance, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), pow10(t.decimals)).Float64()
	return balance, nil
}

// Price reads the current USD price from the token's price source.
func (t *Token) Price(ctx context.Context) (float64, error) {
	return t.source.price(ctx)
}

// Transfer scales amount by the cached decimal precision, submits a transfer
// to the recipient and returns the pending transaction. Waiting for
// confirmation is the caller's responsibility.
func (t *Token) Transfer(ctx context.Context, to common.Address, amount float64) (*types.Transaction, error) {
	raw, _ := new(big.Float).Mul(big.NewFloat(amount), pow10(t.decimals)).Int(nil)

	data, err := erc20.TransferData(to, raw)
	if err != nil {
		metrics.Transfers.WithLabelValues("error").Inc()
		return nil, err
	}

	tx, err := t.signer.Transact(ctx, t.descriptor.Address, data)
	if err != nil {
		metrics.Transfers.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tokens: transferring %s: %w", t.descriptor.Symbol, err)
	}

	metrics.Transfers.WithLabelValues("success").Inc()
	logrus.Infof("Submitted transfer of %f %s to %s: %s", amount, t.descriptor.Symbol, to.Hex(), tx.Hash().Hex())
	return tx, nil
}

// Update refreshes the cached balance and price. Both reads run in parallel
// and both results are committed together; if either read fails the previous
// cached values stay in place and the error is returned.
func (t *Token) Update(ctx context.Context) error {
	ctx, span := telemetry.Tracer().Start(ctx, "tokens.Update")
	defer span.End()

	timer := prometheus.NewTimer(metrics.UpdateDuration)
	defer timer.ObserveDuration()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		balance float64
		price   float64
	)

	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		b, err := t.Balance(ctx)
		if err != nil {
			record(err)
			return
		}
		balance = b
	}()
	go func() {
		defer wg.Done()
		p, err := t.Price(ctx)
		if err != nil {
			record(err)
			return
		}
		price = p
	}()
	wg.Wait()

	if firstErr != nil {
		metrics.Updates.WithLabelValues("error").Inc()
		telemetry.RecordError(ctx, firstErr)
		return fmt.Errorf("tokens: updating %s: %w", t.descriptor.Symbol, firstErr)
	}

	t.balance = balance
	t.price = price
	metrics.Updates.WithLabelValues("success").Inc()

	logrus.Debugf("Updated %s: balance=%f price=%f", t.descriptor.Symbol, balance, price)
	return nil
}
