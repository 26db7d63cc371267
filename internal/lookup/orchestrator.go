package lookup

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/steemit/hivelens/internal/hive"
	"github.com/steemit/hivelens/pkg/logging"
	"github.com/steemit/hivelens/pkg/telemetry"
)

// Provider supplies the read operations a lookup needs
type Provider interface {
	GetAccount(ctx context.Context, name string) (*hive.Account, error)
	GetRewardHistory(ctx context.Context, name string) ([]hive.RewardClaim, error)
	GetDelegations(ctx context.Context, name string) ([]hive.VestingDelegation, error)
	GetWalletHistory(ctx context.Context, name string) ([]hive.WalletOp, error)
}

// BundleCache stores lookup results for future reuse. Writes are
// best-effort; the orchestrator never reads entries back.
type BundleCache interface {
	PutBundle(ctx context.Context, username string, bundle *Bundle, capturedAt time.Time) error
}

// AuditSink records lookup attempts. Writes are best-effort and never
// affect the lookup's reported outcome.
type AuditSink interface {
	Record(ctx context.Context, username string, at time.Time, account *hive.Account) error
}

const sideEffectTimeout = 5 * time.Second

// Orchestrator coordinates one account lookup: a timeout-bounded
// primary fetch, a three-way concurrent secondary fetch, an atomic
// state replacement, and best-effort cache/audit writes.
type Orchestrator struct {
	provider Provider
	cache    BundleCache // nil disables caching
	audit    AuditSink   // nil disables audit logging
	timeout  time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	gen    uint64
	phase  Phase
	bundle *Bundle
	errMsg string
}

// New creates a new lookup orchestrator
func New(provider Provider, cache BundleCache, audit AuditSink, timeout time.Duration) *Orchestrator {
	return &Orchestrator{
		provider: provider,
		cache:    cache,
		audit:    audit,
		timeout:  timeout,
		phase:    Idle,
		logger:   logging.GetLogger().With(zap.String("component", "lookup")),
	}
}

// Lookup fetches the full account bundle for a username. The caller is
// responsible for rejecting empty usernames before invoking Lookup.
//
// The four collections are installed together or not at all: any fault
// clears all of them and records a user-facing error. Overlapping
// invocations each get their own result, but only the most recent one
// may update the shared presentation state.
func (o *Orchestrator) Lookup(ctx context.Context, username string) (*Bundle, error) {
	ctx, span := telemetry.StartSpan(ctx, "lookup.account")
	defer span.End()

	token := o.begin()

	var (
		bundle *Bundle
		err    error
	)
	// Settles the state machine on every exit path
	defer func() { o.settle(token, bundle, err) }()

	bundle, err = o.fetch(ctx, username)
	if err != nil {
		bundle = nil
		return nil, err
	}

	o.recordSideEffects(username, bundle)

	return bundle, nil
}

// Status returns the current state machine value
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Status{
		Phase:  o.phase,
		Bundle: o.bundle,
		Error:  o.errMsg,
	}
}

// begin enters the Loading state and issues a new generation token
func (o *Orchestrator) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
	o.phase = Loading
	o.errMsg = ""
	return o.gen
}

// settle installs the lookup's outcome, unless a newer lookup has been
// issued since this one started
func (o *Orchestrator) settle(token uint64, bundle *Bundle, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if token != o.gen {
		o.logger.Debug("discarding stale lookup result", zap.Uint64("token", token))
		return
	}

	if err != nil {
		o.phase = Failed
		o.bundle = nil
		o.errMsg = userMessage(err)
		return
	}

	o.phase = Ready
	o.bundle = bundle
	o.errMsg = ""
}

// fetch runs the primary account fetch under the lookup timeout, then
// the three secondary fetches concurrently
func (o *Orchestrator) fetch(ctx context.Context, username string) (*Bundle, error) {
	primaryCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	account, err := o.provider.GetAccount(primaryCtx, username)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, ErrTimeout
		}
		return nil, &ProviderError{Err: err}
	}
	if account == nil {
		return nil, ErrNotFound
	}

	// No individual timeout on the secondaries; the caller's context
	// still bounds them
	var (
		rewards     []hive.RewardClaim
		delegations []hive.VestingDelegation
		wallet      []hive.WalletOp
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rewards, err = o.provider.GetRewardHistory(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		delegations, err = o.provider.GetDelegations(gctx, username)
		return err
	})
	g.Go(func() error {
		var err error
		wallet, err = o.provider.GetWalletHistory(gctx, username)
		return err
	})

	if err := g.Wait(); err != nil {
		// All-or-nothing: partial results are discarded
		return nil, &ProviderError{Err: err}
	}

	return &Bundle{
		Account:     account,
		Rewards:     rewards,
		Delegations: delegations,
		Wallet:      wallet,
	}, nil
}

// recordSideEffects runs the cache and audit writes as detached
// best-effort tasks; their faults are logged, never surfaced
func (o *Orchestrator) recordSideEffects(username string, bundle *Bundle) {
	capturedAt := time.Now().UTC()

	if o.cache != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			if err := o.cache.PutBundle(ctx, username, bundle, capturedAt); err != nil {
				o.logger.Warn("cache write failed",
					zap.String("username", username), zap.Error(err))
			}
		}()
	}

	if o.audit != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), sideEffectTimeout)
			defer cancel()
			if err := o.audit.Record(ctx, username, capturedAt, bundle.Account); err != nil {
				o.logger.Warn("audit write failed",
					zap.String("username", username), zap.Error(err))
			}
		}()
	}
}
