package app

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/crosslock/crosslock"
	"github.com/crosslock/crosslock/errors"
	"github.com/crosslock/crosslock/store"
	"github.com/crosslock/crosslock/x"
	"github.com/crosslock/crosslock/x/mixer"
	"github.com/crosslock/crosslock/x/multisig"
	"github.com/crosslock/crosslock/x/swap"
	"github.com/crosslock/crosslock/x/treasury"
	"github.com/crosslock/crosslock/x/utils"
	"github.com/crosslock/crosslock/x/zkproof"
)

// Config collects the pluggable pieces of the application. Zero values
// fall back to sane defaults: in-memory store, placeholder verifiers,
// silent logger.
type Config struct {
	ChainID           string
	SignatureVerifier multisig.SignatureVerifier
	ProofVerifier     zkproof.Verifier
	Logger            logrus.FieldLogger
}

// CrossLock is the assembled state machine. It is not safe for
// concurrent use; the host serializes calls, which also provides the
// call-atomic execution model together with the savepoint decorator.
type CrossLock struct {
	db      crosslock.CacheableKVStore
	handler crosslock.Handler
	queries crosslock.QueryRouter
	chainID string
	logger  logrus.FieldLogger
}

// New assembles the application with all extensions wired in.
func New(cfg Config) *CrossLock {
	if cfg.SignatureVerifier == nil {
		cfg.SignatureVerifier = multisig.AcceptAllVerifier{}
	}
	if cfg.ProofVerifier == nil {
		cfg.ProofVerifier = zkproof.NonEmptyVerifier{}
	}
	if cfg.Logger == nil {
		cfg.Logger = crosslock.DefaultLogger
	}

	auth := Authenticator{}
	router := NewRouter()
	treasuryBucket := treasury.NewBucket()
	swap.RegisterRoutes(router, auth, treasury.NewController(treasuryBucket))
	multisig.RegisterRoutes(router, auth, cfg.SignatureVerifier)
	zkproof.RegisterRoutes(router, auth, cfg.ProofVerifier)
	mixer.RegisterRoutes(router, auth)
	treasury.RegisterRoutes(router, auth)

	handler := ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(router)

	queries := crosslock.NewQueryRouter()
	swap.RegisterQuery(queries)
	multisig.RegisterQuery(queries)
	zkproof.RegisterQuery(queries)
	mixer.RegisterQuery(queries)
	treasury.RegisterQuery(queries)
	queries.Register("/version", versionQuery{})

	return &CrossLock{
		db:      store.MemStore(),
		handler: handler,
		queries: queries,
		chainID: cfg.ChainID,
		logger:  cfg.Logger,
	}
}

// InitGenesis applies the genesis document before the first call.
func (a *CrossLock) InitGenesis(raw []byte) error {
	var opts crosslock.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	var ini treasury.Initializer
	return ini.FromGenesis(opts, a.db)
}

// Check validates a transaction at the given logical height without
// committing any state.
func (a *CrossLock) Check(height int64, tx crosslock.Tx, signers ...crosslock.Address) (*crosslock.CheckResult, error) {
	ctx := a.context(height, signers)
	cache := a.db.CacheWrap()
	res, err := a.handler.Check(ctx, cache, tx)
	cache.Discard()
	return res, err
}

// Deliver executes a transaction at the given logical height. Failed
// calls leave the store untouched.
func (a *CrossLock) Deliver(height int64, tx crosslock.Tx, signers ...crosslock.Address) (*crosslock.DeliverResult, error) {
	ctx := a.context(height, signers)
	return a.handler.Deliver(ctx, a.db, tx)
}

// Query resolves a read-only query. A "?prefix" suffix on the path
// switches to prefix matching, like "/swaps?prefix".
func (a *CrossLock) Query(path string, data []byte) ([]crosslock.Model, error) {
	mod := crosslock.KeyQueryMod
	if cut := strings.Index(path, "?"); cut != -1 {
		mod = path[cut+1:]
		path = path[:cut]
	}
	h := a.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}
	return h.Query(a.db, mod, data)
}

func (a *CrossLock) context(height int64, signers []crosslock.Address) crosslock.Context {
	ctx := crosslock.WithHeight(context.Background(), height)
	ctx = crosslock.WithChainID(ctx, a.chainID)
	ctx = crosslock.WithLogger(ctx, a.logger)
	return WithSigners(ctx, signers...)
}

// Auth exposes the context authenticator the handlers were registered
// with.
func (a *CrossLock) Auth() x.Authenticator {
	return Authenticator{}
}

// versionQuery serves the free-text version string.
type versionQuery struct{}

func (versionQuery) Query(crosslock.ReadOnlyKVStore, string, []byte) ([]crosslock.Model, error) {
	return []crosslock.Model{
		crosslock.Pair([]byte("version"), []byte(crosslock.Version)),
	}, nil
}
