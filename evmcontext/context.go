// Package evmcontext assembles the database, journaled state, environment,
// and precompile registry a frame builder needs for one transaction's call
// tree.
package evmcontext

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/go-ethevm/evmcore/db"
	"github.com/go-ethevm/evmcore/host"
	"github.com/go-ethevm/evmcore/journal"
	"github.com/go-ethevm/evmcore/precompile"
	"github.com/go-ethevm/evmcore/specid"
)

// InnerContext bundles the environment, journaled state, and database, plus
// a deferred-error slot that lets database-backed collaborators (loaded by
// methods with no error return, such as Host.Balance) surface a failure
// after the fact instead of threading it through every call site.
type InnerContext struct {
	Env            host.Env
	JournaledState *journal.JournaledState
	Database       db.Database

	deferredErr error
}

// NewInnerContext constructs an InnerContext for the given hardfork,
// environment, and database.
func NewInnerContext(spec specid.SpecId, env host.Env, database db.Database) *InnerContext {
	return &InnerContext{
		Env:            env,
		JournaledState: journal.New(spec),
		Database:       database,
	}
}

// TakeError returns and clears any database error recorded by a prior
// no-error-returning call, letting a caller check once at a natural point
// (e.g. after an opcode loop) instead of after every Host method.
func (c *InnerContext) TakeError() error {
	err := c.deferredErr
	c.deferredErr = nil
	return err
}

func (c *InnerContext) recordError(err error) {
	if err == nil {
		return
	}
	if c.deferredErr == nil {
		c.deferredErr = err
	}
	log.Error("evmcore: deferred database error", "err", err)
}

// Context layers the precompile registry on top of an InnerContext;
// embedding promotes the inner fields so callers reach Env, Database, and
// JournaledState directly.
type Context struct {
	*InnerContext
	Precompiles *precompile.Registry
}

// NewContext constructs a Context with its precompile registry pre-warmed
// into the journaled state's preloaded-address set, plus the block coinbase
// from Shanghai onward (EIP-3651).
func NewContext(spec specid.SpecId, env host.Env, database db.Database) *Context {
	inner := NewInnerContext(spec, env, database)
	registry := precompile.ForSpec(spec)
	warm := registry.Addresses()
	if specid.Enabled(spec, specid.Shanghai) {
		warm.Add(env.Block.Coinbase)
	}
	inner.JournaledState.SetWarmPreloadedAddresses(warm)
	return &Context{InnerContext: inner, Precompiles: registry}
}

// SetPrecompiles replaces the active registry and merges its addresses into
// the journaled state's preloaded-address set; addresses already in that
// set stay there.
func (c *Context) SetPrecompiles(registry *precompile.Registry) {
	c.Precompiles = registry
	c.JournaledState.SetWarmPreloadedAddresses(registry.Addresses())
}
