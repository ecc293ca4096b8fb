/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import "context"

// Resolver resolves dependency specifiers.
type Resolver interface {
	// Resolve resolves wanted relative to rctx.
	// Returns an error if resolution fails.
	Resolve(ctx context.Context, wanted WantedDependency, rctx ResolveContext) (*ResolveResult, error)

	// CanResolve returns true if this resolver can handle the given dependency.
	CanResolve(wanted WantedDependency) bool
}

// ChainResolver tries multiple resolvers in order.
type ChainResolver struct {
	resolvers []Resolver
}

// NewChainResolver creates a resolver that tries each resolver in order.
func NewChainResolver(resolvers ...Resolver) *ChainResolver {
	return &ChainResolver{resolvers: resolvers}
}

// Resolve hands wanted to the first resolver that accepts it. Its result,
// success or failure, is final.
func (c *ChainResolver) Resolve(ctx context.Context, wanted WantedDependency, rctx ResolveContext) (*ResolveResult, error) {
	for _, r := range c.resolvers {
		if r.CanResolve(wanted) {
			return r.Resolve(ctx, wanted, rctx)
		}
	}
	return nil, &NotSupportedError{Alias: wanted.Alias, Pref: wanted.Pref}
}

// CanResolve returns true if any resolver can handle the dependency.
func (c *ChainResolver) CanResolve(wanted WantedDependency) bool {
	for _, r := range c.resolvers {
		if r.CanResolve(wanted) {
			return true
		}
	}
	return false
}
