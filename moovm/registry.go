package moovm

import (
	"context"
	"fmt"
)

// Resolver maps an object id and verb name to the verb's program.
type Resolver interface {
	Verb(ctx context.Context, obj ObjID, verb string) (*Program, error)
}

type ResolverFunc func(ctx context.Context, obj ObjID, verb string) (*Program, error)

var _ Resolver = ResolverFunc(nil)

func (r ResolverFunc) Verb(ctx context.Context, obj ObjID, verb string) (*Program, error) {
	return r(ctx, obj, verb)
}

// Registry is an in-memory Resolver.
type Registry map[ObjID]map[string]*Program

var _ Resolver = Registry(nil)

func (r Registry) Define(obj ObjID, verb string, p *Program) {
	verbs, ok := r[obj]
	if !ok {
		verbs = make(map[string]*Program)
		r[obj] = verbs
	}
	verbs[verb] = p
}

func (r Registry) Verb(_ context.Context, obj ObjID, verb string) (*Program, error) {
	verbs, ok := r[obj]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, obj)
	}
	p, ok := verbs[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %s:%s", ErrUnknownVerb, obj, verb)
	}
	return p, nil
}
