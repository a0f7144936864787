package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// NotFoundError reports that the external source has no card for a lookup.
// Resolvers treat it as a soft failure: the deck keeps processing with an
// unresolved record in place of the card.
type NotFoundError struct {
	Name      string
	Qualifier string
}

func (e *NotFoundError) Error() string {
	if e.Qualifier != "" {
		return fmt.Sprintf("card %q (%s) not found", e.Name, e.Qualifier)
	}
	return fmt.Sprintf("card %q not found", e.Name)
}

// FetchFunc queries an external card-data source for one identifier and maps
// the response into the game's record shape. Implementations own their
// transport, courtesy throttle and response mapping; they return
// *NotFoundError for missing cards and any other error for transport
// failures.
type FetchFunc[T any] func(ctx context.Context, name, qualifier string) (T, error)

// Resolution is the outcome of resolving one card entry. Missing marks the
// sentinel produced when the external source had no match; templates render
// an explicit "missing card" state from it.
type Resolution[T any] struct {
	Identifier string
	Qualifier  string
	Record     T
	Missing    bool
}

// Resolver is the cache-checked lookup skeleton shared by all games. Only
// the fetch transport and the record type vary per game.
type Resolver[T any] struct {
	Store *Store[T]
	Fetch FetchFunc[T]
	// Game names the pipeline in log output.
	Game string
	// IsMissing recognizes the stored unresolved sentinel so warmed-cache
	// hits keep reporting the missing state.
	IsMissing func(T) bool
}

// Resolve returns the record for (name, qualifier), consulting the store
// first. On a miss it fetches from the external source and stores the
// result; a not-found lookup stores and returns a zero sentinel so repeat
// runs stay quiet. Transport errors propagate unchanged.
func (r *Resolver[T]) Resolve(ctx context.Context, name, qualifier string) (Resolution[T], error) {
	bucket := qualifier
	if bucket == "" {
		bucket = DefaultBucket
	}

	if rec, ok := r.Store.Get(bucket, name); ok {
		missing := r.IsMissing != nil && r.IsMissing(rec)
		return Resolution[T]{Identifier: name, Qualifier: qualifier, Record: rec, Missing: missing}, nil
	}

	rec, err := r.Fetch(ctx, name, qualifier)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			slog.Warn("card not found, storing unresolved sentinel",
				"game", r.Game, "card", name, "qualifier", qualifier)
			var zero T
			r.Store.Put(bucket, name, zero)
			return Resolution[T]{Identifier: name, Qualifier: qualifier, Missing: true}, nil
		}
		return Resolution[T]{}, fmt.Errorf("resolving %q: %w", name, err)
	}

	r.Store.Put(bucket, name, rec)
	return Resolution[T]{Identifier: name, Qualifier: qualifier, Record: rec}, nil
}
