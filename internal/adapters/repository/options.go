// Package repository holds the season record and matchup stores.
package repository

import "github.com/billyessing/nfl-fantasy/pkg/logger"

// Option applies a configuration option to a store.
type Option func(*storeOptions)

type storeOptions struct {
	log logger.Logger
}

func newStoreOptions(opts []Option) storeOptions {
	o := storeOptions{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used to report rejected rows.
func WithLogger(l logger.Logger) Option {
	return func(o *storeOptions) {
		if l != nil {
			o.log = l
		}
	}
}
