package selectors

import "gorm.io/gorm"

type options struct {
	sqlite         bool
	caseSensitive  bool
	skipModelCheck bool
}

// Option configures a selector at construction.
type Option func(*options)

// WithSQLite selects the sqlite spelling of the string predicates.
func WithSQLite(enabled bool) Option {
	return func(o *options) {
		o.sqlite = enabled
	}
}

// WithCaseSensitive makes name and key matching case sensitive.
func WithCaseSensitive(enabled bool) Option {
	return func(o *options) {
		o.caseSensitive = enabled
	}
}

// WithoutModelCheck accepts any struct as the selector model.
func WithoutModelCheck() Option {
	return func(o *options) {
		o.skipModelCheck = true
	}
}

// ForDB sets the sqlite flag from the dialector behind db.
func ForDB(db *gorm.DB) Option {
	return WithSQLite(SQLiteFor(db))
}

// SQLiteFor reports whether db talks to sqlite.
func SQLiteFor(db *gorm.DB) bool {
	return db != nil && db.Dialector != nil && db.Dialector.Name() == "sqlite"
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
