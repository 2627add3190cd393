package currency

import "sync"

// Defaults holds session-wide fallback options. Reads take a copy; writes
// replace the whole value, last write wins. The mutex makes concurrent
// reconfiguration safe, nothing more — callers racing on Configure simply
// see one of the written values.
type Defaults struct {
	mu       sync.RWMutex
	currency Options
}

// NewDefaults builds a holder seeded with o.
func NewDefaults(o Options) *Defaults {
	return &Defaults{currency: o}
}

// Currency returns a copy of the held options.
func (d *Defaults) Currency() Options {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.currency
}

// SetCurrency replaces the held options.
func (d *Defaults) SetCurrency(o Options) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currency = o
}

// std is the process-wide session holder consulted by every formatting call
// that is not given explicit options.
var std = NewDefaults(Options{
	Symbol:            "$",
	DecimalDigits:     2,
	ThousandSeparator: ",",
	DecimalSeparator:  ".",
	Format:            "%s%v",
})

// Configure replaces the process-wide session defaults.
func Configure(o Options) {
	std.SetCurrency(o)
}

// SessionDefaults returns a copy of the process-wide session defaults.
func SessionDefaults() Options {
	return std.Currency()
}
