package lineedit

import "time"

// MaxCompletionsToShow is the global cap on candidates regenerated for
// show-all mode (spec §6, bit-exact constant).
const MaxCompletionsToShow = 1000

// Config carries the few knobs the core exposes. It is not a general
// configuration framework (the teacher doesn't use one at this layer
// either) — just the values spec.md leaves as implementation-defined.
type Config struct {
	// EscTimeout is how long ReadKey waits for a byte after a lone ESC,
	// or for the remainder of a CSI/SS3 sequence, before giving up and
	// reporting KeyEsc or a best-effort fallback (spec §4.2.1, §7.3).
	//
	// This is spec.md §9's Open Question made concrete: values much below
	// ~50ms risk misclassifying a slow paste of a multi-byte sequence as
	// several unrelated keys, since the decoder will time out between the
	// bytes of what was really one escape sequence.
	EscTimeout time.Duration

	// MaxCompletionsToShow overrides MaxCompletionsToShow for callers that
	// need a smaller cap (e.g. tests). Zero means "use the package
	// default".
	MaxCompletionsToShow int
}

// DefaultConfig returns the Config used when callers don't supply one.
func DefaultConfig() Config {
	return Config{
		EscTimeout:           100 * time.Millisecond,
		MaxCompletionsToShow: MaxCompletionsToShow,
	}
}

func (c Config) maxCompletions() int {
	if c.MaxCompletionsToShow > 0 {
		return c.MaxCompletionsToShow
	}
	return MaxCompletionsToShow
}
