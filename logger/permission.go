package logger

// Permission implementations decide whether the caller of a Log/Logf
// function is currently allowed to add entries to the central log. This
// lets high-frequency subsystems (the pixel pipeline runs at one decision
// per color clock) mute themselves without every call site needing an
// explicit conditional.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool { return true }

// Allow is a Permission that always allows logging. Good default for
// one-shot or low-frequency log sites.
var Allow Permission = allow{}

// Gate is a mutable Permission, useful for subsystems that want to turn
// their own logging on and off at runtime (e.g. disabling per-pixel
// diagnostic logging once a ROM is known-good).
type Gate struct {
	open bool
}

// NewGate returns a Gate starting in the given state.
func NewGate(open bool) *Gate {
	return &Gate{open: open}
}

// AllowLogging implements Permission.
func (g *Gate) AllowLogging() bool {
	return g != nil && g.open
}

// Open allows logging through this gate.
func (g *Gate) Open() { g.open = true }

// Close silences logging through this gate.
func (g *Gate) Close() { g.open = false }
