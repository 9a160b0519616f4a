// Package partial exercises variants that absorb leading parameters as
// payload: only the trailing rhs belongs to the shared call interface.
//
//defunc:signature fn(rhs: uint32) -> uint32
package partial

// Sub returns x - y.
func Sub(x, y uint32) uint32 { return x - y }

// Scale returns factor * rhs.
func Scale(factor, rhs uint32) uint32 { return factor * rhs }

// Identity returns rhs unchanged.
func Identity(rhs uint32) uint32 { return rhs }
