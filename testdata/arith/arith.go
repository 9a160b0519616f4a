// Package arith holds small arithmetic helpers defunctionalized by the tests.
//
//defunc:signature fn Arithmetic(x: uint32, y: uint32) -> uint32
//defunc:derive json
package arith

// Add returns x + y.
func Add(x, y uint32) uint32 { return x + y }

// Sub returns x - y.
func Sub(x, y uint32) uint32 { return x - y }

// Mult returns x * y.
func Mult(x, y uint32) uint32 { return x * y }

// maxOperand documents the wrap-around bound of the helpers above.
const maxOperand = ^uint32(0)

func wraps(x, y uint32) bool { return x > maxOperand-y }
