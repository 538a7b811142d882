// Package dispatch implements multimethod dispatch over pairs of distribution
// families. A Table maps an ordered pair (lhs family, rhs family) to a
// combination function. Registering a rule as symmetric also installs, under
// the swapped key, a trampoline that exchanges the operands, so commutative
// rules are written once.
//
// A lookup miss is an error wrapping ErrNoRule; there is no fallback to a
// generic implementation. Tables are safe for concurrent Dispatch calls and
// are meant to be filled once at start-up.
package dispatch
