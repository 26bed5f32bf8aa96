// Package router maps request types onto services and picks a concrete
// destination for each request through a pluggable selection policy.
//
// The router never admits requests itself. Callers take its pick to the
// destination's TryAccept, and on rejection may route again or give up.
package router
