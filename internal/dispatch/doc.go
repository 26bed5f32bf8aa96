// Package dispatch drives a request through its full path: route, admit
// at the chosen destination, retry on rejection, release on completion.
// It coordinates the router, circuit breakers, and metrics emission.
package dispatch
