// Package policy defines the selection interface and the three balancing
// algorithms:
//
//   - Least Loaded: the destination currently serving the fewest requests
//   - Hash Routed: a stable hash of the request id, for placement affinity
//   - Round Robin: cycles per request type through a captured sequence
//
// A policy decides; it never admits. Whether the chosen destination has
// capacity left is settled afterwards by the caller.
package policy
