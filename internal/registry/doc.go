// Package registry is the ownership root for destinations and services.
// Everything else in the routing layer holds handles (addresses, names)
// into it rather than object references, so configuration changes take
// effect everywhere immediately and removed entries cannot dangle.
package registry
