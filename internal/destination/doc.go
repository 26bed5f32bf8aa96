// Package destination models backend endpoints with capacity-bounded
// admission. Each destination tracks how many requests it is currently
// serving and accepts or rejects new work against its capacity threshold.
package destination
