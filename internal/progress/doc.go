// Package progress follows per-job server-sent progress events with
// automatic reconnection and forward-only stage ordering.
package progress
