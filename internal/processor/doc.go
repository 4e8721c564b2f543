// Package processor encrypts or decrypts whole files concurrently.
//
// Files are fanned out to a bounded pool of workers. Each worker reads its file into memory,
// runs the cipher under an optional per-file timeout and writes the output atomically.
// A single printer goroutine reports results in completion order.
package processor
