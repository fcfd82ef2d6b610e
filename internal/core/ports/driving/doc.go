// Package driving defines the interfaces through which the outside world
// drives the core: chunking, extraction, and search over stored chunks.
package driving
