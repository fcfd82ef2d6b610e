// Package driven defines the interfaces the core calls out through:
// the upstream parser's output, the optional search collaborator, and the
// stores for documents, results, and configuration.
//
// Adapters implement these interfaces; the core depends only on the
// interfaces so every collaborator can be swapped or absent in tests.
package driven
