// Package orchestrator wires the loader → extractor → model builder →
// renderer pipeline behind a single Generate call, with functional options
// for swapping any stage.
package orchestrator
