// Package render defines the renderer contract and the registry the
// orchestrator resolves renderers from.
package render
