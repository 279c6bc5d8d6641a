// Package schema exposes the public contracts for the loader and extractor
// stages: where a record type comes from (Source), the loaded payload
// (Document) and the host-neutral description of the type (TypeDescriptor).
// Implementations live under internal/ to keep go/packages and kin-openapi
// out of the public API.
package schema
