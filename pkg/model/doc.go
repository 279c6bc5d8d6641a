// Package model defines the builder model consumed by renderers. Classification
// and synthesis live in internal/model; this package re-exports the types and
// exposes the Builder contract so callers can inject their own.
//
// Every record field is classified into exactly one slot:
//
//   - optional: the field is declared as *T; the builder stores *T and the
//     accessor takes T.
//   - repeated: the field is []T tagged builder:"each=<name>"; the builder
//     stores []T initialised to an empty slice and <Name>(item T) appends.
//   - required: anything else; the builder stores *T and Build fails with
//     buildererr.MissingFieldError when it was never set.
package model
