// Package providers implements one driven.Provider per supported ecosystem.
//
// Each toolchain provider is a capability table: a row per command kind
// with the arguments it delegates and an optional narrowing predicate.
// Kinds without a row are unsupported. Predicates only inspect the project
// directory, PATH and, for sub-tools, a quiet probe run; they never mutate
// anything.
//
// The registry order is fixed: cargo, npm, poetry, django, docker.
package providers
