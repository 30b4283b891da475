// Package file provides the TOML-backed project configuration store.
package file
