// Package internal contains the shared infrastructure for pagenav: logger
// setup and level handling. Types and functions in this package are not part
// of the public API.
package internal
