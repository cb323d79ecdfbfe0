// Package flags contains helpers for building consistent command flag usage strings.
package flags
