// Package utils provides small shared helpers that don't fit into
// domain-specific packages, such as slug generation for venue names.
package utils
