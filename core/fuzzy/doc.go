// Package fuzzy provides name normalization and similarity scoring for
// artist and event names.
//
// Scraped listings spell the same act a dozen ways ("The Mountain Goats!",
// "mountain goats", "MOUNTAIN GOATS"). Normalize collapses those variants
// into a comparable key, and Similarity turns the Levenshtein distance
// between two keys into a 0..1 score used by the matcher.
package fuzzy
