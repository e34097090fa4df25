// Package store is the persistence boundary of the reconciliation engine.
//
// The Store interface abstracts every read and write the pipeline performs;
// GormStore implements it on MySQL (production) and sqlite (tests). Unique
// constraint violations surface as *DuplicateKeyError, a permanent error the
// resilient executor never retries.
package store
