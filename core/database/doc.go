// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that
// configures the connection from the application's configuration. MySQL is
// the production driver; sqlite backs local development and in-memory tests.
//
// Error translation is enabled on both dialects so that unique constraint
// violations surface as gorm.ErrDuplicatedKey regardless of driver. The
// store layer depends on that to classify duplicate inserts as benign.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
