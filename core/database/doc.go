// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure Postgres connections based on the application's configuration. The
// records the service reads are landed by an external Drive sync pipeline into
// a hosted Postgres (Supabase) project.
//
// # Connect
//
// The generic Connect function establishes a connection to the database. It is
// agnostic to the specific sync schema generation (modern vs legacy) regarding
// connection establishment, but the Schema Inspector relies on knowing the
// expected schema.
//
// # Schema Inspection
//
// The package includes tools to inspect the database schema, which is crucial
// for the doctor/integrity checks. It allows retrieving table columns via
// information_schema and verifying that the profile-expected columns exist.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "google_sources")
package database
