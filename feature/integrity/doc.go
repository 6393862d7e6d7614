// Package integrity provides infrastructure health checks.
//
// Unlike the 'documents' package which focuses on record reconciliation and
// browsing, this package validates the structural requirements of the
// document archive.
//
// # Checks Provided
//
//   - Structure: Checks if the required prefixes exist in the storage bucket (content/, manifest/).
//   - Manifest: Verifies that the Drive manifest JSON is well-formed, with no duplicate or incomplete entries.
//   - Schema: Validates that the connected database schema matches the expected records models (per schema profile).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/manifest : Runs manifest check.
//   - GET /integrity/schema : Runs database schema check.
package integrity
