// Package utils provides common utility functions for the doc-browser
// application. It includes lenient type conversion helpers for the loosely
// typed metadata blobs the sync pipeline produces, where the same logical
// field arrives as a number, a string, or a JSON-decoded float depending
// on sync vintage.
package utils
