package reconcile

// ManifestObjectName is where the sync pipeline writes the Drive manifest.
const ManifestObjectName = "manifest/drive_manifest.json"

// SchemaProfile defines generation-specific records-table mappings.
type SchemaProfile struct {
	// TableName is the name of the records table.
	TableName string

	// Columns maps logical field names to actual database column names.
	Columns map[string]string
}

// Column name constants for logical field references.
const (
	ColDriveID  = "drive_id"
	ColName     = "name"
	ColMimeType = "mime_type"
	ColPath     = "path"
	ColSize     = "size"
	ColDeleted  = "deleted"
)

// ModernProfile returns the profile for the current sync schema.
func ModernProfile() SchemaProfile {
	return SchemaProfile{
		TableName: "google_sources",
		Columns: map[string]string{
			ColDriveID:  "drive_id",
			ColName:     "name",
			ColMimeType: "mime_type",
			ColPath:     "path",
			ColSize:     "size",
			ColDeleted:  "is_deleted",
		},
	}
}

// LegacyProfile returns the profile for the pre-migration sync schema.
func LegacyProfile() SchemaProfile {
	return SchemaProfile{
		TableName: "sources_google",
		Columns: map[string]string{
			ColDriveID:  "drive_id",
			ColName:     "name",
			ColMimeType: "mime_type",
			ColPath:     "path",
			ColSize:     "size_bytes",
			ColDeleted:  "deleted",
		},
	}
}

// GetProfileByName returns the schema profile for the given name.
// Unknown names fall back to the modern profile.
func GetProfileByName(name string) SchemaProfile {
	switch name {
	case "legacy":
		return LegacyProfile()
	default:
		return ModernProfile()
	}
}
