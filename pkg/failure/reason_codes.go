package failure

// Reason codes are stable identifiers printed by the CLI and recorded in
// gate reports. They MUST NOT change between releases.
const (
	// --- Missing input ---
	ReasonSchemaMissing         = "SCHEMA_MISSING"
	ReasonTypesNotGenerated     = "TYPES_NOT_GENERATED"
	ReasonManifestMissing       = "MANIFEST_MISSING"
	ReasonChangelogMissing      = "CHANGELOG_MISSING"
	ReasonCoverageReportMissing = "COVERAGE_REPORT_MISSING"

	// --- Format ---
	ReasonHashMarkerMissing       = "HASH_MARKER_MISSING"
	ReasonHashMarkerDuplicate     = "HASH_MARKER_DUPLICATE"
	ReasonChangelogVersionMissing = "CHANGELOG_VERSION_MISSING"
	ReasonManifestVersionMissing  = "MANIFEST_VERSION_MISSING"
	ReasonSchemaInvalid           = "SCHEMA_INVALID"
	ReasonCoverageReportInvalid   = "COVERAGE_REPORT_INVALID"

	// --- Consistency ---
	ReasonSchemaDrift       = "SCHEMA_DRIFT"
	ReasonVersionMismatch   = "VERSION_MISMATCH"
	ReasonCoverageThreshold = "COVERAGE_BELOW_THRESHOLD"

	// --- Malformed value ---
	ReasonVersionInvalid = "VERSION_INVALID"

	// --- Upstream tool ---
	ReasonGeneratorFailed = "GENERATOR_FAILED"
	ReasonFormatFailed    = "FORMAT_FAILED"

	// --- Catch-all for unclassified I/O errors ---
	ReasonInternal = "INTERNAL"
)

// AllReasonCodes returns the full set of reason codes.
func AllReasonCodes() []string {
	return []string{
		ReasonSchemaMissing,
		ReasonTypesNotGenerated,
		ReasonManifestMissing,
		ReasonChangelogMissing,
		ReasonCoverageReportMissing,
		ReasonHashMarkerMissing,
		ReasonHashMarkerDuplicate,
		ReasonChangelogVersionMissing,
		ReasonManifestVersionMissing,
		ReasonSchemaInvalid,
		ReasonCoverageReportInvalid,
		ReasonSchemaDrift,
		ReasonVersionMismatch,
		ReasonCoverageThreshold,
		ReasonVersionInvalid,
		ReasonGeneratorFailed,
		ReasonFormatFailed,
		ReasonInternal,
	}
}
