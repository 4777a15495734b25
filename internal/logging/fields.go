package logging

// Field names for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig  = "config"
	FieldDryRun  = "dry_run"
	FieldBackups = "backups"
	FieldJobs    = "jobs"

	// Edit fields.
	FieldLine        = "line"
	FieldLines       = "lines"
	FieldTag         = "tag"
	FieldValue       = "value"
	FieldPrior       = "prior"
	FieldDelta       = "delta"
	FieldBlock       = "block"
	FieldVisible     = "visible"
	FieldRaw         = "raw"
	FieldCommit      = "commit"
	FieldDescription = "description"

	// Statistics fields.
	FieldFilesProcessed = "files_processed"
	FieldFilesModified  = "files_modified"
	FieldLinesEdited    = "lines_edited"

	// Version fields.
	FieldVersion = "version"
	FieldBuilt   = "built"
)
