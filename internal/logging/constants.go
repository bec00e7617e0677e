package logging

// Standardized field names for structured logging. Keeping the keys in one
// place makes the ingestion logs consistent and greppable.
//
// Credentials and raw statement content must never be logged; diagnostic
// output is limited to fingerprints, counts and byte lengths.
const (
	FieldContentType = "content_type"
	FieldLineCount   = "line_count"
	FieldCount       = "count"
	FieldModel       = "model"
	FieldProvider    = "provider"
	FieldStatus      = "status"
	FieldByteLen     = "byte_len"
	FieldFingerprint = "fingerprint"
	FieldLineIndex   = "line_index"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
)
