package output

// SchemaVersion is the current version of the report output schema.
// Increment this when making breaking changes to the ndjson or yaml shape.
const SchemaVersion = 1
