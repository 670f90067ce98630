package domain

// ScanProgress is delivered after each committed batch of a scan.
type ScanProgress struct {
	RepositoryID int64
	// Scanned is the number of extracted records processed so far.
	Scanned int
	// Total is the number of records the extraction produced.
	Total int
}

// ProgressFunc receives scan progress. It is invoked synchronously from the
// scan loop, at most once per batch.
type ProgressFunc func(ScanProgress)

// ScanResult is the outcome of one scan attempt.
type ScanResult struct {
	// Added counts rows actually inserted; records already persisted are
	// skipped by the store and not counted.
	Added int
	// Scanned counts extracted records that reached the store, including
	// conflict-skipped ones.
	Scanned int
	// Total is the number of records the extraction produced.
	Total int
	// Dropped counts malformed log records discarded during parsing.
	Dropped int
	// Cancelled is set when the scan was superseded before finishing.
	Cancelled bool
}
