// Package generator turns job-posting web pages into normalized records and
// batches many pages into a multi-sheet spreadsheet report. Pages are fetched
// over HTTP, stripped of navigational noise, and handed to an external
// language-understanding service that coerces the text into a fixed schema;
// failures degrade per item instead of aborting a batch.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, excelize/).
package generator
