// Package archive stores solve records.
//
// A Manager tracks solve runs in memory behind a read-write mutex and,
// when configured with a RecordPersistence, mirrors finished records to
// disk as JSON files so completed solves survive a server restart. Records
// are keyed by short random IDs. Expired records can be pruned with
// CleanupExpiredRecords.
package archive
