// Package tasks runs long catalog operations outside the gallery with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] fetches a range of pages from one catalog group and
// writes each page to its own file with the formatter package:
//
//   - Page requests are issued one at a time through a token bucket
//     ([golang.org/x/time/rate]) so the API quota is respected.
//   - Fetched pages are handed to a small worker pool that renders and writes them.
//   - A failed page is recorded in the result and does not stop the export.
//   - An export_manifest.json summarizing every page is written last.
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on an optional channel.
// Sends use select with default, so a slow or absent reader never blocks the export.
package tasks
