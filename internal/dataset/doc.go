// Package dataset reads, validates and writes instruction-tuning
// datasets in JSON Lines form.
//
// The schema (instruct or conversation) is a dataset-wide configuration
// choice: a record that does not match it fails the load with a
// SchemaMismatchError instead of being skipped. The package also
// carries the surrounding dataset plumbing: parallel example mapping,
// multi-file merging, HC3 conversion and the prepared-run manifest.
package dataset
