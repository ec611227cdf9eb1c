// Package titleclean cleans the Netflix titles export into an analysis-ready
// table and documents every change it makes.
//
// A run loads one table, applies a fixed sequence of cleaning stages and
// writes two artifacts: the cleaned table and a plain-text summary listing
// one note per action, in the order the actions happened.
//
// # Cleaning Stages
//
// The stages always run in this order. A stage whose input columns are
// absent is skipped and the summary records why.
//
//  1. prune: drop the pandas index column "Unnamed: 0"
//  2. dedup: remove rows identical in every column, keeping the first
//  3. text: trim text cells and turn empty, "nan" and "None" into missing
//  4. fill: placeholders for director, cast, country and rating; median
//     for release_year
//  5. duration: split "90 min" / "2 Seasons" into duration_value and
//     duration_unit
//  6. dates: parse date_added into a date column and a dd-mm-yyyy column
//  7. rename: convert every column name to snake_case
//
// # Quick Start
//
//	titleclean run                                  # netflix_titles.csv -> netflix_cleaned.csv
//	titleclean run -i titles.tsv.gz -o cleaned.avro # any supported formats
//	titleclean profile -i netflix_titles.csv        # column types and missing counts
//	titleclean config init                          # write titleclean.yaml
//
// # Key Packages
//
//	pkg/table        - Typed in-memory table with missing and null-date markers
//	pkg/cleaning     - The cleaning stages
//	pkg/audit        - Notes, skip entries and the summary report
//	pkg/connector    - csv, tsv, jsonl, xlsx and avro sources and destinations
//	pkg/compression  - gzip, zstd, snappy, s2 and lz4 stream codecs
//	pkg/config       - YAML configuration with validation
//	pkg/errors       - Structured error handling
//	pkg/logger       - Structured logging
//	pkg/metrics      - Prometheus metrics for a run, exported as a textfile
//	pkg/observability - Trace spans and resource usage
//	internal/pipeline - Stage runner and end-to-end orchestration
//
// # Configuration
//
// Values come from built-in defaults, then an optional YAML file given
// with --config, then command line flags. No environment variables are
// read.
//
//	input:
//	  path: netflix_titles.csv
//	output:
//	  path: netflix_cleaned.csv
//	summary:
//	  path: cleaning_summary.txt
//	  title: Netflix dataset cleaning summary
//	logging:
//	  level: info
//	  encoding: console
//
// A missing input file is reported with its absolute path and the run
// exits with status 1 before any artifact is written.
package titleclean
