// Package connector reads and writes whole tables in the file formats
// titleclean supports.
//
// # Architecture Overview
//
// The connector package is organized into several sub-packages:
//
//   - core: Defines the Source and Destination interfaces and the Config
//     every connector is built from. Config.Resolve detects the format and
//     stream compression from the file name unless they are set explicitly.
//
//   - compressed: Opens and creates files through the compression package
//     so that csv and jsonl connectors handle .gz, .zst, .sz, .s2 and .lz4
//     transparently.
//
//   - sources: csv/tsv, jsonl and xlsx sources. Loading follows pandas
//     read_csv conventions: NA tokens become missing, blank header cells
//     are named "Unnamed: <i>" and repeated names get ".1", ".2" suffixes.
//
//   - destinations: csv/tsv, jsonl, xlsx and avro destinations. Missing
//     and null-date markers are written as empty cells or nulls.
//
//   - registry: Maps each format to its factory. Connectors register
//     themselves in init, so importing the sources and destinations
//     packages is enough to make every format available.
//
// # Example Usage
//
//	src, err := registry.CreateSource(core.Config{Path: "netflix_titles.csv"}, logger)
//	if err != nil {
//		return err
//	}
//	t, err := src.Load(ctx)
//
// Avro is write-only. Its container codecs (deflate, snappy, zstandard)
// replace stream compression, so lz4 and s2 are rejected for .avro paths.
package connector
