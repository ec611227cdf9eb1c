package config_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/titleclean/pkg/config"
)

// ExampleDefault shows the configuration a run uses when nothing is
// configured.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Input: %s\n", cfg.Input.Path)
	fmt.Printf("Output: %s\n", cfg.Output.Path)
	fmt.Printf("Summary: %s\n", cfg.Summary.Path)
	fmt.Printf("Title: %s\n", cfg.Summary.Title)

	// Output:
	// Input: netflix_titles.csv
	// Output: netflix_cleaned.csv
	// Summary: cleaning_summary.txt
	// Title: Netflix dataset cleaning summary
}

// ExampleConfig_Validate shows how to validate a configuration before
// using it.
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Output.Path = "cleaned.tsv.gz"
	cfg.Output.Level = "best"

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	fmt.Println("Configuration is valid!")

	cfg.Output.Path = "cleaned.parquet"
	fmt.Println(cfg.Validate())

	// Output:
	// Configuration is valid!
	// validation: invalid configuration: output.path "cleaned.parquet" is not a supported table file
}

// ExampleLoad demonstrates layering a YAML file over the defaults.
func ExampleLoad() {
	dir, err := os.MkdirTemp("", "titleclean")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "titleclean.yaml")
	yaml := "output:\n  path: cleaned.jsonl\nsummary:\n  json_path: summary.json\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	if err := config.Load(path, cfg); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Input: %s\n", cfg.Input.Path)
	fmt.Printf("Output: %s\n", cfg.Output.Path)
	fmt.Printf("Summary: %s, %s\n", cfg.Summary.Path, cfg.Summary.JSONPath)

	// Output:
	// Input: netflix_titles.csv
	// Output: cleaned.jsonl
	// Summary: cleaning_summary.txt, summary.json
}
