package connector_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/connector/registry"

	// Import connectors to register them
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources"
)

// Example loads a CSV file and writes it back as compressed JSON Lines.
func Example() {
	dir, err := os.MkdirTemp("", "connector-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "titles.csv")
	data := "title,release_year,rating\nSankofa,1993,TV-MA\nGanglands,2021,NA\n"
	if err := os.WriteFile(input, []byte(data), 0o644); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	src, err := registry.CreateSource(core.Config{Path: input}, nil)
	if err != nil {
		log.Fatal(err)
	}
	t, err := src.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(t.Shape())
	fmt.Println(t.Get(1, "rating").IsMissing())

	dst, err := registry.CreateDestination(core.Config{Path: filepath.Join(dir, "titles.jsonl.gz")}, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := dst.Write(ctx, t); err != nil {
		log.Fatal(err)
	}
	fmt.Println(dst.Format())
	// Output:
	// 2 rows, 3 cols
	// true
	// jsonl
}

// Example_formats lists the formats each side of a run accepts.
func Example_formats() {
	fmt.Println(registry.ListSources())
	fmt.Println(registry.ListDestinations())
	// Output:
	// [csv jsonl tsv xlsx]
	// [avro csv jsonl tsv xlsx]
}
