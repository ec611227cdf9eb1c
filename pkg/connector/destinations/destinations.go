// Package destinations imports every table destination so that each
// registers itself with the connector registry.
package destinations

import (
	// Import all destination connectors to trigger init() registration
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations/avro"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations/csv"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations/json"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/destinations/xlsx"
)
