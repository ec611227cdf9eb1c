// Package sources imports every table source so that each registers
// itself with the connector registry.
package sources

import (
	// Import all source connectors to trigger init() registration
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources/csv"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources/json"
	_ "github.com/ajitpratap0/titleclean/pkg/connector/sources/xlsx"
)
