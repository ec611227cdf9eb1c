package registry

import (
	"sort"
	"sync"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/ajitpratap0/titleclean/pkg/logger"
	"go.uber.org/zap"
)

// Registry manages connector registration and instantiation by format
type Registry struct {
	sources      map[core.Format]SourceFactory
	destinations map[core.Format]DestinationFactory
	mu           sync.RWMutex
	logger       *zap.Logger
}

// SourceFactory creates a source for a resolved configuration.
type SourceFactory func(config core.Config, logger *zap.Logger) (core.Source, error)

// DestinationFactory creates a destination for a resolved configuration.
type DestinationFactory func(config core.Config, logger *zap.Logger) (core.Destination, error)

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new connector registry
func NewRegistry() *Registry {
	return &Registry{
		sources:      make(map[core.Format]SourceFactory),
		destinations: make(map[core.Format]DestinationFactory),
		logger:       logger.Get().With(zap.String("component", "connector_registry")),
	}
}

// RegisterSource registers a source connector factory
func (r *Registry) RegisterSource(format core.Format, factory SourceFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[format]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "source connector %s already registered", format)
	}

	r.sources[format] = factory
	r.logger.Debug("source connector registered", zap.String("format", string(format)))
	return nil
}

// RegisterDestination registers a destination connector factory
func (r *Registry) RegisterDestination(format core.Format, factory DestinationFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.destinations[format]; exists {
		return errors.Newf(errors.ErrorTypeConfig, "destination connector %s already registered", format)
	}

	r.destinations[format] = factory
	r.logger.Debug("destination connector registered", zap.String("format", string(format)))
	return nil
}

// CreateSource resolves the configuration's format and creates the
// matching source connector.
func (r *Registry) CreateSource(config core.Config, log *zap.Logger) (core.Source, error) {
	format, _, err := config.Resolve()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.sources[format]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeConfig, "no source connector for format %s", format)
	}

	source, err := factory(config, log)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create source connector "+string(format))
	}
	return source, nil
}

// CreateDestination resolves the configuration's format and creates the
// matching destination connector.
func (r *Registry) CreateDestination(config core.Config, log *zap.Logger) (core.Destination, error) {
	format, _, err := config.Resolve()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.destinations[format]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrorTypeConfig, "no destination connector for format %s", format)
	}

	destination, err := factory(config, log)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create destination connector "+string(format))
	}
	return destination, nil
}

// ListSources returns the registered source formats, sorted
func (r *Registry) ListSources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.sources))
	for format := range r.sources {
		sources = append(sources, string(format))
	}
	sort.Strings(sources)
	return sources
}

// ListDestinations returns the registered destination formats, sorted
func (r *Registry) ListDestinations() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	destinations := make([]string, 0, len(r.destinations))
	for format := range r.destinations {
		destinations = append(destinations, string(format))
	}
	sort.Strings(destinations)
	return destinations
}

// HasSource checks if a source connector is registered
func (r *Registry) HasSource(format core.Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.sources[format]
	return exists
}

// HasDestination checks if a destination connector is registered
func (r *Registry) HasDestination(format core.Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.destinations[format]
	return exists
}

// Global registry functions

// RegisterSource registers a source connector in the global registry
func RegisterSource(format core.Format, factory SourceFactory) error {
	return globalRegistry.RegisterSource(format, factory)
}

// RegisterDestination registers a destination connector in the global registry
func RegisterDestination(format core.Format, factory DestinationFactory) error {
	return globalRegistry.RegisterDestination(format, factory)
}

// CreateSource creates a source connector from the global registry
func CreateSource(config core.Config, log *zap.Logger) (core.Source, error) {
	return globalRegistry.CreateSource(config, log)
}

// CreateDestination creates a destination connector from the global registry
func CreateDestination(config core.Config, log *zap.Logger) (core.Destination, error) {
	return globalRegistry.CreateDestination(config, log)
}

// ListSources returns registered sources from the global registry
func ListSources() []string {
	return globalRegistry.ListSources()
}

// ListDestinations returns registered destinations from the global registry
func ListDestinations() []string {
	return globalRegistry.ListDestinations()
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
