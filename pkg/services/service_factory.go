package services

import (
	"sync"

	"github.com/deploymenttheory/go-blockidx/internal/config"
)

// ServiceFactory builds services from the loaded configuration
type ServiceFactory struct {
	options      ServiceOptions
	indexService IndexService
	mu           sync.Mutex
	initialized  bool
}

// NewServiceFactory creates a factory with explicit options
func NewServiceFactory(options ServiceOptions) *ServiceFactory {
	return &ServiceFactory{options: options}
}

// NewServiceFactoryFromConfig maps configuration keys onto service options
func NewServiceFactoryFromConfig(cfg *config.Config) *ServiceFactory {
	if cfg == nil {
		cfg = config.Default()
	}
	return NewServiceFactory(ServiceOptions{
		SyncWrites: cfg.SyncWrites,
	})
}

// Initialize creates the services once
func (sf *ServiceFactory) Initialize() {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.initializeLocked()
}

func (sf *ServiceFactory) initializeLocked() {
	if sf.initialized {
		return
	}
	sf.indexService = NewIndexService(sf.options)
	sf.initialized = true
}

// IndexService returns the index service, initializing the factory on first use
func (sf *ServiceFactory) IndexService() IndexService {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.initializeLocked()
	return sf.indexService
}

// Options returns the options services are built with
func (sf *ServiceFactory) Options() ServiceOptions {
	return sf.options
}

// IsInitialized returns whether the factory has been initialized
func (sf *ServiceFactory) IsInitialized() bool {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	return sf.initialized
}

// Shutdown drops the services; the next access rebuilds them
func (sf *ServiceFactory) Shutdown() {
	sf.mu.Lock()
	defer sf.mu.Unlock()
	sf.indexService = nil
	sf.initialized = false
}
