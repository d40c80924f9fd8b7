package validation

import (
	"fmt"
	"sync"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/rules"
)

var registryLog = logger.New("validation:registry")

// Factory builds the custom validator for one action. The loader is
// the registry's, so custom validators read rule documents from the
// same directory as convention-based ones.
type Factory func(actionType constants.ActionType, loader *rules.Loader) (Validator, error)

// Registry resolves the validator for an action. A registered custom
// factory owns its action outright; convention matching does not also
// run. Every other action gets a ConventionBasedValidator built from
// its rule document. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	loader *rules.Loader
	custom map[constants.ActionType]Factory
	cache  map[constants.ActionType]Validator
}

// NewRegistry creates a registry reading rule documents through
// loader; nil means the default rules directory.
func NewRegistry(loader *rules.Loader) *Registry {
	if loader == nil {
		loader = rules.NewLoader("")
	}
	return &Registry{
		loader: loader,
		custom: make(map[constants.ActionType]Factory),
		cache:  make(map[constants.ActionType]Validator),
	}
}

// Loader returns the rule loader the registry resolves documents with.
func (r *Registry) Loader() *rules.Loader {
	return r.loader
}

// RegisterCustom installs factory as the sole validator source for an
// action. Registering the same action twice is a configuration error.
func (r *Registry) RegisterCustom(actionType constants.ActionType, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.custom[actionType]; exists {
		return &rules.ConfigError{
			Reason: fmt.Sprintf("custom validator for action %q registered twice", actionType),
		}
	}
	r.custom[actionType] = factory
	registryLog.Printf("Registered custom validator for %q", actionType)
	return nil
}

// HasCustom reports whether a custom validator owns actionType.
func (r *Registry) HasCustom(actionType constants.ActionType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.custom[actionType]
	return ok
}

// Get returns the cached validator for actionType, constructing it on
// first use. ValidateInputs resets the shared accumulator on entry, so
// sequential reuse is safe; concurrent validations use GetFresh for an
// instance of their own.
func (r *Registry) Get(actionType constants.ActionType) (Validator, error) {
	r.mu.RLock()
	if v, ok := r.cache[actionType]; ok {
		r.mu.RUnlock()
		return v, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.cache[actionType]; ok {
		return v, nil
	}
	v, err := r.construct(actionType)
	if err != nil {
		return nil, err
	}
	r.cache[actionType] = v
	return v, nil
}

// GetFresh constructs a new validator for actionType without touching
// the cache.
func (r *Registry) GetFresh(actionType constants.ActionType) (Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.construct(actionType)
}

// construct needs at least a read lock held by the caller.
func (r *Registry) construct(actionType constants.ActionType) (Validator, error) {
	if factory, ok := r.custom[actionType]; ok {
		v, err := factory(actionType, r.loader)
		if err != nil {
			// A broken custom validator never falls back to
			// convention matching; the action's own setup is wrong
			// and validating anyway would mask that.
			if rules.IsConfigError(err) {
				return nil, err
			}
			return nil, &rules.ConfigError{
				Reason: fmt.Sprintf("custom validator for action %q failed to construct: %v", actionType, err),
				Err:    err,
			}
		}
		registryLog.Printf("Using custom validator for %q", actionType)
		return v, nil
	}

	rule, err := r.loader.Load(actionType)
	if err != nil {
		return nil, err
	}
	return NewConventionBasedValidator(actionType, rule)
}
