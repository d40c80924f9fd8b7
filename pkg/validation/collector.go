package validation

import "errors"

// Collector accumulates validation errors and warnings for one run.
// BaseValidator embeds it; it is also used directly by batch runs that
// merge results from several validators.
type Collector struct {
	errors   []*ValidationError
	warnings []*ValidationError
}

// AddError records a validation error.
func (c *Collector) AddError(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// AddWarning records a non-fatal finding.
func (c *Collector) AddWarning(warning *ValidationError) {
	if warning != nil {
		c.warnings = append(c.warnings, warning)
	}
}

// Errors returns the accumulated errors in the order they were added.
func (c *Collector) Errors() []*ValidationError {
	return c.errors
}

// Warnings returns the accumulated warnings in the order they were added.
func (c *Collector) Warnings() []*ValidationError {
	return c.warnings
}

// HasErrors reports whether any error was recorded.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// ClearErrors resets the collector so the owner can be reused.
func (c *Collector) ClearErrors() {
	c.errors = nil
	c.warnings = nil
}

// Err returns all accumulated errors joined into one error, or nil when
// the run passed.
func (c *Collector) Err() error {
	if len(c.errors) == 0 {
		return nil
	}
	joined := make([]error, len(c.errors))
	for i, err := range c.errors {
		joined[i] = err
	}
	return errors.Join(joined...)
}
