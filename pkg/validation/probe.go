package validation

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/logger"
)

var probeLog = logger.New("validation:probe")

// NotFoundError reports a reference the registry definitively does not
// serve. Other probe errors (timeouts, docker unavailable, auth) mean
// the probe could not answer, not that the image is absent.
type NotFoundError struct {
	Reference string
	Detail    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("image %q did not resolve: %s", e.Reference, e.Detail)
}

// IsImageNotFound reports whether err is a definitive registry miss.
func IsImageNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Registry phrasings for a missing manifest vary by implementation.
var notFoundMarkers = []string{
	"manifest unknown",
	"no such manifest",
	"name unknown",
	"not found",
}

func manifestNotFound(output string) bool {
	lowered := strings.ToLower(output)
	for _, marker := range notFoundMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// ImageProbe checks that an image reference actually resolves in its
// registry by shelling out to docker. It is opt-in: grammar validation
// never touches the network, and batch runs share a limiter so a large
// action set does not hammer the registry.
type ImageProbe struct {
	timeout time.Duration
	limiter *rate.Limiter
	runner  func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewImageProbe creates a probe with the given per-lookup timeout;
// zero or negative means the default.
func NewImageProbe(timeout time.Duration) *ImageProbe {
	if timeout <= 0 {
		timeout = constants.DefaultProbeTimeout
	}
	return &ImageProbe{
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
		runner: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Probe resolves an image reference ("name" or "name:tag") against its
// registry. A non-nil error means the reference did not resolve or the
// probe could not run; neither is a validation error, and callers
// surface probe failures separately from grammar findings.
func (p *ImageProbe) Probe(ctx context.Context, reference string) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	probeLog.Printf("Probing image %q", reference)
	out, err := p.runner(ctx, "docker", "manifest", "inspect", reference)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("image probe for %q timed out after %s", reference, p.timeout)
		}
		if manifestNotFound(string(out)) {
			return &NotFoundError{Reference: reference, Detail: logger.ExtractErrorMessage(string(out))}
		}
		return fmt.Errorf("image probe for %q could not complete: %s", reference, logger.ExtractErrorMessage(string(out)))
	}
	return nil
}
