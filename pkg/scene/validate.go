package scene

import (
	"fmt"
	"math"
	"sort"

	"github.com/chazu/starconvex/pkg/shape"
)

// MaxElongation is the longest-to-shortest ray ratio above which a
// detection is reported as suspicious.
const MaxElongation = 50

// ValidationSeverity indicates whether a finding blocks rasterization or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks rasterization
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ID       ID                 // which detection has the problem (zero if scene-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] detection %s: %s", e.Severity, e.ID.Short(), e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks every detection of sc. It never mutates the scene.
func Validate(sc *Scene) ValidationResult {
	var result ValidationResult
	for _, e := range append(validateDetections(sc), validateScene(sc)...) {
		if e.Severity == SeverityError {
			result.Errors = append(result.Errors, e)
		} else {
			result.Warnings = append(result.Warnings, e)
		}
	}
	return result
}

// validateDetections checks each detection on its own.
func validateDetections(sc *Scene) []ValidationError {
	var errs []ValidationError
	for _, d := range sc.List() {
		fail := func(sev ValidationSeverity, format string, args ...any) {
			errs = append(errs, ValidationError{ID: d.ID, Message: fmt.Sprintf(format, args...), Severity: sev})
		}

		if !finite(d.Center.X, d.Center.Y, d.Center.Z) {
			fail(SeverityError, "%q has a non-finite center", d.Name)
		}
		if len(d.Distances) < shape.MinRays {
			fail(SeverityError, "%q has %d rays, need at least %d", d.Name, len(d.Distances), shape.MinRays)
		}
		lo, hi := math.Inf(1), 0.0
		for i, r := range d.Distances {
			if !(r > 0) || math.IsInf(r, 0) {
				fail(SeverityError, "%q ray %d has distance %v", d.Name, i, r)
				continue
			}
			lo, hi = math.Min(lo, r), math.Max(hi, r)
		}
		if d.Label < 1 {
			fail(SeverityError, "%q has label %d, labels start at 1", d.Name, d.Label)
		}
		if hi > 0 && hi/lo > MaxElongation {
			fail(SeverityWarning, "%q is elongated: longest ray is %.0fx the shortest", d.Name, hi/lo)
		}
	}
	return errs
}

// validateScene checks consistency across detections.
func validateScene(sc *Scene) []ValidationError {
	var errs []ValidationError

	rays := make(map[int]int)
	labels := make(map[int][]string)
	for _, d := range sc.List() {
		rays[len(d.Distances)]++
		if d.Label >= 1 {
			labels[d.Label] = append(labels[d.Label], d.Name)
		}
	}

	if len(rays) > 1 {
		counts := make([]int, 0, len(rays))
		for n := range rays {
			counts = append(counts, n)
		}
		sort.Ints(counts)
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("detections mix ray counts %v", counts),
			Severity: SeverityWarning,
		})
	}

	for _, d := range sc.List() {
		names := labels[d.Label]
		if len(names) > 1 && names[0] == d.Name {
			errs = append(errs, ValidationError{
				ID:       d.ID,
				Message:  fmt.Sprintf("label %d is shared by %v", d.Label, names),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
