package engine

import (
	"fmt"
	"math"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"

	"github.com/chazu/starconvex/pkg/lattice"
	"github.com/chazu/starconvex/pkg/scene"
)

// ---------------------------------------------------------------------------
// Script values passed between builtins
// ---------------------------------------------------------------------------

// sexpVec3 carries a point or per-axis triple.
type sexpVec3 struct {
	vec v3.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// sexpRays carries one distance per lattice direction.
type sexpRays struct {
	distances []float64
}

func (r *sexpRays) SexpString(ps *zygo.PrintState) string {
	if len(r.distances) == 0 {
		return "(rays)"
	}
	return fmt.Sprintf("(rays n=%d min=%g max=%g)", len(r.distances), lo.Min(r.distances), lo.Max(r.distances))
}
func (r *sexpRays) Type() *zygo.RegisteredType { return nil }

// sexpDetectionRef refers to a detection already added to the scene.
type sexpDetectionRef struct {
	id   scene.ID
	name string
}

func (d *sexpDetectionRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(detection %q %s)", d.name, d.id.Short())
}
func (d *sexpDetectionRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		switch {
		case !ok:
			result.positional = append(result.positional, args[i])
		case i+1 < len(args):
			result.kw[name] = args[i+1]
			i++
		default:
			// Trailing keyword with no value.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer, accepting floats without a fractional part.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a vector from a sexpVec3.
func toVec3(s zygo.Sexp) (v3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return v3.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toDistances accepts a rays value or a list or array of numbers.
func toDistances(s zygo.Sexp) ([]float64, error) {
	if r, ok := s.(*sexpRays); ok {
		return append([]float64(nil), r.distances...), nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected rays or a list of numbers: %w", err)
	}
	return numbers(items)
}

// numbers converts every item to a float64.
func numbers(items []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat64(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// rayCount reads the optional :rays keyword, defaulting to def.
func rayCount(pa kwArgs, def int) (int, error) {
	v, ok := pa.kw["rays"]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, err
	}
	if n < 2 {
		return 0, fmt.Errorf("need at least 2 rays, got %d", n)
	}
	return n, nil
}

// positive reads a required positive number.
func positive(pa kwArgs, key string) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return 0, fmt.Errorf("missing :%s", key)
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, err
	}
	if !(f > 0) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be positive and finite, got %g", f)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the detection builtins into a zygomys
// environment. Builtins populate sc as the script runs; rays is the
// default ray count of generated distances.
//
// Source must be preprocessed with preprocessSource() so that :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene, rays int) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		xyz, err := numbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpVec3{vec: v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (rays 4.5 5 5.2 ...) or (rays (list ...))
	// -----------------------------------------------------------------------
	env.AddFunction("rays", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		d, err := numbers(args)
		if len(args) == 1 && err != nil {
			d, err = toDistances(args[0])
		}
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rays: %w", err)
		}
		return &sexpRays{distances: d}, nil
	})

	// -----------------------------------------------------------------------
	// (uniform :radius 5 :rays 96)
	// -----------------------------------------------------------------------
	env.AddFunction("uniform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		r, err := positive(pa, "radius")
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("uniform: radius: %w", err)
		}
		n, err := rayCount(pa, rays)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("uniform: rays: %w", err)
		}
		return &sexpRays{distances: lo.Times(n, func(int) float64 { return r })}, nil
	})

	// -----------------------------------------------------------------------
	// (ellipsoid :radii (vec3 8 5 3) :rays 96)
	// -----------------------------------------------------------------------
	env.AddFunction("ellipsoid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		v, ok := pa.kw["radii"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("ellipsoid: missing :radii")
		}
		radii, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipsoid: radii: %w", err)
		}
		if !(radii.X > 0 && radii.Y > 0 && radii.Z > 0) {
			return zygo.SexpNull, fmt.Errorf("ellipsoid: radii must be positive, got %v", radii)
		}
		n, err := rayCount(pa, rays)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipsoid: rays: %w", err)
		}
		dirs, err := lattice.Get(n)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ellipsoid: %w", err)
		}
		return &sexpRays{distances: lo.Map(dirs, func(d v3.Vec, _ int) float64 {
			return ellipsoidRadius(d, radii)
		})}, nil
	})

	// -----------------------------------------------------------------------
	// (scale-rays r 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("scale_rays", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale-rays requires rays and a factor, got %d arguments", len(args))
		}
		d, err := toDistances(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale-rays: %w", err)
		}
		f, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale-rays: factor: %w", err)
		}
		return &sexpRays{distances: lo.Map(d, func(x float64, _ int) float64 { return x * f })}, nil
	})

	// -----------------------------------------------------------------------
	// (center-of "nucleus-1")
	// -----------------------------------------------------------------------
	env.AddFunction("center_of", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("center-of requires a detection name")
		}
		var d *scene.Detection
		switch v := args[0].(type) {
		case *sexpDetectionRef:
			d = sc.Get(v.id)
		default:
			n, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("center-of: %w", err)
			}
			d = sc.Lookup(n)
		}
		if d == nil {
			return zygo.SexpNull, fmt.Errorf("center-of: no detection %s", args[0].SexpString(nil))
		}
		return &sexpVec3{vec: d.Center}, nil
	})

	// -----------------------------------------------------------------------
	// (detection "nucleus-1" :center (vec3 10 20 5) :distances r :label 3)
	// -----------------------------------------------------------------------
	env.AddFunction("detection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		d := &scene.Detection{Label: sc.Len() + 1}

		if len(pa.positional) > 0 {
			n, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("detection: name: %w", err)
			}
			d.Name = n
		} else {
			d.Name = unusedName(sc)
		}
		v, ok := pa.kw["center"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("detection %q: missing :center", d.Name)
		}
		c, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("detection %q: center: %w", d.Name, err)
		}
		d.Center = c

		v, ok = pa.kw["distances"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("detection %q: missing :distances", d.Name)
		}
		if d.Distances, err = toDistances(v); err != nil {
			return zygo.SexpNull, fmt.Errorf("detection %q: distances: %w", d.Name, err)
		}

		if v, ok := pa.kw["label"]; ok {
			if d.Label, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("detection %q: label: %w", d.Name, err)
			}
		}

		if err := sc.Add(d); err != nil {
			return zygo.SexpNull, err
		}
		return &sexpDetectionRef{id: d.ID, name: d.Name}, nil
	})
}

// unusedName returns the first free detection-<n>, counting from the
// scene size.
func unusedName(sc *scene.Scene) string {
	for n := sc.Len() + 1; ; n++ {
		name := fmt.Sprintf("detection-%d", n)
		if sc.Lookup(name) == nil {
			return name
		}
	}
}

// ellipsoidRadius is the distance from the center of an axis-aligned
// ellipsoid to its surface along unit direction d.
func ellipsoidRadius(d, radii v3.Vec) float64 {
	x, y, z := d.X/radii.X, d.Y/radii.Y, d.Z/radii.Z
	return 1 / math.Sqrt(x*x+y*y+z*z)
}
