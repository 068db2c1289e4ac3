// Package transform shapes the pipeline surface a TS-to-JS transform
// runs through. It has no Transformer visitor type; it holds per-feature
// lowering toggles (Options), a helper that mints collision-free binding
// names without touching a scope tree (BindingIntroducer), and one
// concrete rewrite, ConvertArrowThis, grounded in arrow-function
// `this`-capture rewriting. The transform catalogue itself
// (target-version lowering, JSX runtimes, and so on) is out of scope.
package transform

import "strconv"

// TargetFeature names a single lowering a Transformer may or may not
// apply, matching the per-feature toggle shape a TransformOptions record
// would carry.
type TargetFeature string

const (
	FeatureArrowFunction      TargetFeature = "arrow_function"
	FeatureExponentiation     TargetFeature = "exponentiation"
	FeatureAsyncToGenerator   TargetFeature = "async_to_generator"
	FeatureObjectRestSpread   TargetFeature = "object_rest_spread"
	FeatureOptionalCatchBind  TargetFeature = "optional_catch_binding"
	FeatureNullishCoalesce    TargetFeature = "nullish_coalesce"
	FeatureLogicalAssign      TargetFeature = "logical_assign"
	FeatureClassStaticBlock   TargetFeature = "class_static_block"
)

// Options enumerates which lowerings a Transformer pipeline run should
// apply. A real pipeline also carries JSX/TypeScript/assumptions/helper
// -loader fields; those are omitted here since no transform in this
// package consumes them yet.
type Options struct {
	Features map[TargetFeature]bool
}

// Enabled reports whether feature is turned on in opts.
func (o Options) Enabled(feature TargetFeature) bool {
	return o.Features[feature]
}

// BindingIntroducer lets a Transformer mint fresh, collision-free
// temporary names as it rewrites a subtree, mirroring how a transform
// pipeline's scope-tree helper hands out a unique binding name.
type BindingIntroducer struct {
	taken map[string]bool
}

// NewBindingIntroducer seeds the introducer with the names already bound
// in the scope a rewrite is about to insert into, so a minted name never
// collides with an existing one.
func NewBindingIntroducer(existing []string) *BindingIntroducer {
	taken := make(map[string]bool, len(existing))
	for _, n := range existing {
		taken[n] = true
	}
	return &BindingIntroducer{taken: taken}
}

// Fresh returns base the first time it's called, then base2, base3, ...
// until it finds a name not already taken, and records the chosen name
// as taken for subsequent calls.
func (b *BindingIntroducer) Fresh(base string) string {
	name := base
	for i := 2; b.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}
	b.taken[name] = true
	return name
}
