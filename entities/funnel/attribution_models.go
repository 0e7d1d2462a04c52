package funnel

import "strings"

const (
	MODEL_FIRST_TOUCH    = "first_touch"
	MODEL_LAST_TOUCH     = "last_touch"
	MODEL_LINEAR         = "linear"
	MODEL_TIME_DECAY     = "time_decay"
	MODEL_POSITION_BASED = "position_based"

	DEFAULT_ATTRIBUTION_MODEL = MODEL_FIRST_TOUCH
)

// AttributionModel assigns each contract's credit to lead sources by setting
// AttributedContract.Weight. A model may also split one contract into several
// weighted rows.
type AttributionModel interface {
	Name() string
	Attribute(contracts []AttributedContract) []AttributedContract
}

// lastTouch credits the whole contract to the source currently recorded on
// the prospect.
type lastTouch struct{}

func (lastTouch) Name() string { return MODEL_LAST_TOUCH }

func (lastTouch) Attribute(contracts []AttributedContract) []AttributedContract {
	attributed := make([]AttributedContract, len(contracts))
	for i, c := range contracts {
		c.Weight = 1
		attributed[i] = c
	}
	return attributed
}

// ModelRegistry resolves requested model names. Names that are known but
// not implemented, and unknown names, resolve to the fallback model.
type ModelRegistry struct {
	models   map[string]AttributionModel
	known    map[string]bool
	fallback AttributionModel
}

func NewModelRegistry(fallback AttributionModel) *ModelRegistry {
	r := &ModelRegistry{
		models:   map[string]AttributionModel{},
		known:    map[string]bool{},
		fallback: fallback,
	}
	r.Register(fallback)
	return r
}

func (r *ModelRegistry) Register(model AttributionModel) {
	r.models[model.Name()] = model
	r.known[model.Name()] = true
}

// Declare records a model name callers may request before it has an
// implementation.
func (r *ModelRegistry) Declare(names ...string) {
	for _, name := range names {
		r.known[name] = true
	}
}

// Resolve returns the model to apply and whether the requested name has its
// own implementation.
func (r *ModelRegistry) Resolve(requested string) (AttributionModel, bool) {
	name := strings.ToLower(strings.TrimSpace(requested))
	if model, ok := r.models[name]; ok {
		return model, true
	}
	return r.fallback, false
}

func (r *ModelRegistry) Known(name string) bool {
	return r.known[strings.ToLower(strings.TrimSpace(name))]
}

func DefaultModelRegistry() *ModelRegistry {
	r := NewModelRegistry(lastTouch{})
	r.Declare(MODEL_FIRST_TOUCH, MODEL_LINEAR, MODEL_TIME_DECAY, MODEL_POSITION_BASED)
	return r
}
