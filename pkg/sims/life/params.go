package life

import (
	"strconv"

	"fade-life/pkg/core"
)

var controls = []core.ParameterControl{
	{Key: "decay", Label: "Decay rate", Step: 0.25, Min: 0, Max: 10, HasMin: true, HasMax: true},
	{Key: "density", Label: "Seed density", Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
}

func (e *Engine) Parameters() core.ParameterSnapshot {
	alive, dying := e.Population()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", e.grid.W),
				intParam("h", "Height", e.grid.H),
				intParam("generation", "Generation", e.generation),
				intParam("alive", "Alive", alive),
				intParam("dying", "Dying", dying),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				{Key: "rule", Label: "Rule", Type: core.ParamTypeString, Value: e.rules.String()},
			},
		},
		{
			Name: "Animation",
			Params: []core.Parameter{
				floatParam("decay", "Decay rate", e.cfg.DecayRate),
				floatParam("density", "Seed density", e.cfg.Density),
			},
		},
	}}
}

// ParameterControls lists the values a HUD may adjust.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return controls
}

// SetFloatParameter updates an adjustable value, clamping it to the
// control's bounds. Unknown keys report false.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range controls {
		if ctrl.Key != key {
			continue
		}
		value = ctrl.Clamp(value)
		switch key {
		case "decay":
			return e.SetDecayRate(value) == nil
		case "density":
			e.cfg.Density = value
			return true
		}
	}
	return false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
