package config

import (
	"sort"
	"strings"

	"github.com/theirongolddev/runway/internal/model"
)

// DefaultPresetName is the preset used when nothing else is selected.
const DefaultPresetName = "default"

// Preset is a named set of starting assumptions for a business persona.
type Preset struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Params      model.Params `json:"params"`
}

// DefaultPresets maps persona names to their starting assumptions. Months is
// left zero and filled from the configured default at lookup.
var DefaultPresets = map[string]Preset{
	DefaultPresetName: {
		Description: "Generic small business",
		Params: model.Params{
			FixedCosts: 10000, Price: 50, VariableCost: 20,
			InitialUnits: 200, MonthlyGrowthRate: 0.05,
		},
	},
	"saas": {
		Description: "Recurring subscription revenue model",
		Params: model.Params{
			FixedCosts: 8000, Price: 100, VariableCost: 10,
			InitialUnits: 50, MonthlyGrowthRate: 0.08,
		},
	},
	"freemium": {
		Description: "High user volume, low conversion rate",
		Params: model.Params{
			FixedCosts: 5000, Price: 50, VariableCost: 5,
			InitialUnits: 500, MonthlyGrowthRate: 0.05,
		},
	},
	"ecommerce": {
		Description: "Product-based e-commerce with per-unit margins",
		Params: model.Params{
			FixedCosts: 12000, Price: 75, VariableCost: 30,
			InitialUnits: 200, MonthlyGrowthRate: 0.06,
		},
	},
	"marketplace": {
		Description: "Take-rate model on transaction volume",
		Params: model.Params{
			FixedCosts: 10000, Price: 100, VariableCost: 20,
			InitialUnits: 150, MonthlyGrowthRate: 0.1,
		},
	},
	"consulting": {
		Description: "High-ticket services with variable delivery costs",
		Params: model.Params{
			FixedCosts: 3000, Price: 500, VariableCost: 150,
			InitialUnits: 20, MonthlyGrowthRate: 0.04,
		},
	},
	"hardware": {
		Description: "Upfront manufacturing, supply chain costs",
		Params: model.Params{
			FixedCosts: 20000, Price: 200, VariableCost: 80,
			InitialUnits: 100, MonthlyGrowthRate: 0.03,
		},
	},
}

// NormalizePresetName lowercases and trims a preset name.
func NormalizePresetName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupPreset resolves a preset by name, applying any user override from
// cfg. Returns false if neither a built-in nor an override exists.
func LookupPreset(cfg Config, name string) (Preset, bool) {
	name = NormalizePresetName(name)
	if name == "" {
		name = NormalizePresetName(cfg.General.DefaultPreset)
	}
	if name == "" {
		name = DefaultPresetName
	}

	preset, builtin := DefaultPresets[name]
	override, overridden := findOverride(cfg, name)
	if !builtin && !overridden {
		return Preset{}, false
	}

	preset.Name = name
	preset.Params.Months = Months(cfg)
	if overridden {
		preset = applyOverride(preset, override)
	}
	return preset, true
}

// Presets returns every available preset: built-ins first in name order,
// then user-only presets in name order.
func Presets(cfg Config) []Preset {
	var builtin, custom []string
	for name := range DefaultPresets {
		builtin = append(builtin, name)
	}
	for name := range cfg.Presets.Overrides {
		n := NormalizePresetName(name)
		if _, ok := DefaultPresets[n]; !ok {
			custom = append(custom, n)
		}
	}
	sort.Strings(builtin)
	sort.Strings(custom)

	out := make([]Preset, 0, len(builtin)+len(custom))
	for _, name := range append(builtin, custom...) {
		if p, ok := LookupPreset(cfg, name); ok {
			out = append(out, p)
		}
	}
	return out
}

func findOverride(cfg Config, name string) (PresetOverride, bool) {
	for k, o := range cfg.Presets.Overrides {
		if NormalizePresetName(k) == name {
			return o, true
		}
	}
	return PresetOverride{}, false
}

func applyOverride(p Preset, o PresetOverride) Preset {
	if o.Description != "" {
		p.Description = o.Description
	}
	if o.FixedCosts != nil {
		p.Params.FixedCosts = *o.FixedCosts
	}
	if o.Price != nil {
		p.Params.Price = *o.Price
	}
	if o.VariableCost != nil {
		p.Params.VariableCost = *o.VariableCost
	}
	if o.InitialUnits != nil {
		p.Params.InitialUnits = *o.InitialUnits
	}
	if o.MonthlyGrowthRate != nil {
		p.Params.MonthlyGrowthRate = model.NormalizeRate(*o.MonthlyGrowthRate)
	}
	if o.Months != nil {
		p.Params.Months = *o.Months
	}
	return p
}
