// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

package refine

import (
	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

// Adjustment is one named quick adjustment: a query suffix and/or a filter
// delta, applied before re-running the pipeline.
type Adjustment struct {
	Name    string
	Suffix  string
	Overlay models.FilterPredicate
	Applied string
}

// quickAdjustments is the closed adjustment table.
var quickAdjustments = map[string]Adjustment{
	"lighter": {
		Name:    "lighter",
		Suffix:  "but lighter and more positive",
		Applied: "Made it lighter and more positive",
	},
	"deeper": {
		Name:    "deeper",
		Suffix:  "but more profound and meaningful",
		Applied: "Went deeper and more meaningful",
	},
	"weirder": {
		Name:    "weirder",
		Suffix:  "but more unusual and unexpected",
		Applied: "Made it weirder and more unexpected",
	},
	"safer": {
		Name:    "safer",
		Suffix:  "but more familiar and comfortable",
		Applied: "Kept it safer and more familiar",
	},
	"shorter": {
		Name:    "shorter",
		Overlay: models.FilterPredicate{MaxRuntime: 100},
		Applied: "Limited to shorter runtimes",
	},
	"longer": {
		Name:    "longer",
		Overlay: models.FilterPredicate{MinRuntime: 150},
		Applied: "Opened up longer runtimes",
	},
}

// QuickAdjustNames lists the supported adjustments in display order.
func QuickAdjustNames() []string {
	return []string{"lighter", "deeper", "weirder", "safer", "shorter", "longer"}
}

// QuickAdjust resolves a named adjustment. Unknown names are a validation
// error carrying the supported set.
func QuickAdjust(name string) (Adjustment, error) {
	adj, ok := quickAdjustments[name]
	if !ok {
		return Adjustment{}, faults.Validation("unknown adjustment %q, supported: lighter, deeper, weirder, safer, shorter, longer", name)
	}
	return adj, nil
}
