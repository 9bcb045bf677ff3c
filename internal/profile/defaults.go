package profile

import "ovencontroller/internal/models"

// Defaults returns the two factory profiles installed on first boot /
// after a reformat (spec.md §6).
func Defaults() []models.Profile {
	return []models.Profile{
		{
			Name: "Oven Controller",
			Phases: []models.Phase{
				{Name: "Heating", EndTemp: 50, Slope: 2.0, Duration: 0},
				{Name: "Hot", EndTemp: 50, Slope: 0, Duration: -1},
			},
		},
		{
			Name: "PbFree - Reflow",
			Phases: []models.Phase{
				{Name: "Preheat-1", EndTemp: 50, Slope: 0, Duration: 0},
				{Name: "Preheat-2", EndTemp: 150, Slope: 0, Duration: 0},
				{Name: "Soak-1", EndTemp: 200, Slope: 0, Duration: 100},
				{Name: "Soak-2", EndTemp: 217, Slope: 0, Duration: 0},
				{Name: "Reflow-1", EndTemp: 245, Slope: 0, Duration: 20},
				{Name: "Reflow-2", EndTemp: 217, Slope: 0, Duration: 20},
				{Name: "Cooling", EndTemp: 100, Slope: -3.0, Duration: 0},
				{Name: "Done", EndTemp: 50, Slope: -10.0, Duration: 0},
			},
		},
	}
}
