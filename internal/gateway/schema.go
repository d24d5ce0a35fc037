package gateway

import (
	"google.golang.org/genai"

	"github.com/claude/runpro/internal/models"
)

func exerciseSchema(lang string) *genai.Schema {
	weightDesc := "เช่น Bodyweight หรือ 5kg"
	if lang == "en" {
		weightDesc = "e.g. Bodyweight or 5kg"
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":   {Type: genai.TypeString},
			"sets":   {Type: genai.TypeInteger},
			"reps":   {Type: genai.TypeInteger},
			"weight": {Type: genai.TypeString, Description: weightDesc},
		},
		Required: []string{"name", "sets", "reps"},
	}
}

func planSchema(lang string) *genai.Schema {
	dayDesc, descDesc := "ชื่อวัน เช่น จันทร์, อังคาร...", "รายละเอียดการฝึกซ้อมเป็นภาษาไทย"
	if lang == "en" {
		dayDesc, descDesc = "Day name, e.g. Monday, Tuesday...", "Workout details in English"
	}
	types := make([]string, len(models.WorkoutTypes))
	for i, t := range models.WorkoutTypes {
		types[i] = string(t)
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"weekNumber": {Type: genai.TypeInteger},
			"focus":      {Type: genai.TypeString},
			"workouts": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"day":         {Type: genai.TypeString, Description: dayDesc},
						"type":        {Type: genai.TypeString, Enum: types},
						"description": {Type: genai.TypeString, Description: descDesc},
						"duration":    {Type: genai.TypeString},
						"distance":    {Type: genai.TypeString},
						"intensity": {Type: genai.TypeString, Enum: []string{
							string(models.IntensityLow), string(models.IntensityMedium), string(models.IntensityHigh),
						}},
						"exercises": {Type: genai.TypeArray, Items: exerciseSchema(lang)},
					},
					Required: []string{"day", "type", "description", "intensity"},
				},
			},
		},
		Required: []string{"weekNumber", "focus", "workouts"},
	}
}

func exerciseListSchema(lang string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: exerciseSchema(lang)}
}
