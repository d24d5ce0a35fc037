package workoutlog

import "github.com/claude/runpro/internal/models"

// DemoWorkouts is the sample week a fresh dashboard starts with when demo
// seeding is enabled.
func DemoWorkouts() []models.LoggedWorkout {
	return []models.LoggedWorkout{
		{ID: "1", Date: "2023-10-23", Mileage: 5, Pace: 5.4, Type: models.WorkoutEasy},
		{ID: "2", Date: "2023-10-24", Mileage: 8, Pace: 5.2, Type: models.WorkoutTempo},
		{ID: "3", Date: "2023-10-26", Mileage: 10, Pace: 5.1, Type: models.WorkoutInterval},
		{ID: "4", Date: "2023-10-27", Mileage: 6, Pace: 5.5, Type: models.WorkoutEasy},
		{ID: "5", Date: "2023-10-28", Mileage: 22, Pace: 5.8, Type: models.WorkoutLong},
	}
}
