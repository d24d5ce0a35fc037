package alpha

import (
	"strings"
	"testing"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
3;+35;10;0
"4. Reverse Lunges · Dumbbells · 10 reps"
#;KG;REPS;RIR
1;10;10;1
2;10;10;1
3;10;10;0
"5. Standing Calf Raises · Machine · 12 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0
3;157,5;10;0
"6. Hanging Leg Raises · Bodyweight · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;+0;12;1
2;+0;12;1
3;+0;12;0

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps<br>WU2 · 47,5 kg · 8 reps<br>WU3 · 77,5 kg · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0
`

// TestParseCompleteSessions verifies parsing a multi-session CSV with exercises and sets.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Legs · Day 2 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s1.Name = %q", s1.Name)
	}
	if s1.Duration != "1:02 hr" {
		t.Errorf("s1.Duration = %q", s1.Duration)
	}
	if got := s1.Date.Format("2006-01-02 15:04"); got != "2026-02-19 04:54" {
		t.Errorf("s1.Date = %s", got)
	}

	want := []struct {
		name, equipment string
		target, sets    int
	}{
		{"Hack Squats", "Machine", 8, 5},
		{"Sumo Squats", "Smith machine", 10, 3},
		{"Hyperextensions on Roman Chair", "Bodyweight", 10, 4},
		{"Reverse Lunges", "Dumbbells", 10, 3},
		{"Standing Calf Raises", "Machine", 12, 4},
		{"Hanging Leg Raises", "Bodyweight", 12, 3},
	}
	if len(s1.Exercises) != len(want) {
		t.Fatalf("s1 exercises = %d, want %d", len(s1.Exercises), len(want))
	}
	for i, w := range want {
		ex := s1.Exercises[i]
		if ex.Name != w.name || ex.Equipment != w.equipment {
			t.Errorf("ex%d = %q / %q, want %q / %q", i+1, ex.Name, ex.Equipment, w.name, w.equipment)
		}
		if ex.TargetReps != w.target {
			t.Errorf("ex%d target reps = %d, want %d", i+1, ex.TargetReps, w.target)
		}
		if len(ex.Sets) != w.sets {
			t.Errorf("ex%d sets = %d, want %d", i+1, len(ex.Sets), w.sets)
		}
	}

	if sessions[1].Name != "Push · Day 1 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s2.Name = %q", sessions[1].Name)
	}
}

// TestParseSetWithoutExercise verifies that orphan set rows are an error with a line number.
func TestParseSetWithoutExercise(t *testing.T) {
	csv := "\"Push\";\"2026-02-17 5:04 h\";\"1:12 hr\"\n1;100;6;0\n"
	_, err := Parse(strings.NewReader(csv))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err = %v, want line 2 error", err)
	}
}

// TestEuropeanDecimal verifies comma decimal separators ("102,5" = 102.5 kg).
func TestEuropeanDecimal(t *testing.T) {
	got := parseEuropeanFloat("102,5")
	if got != 102.5 {
		t.Errorf("parseEuropeanFloat(102,5) = %f, want 102.5", got)
	}
}

// TestBodyweightPlus verifies the +N notation for bodyweight exercises.
// "+35" means bodyweight plus 35kg (e.g. weighted pullups).
func TestBodyweightPlus(t *testing.T) {
	weight, isBW := parseWeight("+35")
	if !isBW {
		t.Error("expected isBodyweightPlus=true")
	}
	if weight != 35 {
		t.Errorf("weight = %f, want 35", weight)
	}
}

// TestBodyweightPlusZero verifies that +0 means bodyweight only.
func TestBodyweightPlusZero(t *testing.T) {
	weight, isBW := parseWeight("+0")
	if !isBW {
		t.Error("expected isBodyweightPlus=true")
	}
	if weight != 0 {
		t.Errorf("weight = %f, want 0", weight)
	}
}

// TestFractionalRIR verifies that fractional RIR values are parsed correctly.
// Alpha Progression supports half-RIR values like "0,5".
func TestFractionalRIR(t *testing.T) {
	got := parseEuropeanFloat("0,5")
	if got != 0.5 {
		t.Errorf("parseEuropeanFloat(0,5) = %f, want 0.5", got)
	}
}

// TestWarmupParsing verifies warmup set extraction from the exercise header's second field.
// Warmups use <br> as separator and European decimal notation.
func TestWarmupParsing(t *testing.T) {
	warmupStr := "WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
	sets := parseWarmups(warmupStr)
	if len(sets) != 2 {
		t.Fatalf("warmup sets = %d, want 2", len(sets))
	}
	if sets[0].WeightKg != 37.5 {
		t.Errorf("wu1 weight = %f, want 37.5", sets[0].WeightKg)
	}
	if sets[0].Reps != 9 {
		t.Errorf("wu1 reps = %d, want 9", sets[0].Reps)
	}
	if !sets[0].IsWarmup {
		t.Error("wu1 should be warmup")
	}
	if sets[1].WeightKg != 72.5 {
		t.Errorf("wu2 weight = %f, want 72.5", sets[1].WeightKg)
	}
}

// TestWarmupBodyweightPlus verifies parsing warmup sets with bodyweight-plus notation.
func TestWarmupBodyweightPlus(t *testing.T) {
	warmupStr := "WU1 · +0 kg · 8 reps"
	sets := parseWarmups(warmupStr)
	if len(sets) != 1 {
		t.Fatalf("warmup sets = %d, want 1", len(sets))
	}
	if !sets[0].IsBodyweightPlus {
		t.Error("expected isBodyweightPlus=true")
	}
	if sets[0].WeightKg != 0 {
		t.Errorf("weight = %f, want 0", sets[0].WeightKg)
	}
}

// TestEmptyInput verifies that empty input returns no sessions without error.
func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}
