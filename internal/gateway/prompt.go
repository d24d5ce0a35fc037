package gateway

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/claude/runpro/internal/models"
)

var coachInstructions = map[string]string{
	"th": "คุณคือโค้ชวิ่งมาราธอนระดับโลก ให้คำแนะนำที่เป็นผู้เชี่ยวชาญ สั้นกระชับ เกี่ยวกับท่าวิ่ง การป้องกันการบาดเจ็บ โภชนาการ และความแข็งแกร่งของจิตใจ ใช้โทนเสียงที่ให้กำลังใจแต่เป็นมืออาชีพ **ตอบกลับเป็นภาษาไทยเสมอ**",
	"en": "You are a world-class marathon running coach. Give expert, concise advice on running form, injury prevention, nutrition and mental toughness. Use an encouraging but professional tone. **Always answer in English.**",
}

func coachInstruction(lang string) string {
	if s, ok := coachInstructions[lang]; ok {
		return s
	}
	return coachInstructions["th"]
}

// weeksUntil rounds the distance to the race date up to whole weeks.
func weeksUntil(now, target time.Time) int {
	d := target.Sub(now)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / (24 * 7)))
}

func genderTH(g models.Gender) string {
	switch g {
	case models.GenderMale:
		return "ชาย"
	case models.GenderFemale:
		return "หญิง"
	}
	return "ไม่ระบุ/อื่นๆ"
}

func planPrompt(lang string, p models.UserProfile, targetDate time.Time, daysPerWeek int, now time.Time) string {
	date := targetDate.Format(models.DateLayout)
	weeks := weeksUntil(now, targetDate)
	var b strings.Builder
	if lang == "en" {
		fmt.Fprintf(&b, "Create a one-week training plan to conquer %g km for a runner with this profile:\n", p.Target.Km())
		fmt.Fprintf(&b, "- Gender: %s\n- Age: %d\n- Height: %g cm\n- Weight: %g kg\n", p.Gender, p.Age, p.HeightCm, p.WeightKg)
		fmt.Fprintf(&b, "- Fitness level: %s\n- Goal: run %g km\n", p.FitnessLevel, p.Target.Km())
		if p.TargetPace != "" {
			fmt.Fprintf(&b, "- Target pace: %s min/km\n", p.TargetPace)
		}
		if g := p.IntermediateGoal; g != nil {
			fmt.Fprintf(&b, "- Intermediate goal: %g km at %s min/km\n", g.Distance.Km(), g.Pace)
		}
		fmt.Fprintf(&b, "- Race date: %s (about %d weeks away)\n- Training days per week: %d\n\n", date, weeks, daysPerWeek)
		b.WriteString("Use the body data and gender to tune running intensity (pace) and strength work.\n")
		b.WriteString("Mix the different run types with strength training.\n")
		b.WriteString("**For Strength Training days list the exercises (at least 4-5) with sets and reps suited to the fitness level.**\n")
		b.WriteString("**All JSON text (focus, description, day, exercise name) must be in English.**")
		return b.String()
	}

	fmt.Fprintf(&b, "สร้างแผนการฝึกซ้อมเพื่อพิชิตระยะทาง %g กม. ในระยะเวลา 1 สัปดาห์สำหรับนักวิ่งที่มีข้อมูลดังนี้:\n", p.Target.Km())
	fmt.Fprintf(&b, "- เพศ: %s\n- อายุ: %d ปี\n- ส่วนสูง: %g ซม.\n- น้ำหนัก: %g กก.\n", genderTH(p.Gender), p.Age, p.HeightCm, p.WeightKg)
	fmt.Fprintf(&b, "- ระดับความฟิต: %s\n- เป้าหมาย: วิ่งระยะทาง %g กม.\n", p.FitnessLevel, p.Target.Km())
	if p.TargetPace != "" {
		fmt.Fprintf(&b, "- เพซเป้าหมาย: %s นาที/กม.\n", p.TargetPace)
	}
	if g := p.IntermediateGoal; g != nil {
		fmt.Fprintf(&b, "- เป้าหมายระหว่างทาง: %g กม. ที่เพซ %s นาที/กม.\n", g.Distance.Km(), g.Pace)
	}
	fmt.Fprintf(&b, "- วันที่แข่ง: %s (อีกประมาณ %d สัปดาห์)\n- วันที่ฝึกซ้อมต่อสัปดาห์: %d วัน\n\n", date, weeks, daysPerWeek)
	b.WriteString("โปรดวิเคราะห์ข้อมูลร่างกายและเพศเพื่อปรับความเข้มข้นของการซ้อม (Pace) และการฝึกความแข็งแรง (Strength) ให้เหมาะสมที่สุด\n")
	b.WriteString("รวมการวิ่งประเภทต่างๆ และการฝึกความแข็งแรง (Strength training)\n")
	b.WriteString("**สำหรับวัน Strength Training ให้ระบุรายการท่าฝึก (exercises) มาด้วย (อย่างน้อย 4-5 ท่า) พร้อมระบุ sets และ reps ที่เหมาะสมกับระดับความฟิต**\n")
	b.WriteString("**สำคัญ: ข้อมูลใน JSON (focus, description, day, exercise name) ต้องเป็นภาษาไทยทั้งหมด**")
	return b.String()
}

func exercisePrompt(lang string, existing []string, p models.UserProfile) string {
	list := strings.Join(existing, ", ")
	if lang == "en" {
		if list == "" {
			list = "none"
		}
		return fmt.Sprintf("Suggest 2-3 extra strength exercises for a %s runner training for %g km.\n"+
			"Do not repeat any of these exercises: %s.\n"+
			"Give sets and reps suited to the fitness level. Exercise names in English.",
			p.FitnessLevel, p.Target.Km(), list)
	}
	if list == "" {
		list = "ไม่มี"
	}
	return fmt.Sprintf("แนะนำท่าฝึกความแข็งแรงเพิ่มเติม 2-3 ท่า สำหรับนักวิ่งระดับ %s ที่กำลังซ้อมเพื่อระยะทาง %g กม.\n"+
		"ห้ามซ้ำกับท่าเหล่านี้: %s\n"+
		"ระบุ sets และ reps ที่เหมาะสมกับระดับความฟิต ชื่อท่าเป็นภาษาไทย",
		p.FitnessLevel, p.Target.Km(), list)
}
