package plans

import "github.com/claude/runpro/internal/models"

// SessionGuide is the preparation and recovery advice shown with a session.
type SessionGuide struct {
	Warmup   string `json:"warmup"`
	Drills   string `json:"drills"`
	Cooldown string `json:"cooldown"`
}

var guidesTH = map[models.WorkoutType]SessionGuide{
	models.WorkoutInterval: {
		Warmup:   "จ็อกเบาๆ 15-20 นาที พร้อมท่า Dynamic Stretching (High Knees, Butt Kicks)",
		Drills:   "Leg Swings, A-Skips, B-Skips และวอร์มอัพเร่งความเร็ว 4-5 รอบ (Stride)",
		Cooldown: "จ็อกช้ามาก (Recovery Jog) 10 นาที และยืดเหยียดแบบนิ่ง (Static Stretching)",
	},
	models.WorkoutTempo: {
		Warmup:   "วิ่งเบาๆ 10-15 นาที ค่อยๆ ปรับ Pace ให้เข้าใกล้เทมโป",
		Drills:   "Arm Swings, Ankle Circles และยืดเหยียดกล้ามเนื้อส่วนขา",
		Cooldown: "จ็อกเบาๆ 5-10 นาที เพื่อลดระดับการเต้นของหัวใจ",
	},
	models.WorkoutLong: {
		Warmup:   "เริ่มจากการเดินเร็ว 5 นาที แล้วจ็อกช้าที่สุด 10-15 นาที",
		Drills:   "เน้นการยืดเหยียดข้อต่อสะโพกและเอ็นร้อยหวายเบาๆ",
		Cooldown: "ยืดเหยียดทั่วร่างกาย เน้นกล้ามเนื้อน่องและต้นขา 15 นาที",
	},
	models.WorkoutStrength: {
		Warmup:   "กระโดดเชือกเบาๆ หรือวิ่งอยู่กับที่ 5 นาที เพื่อให้ร่างกายอุ่น",
		Drills:   "Dynamic Lunges, Cat-Cow เพื่อคลายกระดูกสันหลัง",
		Cooldown: "ยืดเหยียดเน้นกลุ่มกล้ามเนื้อที่ใช้งานหนักในวันนั้น",
	},
}

var defaultGuideTH = SessionGuide{
	Warmup:   "จ็อกสบายๆ 5-10 นาที พร้อมหมุนข้อต่อ",
	Drills:   "ยืดเหยียดเบาๆ ตามจุดที่รู้สึกตึง",
	Cooldown: "เดินคลายกล้ามเนื้อ 5 นาที และยืดเหยียดหลังซ้อม",
}

var guidesEN = map[models.WorkoutType]SessionGuide{
	models.WorkoutInterval: {
		Warmup:   "Easy jog for 15-20 minutes with dynamic stretching (high knees, butt kicks)",
		Drills:   "Leg swings, A-skips, B-skips and 4-5 strides",
		Cooldown: "Very slow recovery jog for 10 minutes, then static stretching",
	},
	models.WorkoutTempo: {
		Warmup:   "Easy running for 10-15 minutes, building towards tempo pace",
		Drills:   "Arm swings, ankle circles and leg stretches",
		Cooldown: "Easy jog for 5-10 minutes to bring the heart rate down",
	},
	models.WorkoutLong: {
		Warmup:   "Brisk walk for 5 minutes, then the slowest jog for 10-15 minutes",
		Drills:   "Gentle hip and Achilles mobility",
		Cooldown: "Full-body stretch focusing on calves and thighs for 15 minutes",
	},
	models.WorkoutStrength: {
		Warmup:   "Light rope skipping or running on the spot for 5 minutes",
		Drills:   "Dynamic lunges and cat-cow to loosen the spine",
		Cooldown: "Stretch the muscle groups worked hardest today",
	},
}

var defaultGuideEN = SessionGuide{
	Warmup:   "Relaxed jog for 5-10 minutes with joint rotations",
	Drills:   "Light stretching wherever you feel tight",
	Cooldown: "Walk for 5 minutes and stretch after the session",
}

// GuideFor returns the session guide for a workout type in the given
// language ("th" or "en"). Types without a specific guide get the general one.
func GuideFor(t models.WorkoutType, lang string) SessionGuide {
	guides, fallback := guidesTH, defaultGuideTH
	if lang == "en" {
		guides, fallback = guidesEN, defaultGuideEN
	}
	if g, ok := guides[t]; ok {
		return g
	}
	return fallback
}
