// Package gateway talks to the generative AI service that writes training
// plans, suggests strength exercises and answers coaching questions.
package gateway

import (
	"context"
	"time"

	"github.com/claude/runpro/internal/models"
)

// Op names one gateway operation.
type Op string

const (
	OpGeneratePlan     Op = "generate_plan"
	OpSuggestExercises Op = "suggest_exercises"
	OpConverse         Op = "converse"
)

// MaxSuggestions caps the exercises returned by SuggestExercises.
const MaxSuggestions = 3

// Gateway is the AI collaborator. Every error it returns wraps
// models.ErrGateway unless the input itself was invalid.
type Gateway interface {
	GeneratePlan(ctx context.Context, profile models.UserProfile, targetDate time.Time, daysPerWeek int) (models.TrainingPlan, error)
	SuggestExercises(ctx context.Context, existing []string, profile models.UserProfile) ([]models.StrengthExercise, error)
	Converse(ctx context.Context, query string, history []models.ChatMessage) (models.CoachReply, error)
}

var fallbacks = map[string]map[Op]string{
	"th": {
		OpGeneratePlan:     "ไม่สามารถสร้างแผนการซ้อมได้ในขณะนี้ กรุณาลองใหม่อีกครั้ง",
		OpSuggestExercises: "ไม่สามารถแนะนำท่าฝึกเพิ่มเติมได้ในขณะนี้ กรุณาลองใหม่อีกครั้ง",
		OpConverse:         "เกิดข้อผิดพลาดในการเชื่อมต่อกับโค้ช AI กรุณาตรวจสอบอินเทอร์เน็ตของคุณ",
	},
	"en": {
		OpGeneratePlan:     "The training plan could not be generated right now. Please try again.",
		OpSuggestExercises: "No extra exercises could be suggested right now. Please try again.",
		OpConverse:         "Could not reach the AI coach. Please check your internet connection.",
	},
}

var emptyReplies = map[string]string{
	"th": "ขออภัยครับ ผมไม่สามารถประมวลผลได้ในขณะนี้ กรุณาลองใหม่อีกครั้ง",
	"en": "Sorry, I couldn't process that right now. Please try again.",
}

// Fallback is the user-facing message shown when op fails.
func Fallback(op Op, lang string) string {
	msgs, ok := fallbacks[lang]
	if !ok {
		msgs = fallbacks["th"]
	}
	return msgs[op]
}

// EmptyReply is the coach answer used when the model returns no text.
func EmptyReply(lang string) string {
	if msg, ok := emptyReplies[lang]; ok {
		return msg
	}
	return emptyReplies["th"]
}
