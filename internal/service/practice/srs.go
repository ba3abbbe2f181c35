package practice

import (
	"time"

	"github.com/polyglotta/polyglotta-backend/internal/config"
	"github.com/polyglotta/polyglotta-backend/internal/domain"
)

// SRSInput holds all data needed for a spaced-repetition calculation.
// Pure value — no side effects.
type SRSInput struct {
	CurrentStatus   domain.LearningStatus
	CurrentInterval int
	CurrentEase     float64
	LearningStep    int
	Grade           domain.ReviewGrade
	Now             time.Time
	Config          config.SRSConfig
}

// SRSOutput is the result of an SRS calculation.
type SRSOutput struct {
	NewStatus       domain.LearningStatus
	NewInterval     int
	NewEase         float64
	NewLearningStep int
	NextReviewAt    time.Time
}

// CalculateSRS is a pure function. No DB, no context, no logger.
// All decisions are deterministic based on input parameters.
func CalculateSRS(input SRSInput) SRSOutput {
	switch input.CurrentStatus {
	case domain.LearningStatusNew, domain.LearningStatusLearning:
		return calculateLearning(input)
	case domain.LearningStatusReview, domain.LearningStatusMastered:
		return calculateReview(input)
	default:
		return calculateLearning(input)
	}
}

func calculateLearning(input SRSInput) SRSOutput {
	steps := input.Config.LearningSteps
	if len(steps) == 0 {
		steps = []time.Duration{1 * time.Minute}
	}

	switch input.Grade {
	case domain.ReviewGradeAgain:
		// Back to step 0.
		return SRSOutput{
			NewStatus:       domain.LearningStatusLearning,
			NewInterval:     0,
			NewEase:         input.Config.DefaultEaseFactor,
			NewLearningStep: 0,
			NextReviewAt:    input.Now.Add(steps[0]),
		}

	case domain.ReviewGradeHard:
		// Repeat the current step.
		step := input.LearningStep
		if step >= len(steps) {
			step = len(steps) - 1
		}
		return SRSOutput{
			NewStatus:       domain.LearningStatusLearning,
			NewInterval:     0,
			NewEase:         input.Config.DefaultEaseFactor,
			NewLearningStep: step,
			NextReviewAt:    input.Now.Add(steps[step]),
		}

	case domain.ReviewGradeGood:
		// Next step, or graduate past the last one.
		nextStep := input.LearningStep
		if input.CurrentStatus == domain.LearningStatusLearning {
			nextStep++
		}
		if nextStep >= len(steps) {
			return graduate(input, input.Config.GraduatingInterval, input.Config.DefaultEaseFactor)
		}
		return SRSOutput{
			NewStatus:       domain.LearningStatusLearning,
			NewInterval:     0,
			NewEase:         input.Config.DefaultEaseFactor,
			NewLearningStep: nextStep,
			NextReviewAt:    input.Now.Add(steps[nextStep]),
		}

	case domain.ReviewGradeEasy:
		return graduate(input, input.Config.EasyInterval, input.Config.DefaultEaseFactor)

	default:
		return SRSOutput{
			NewStatus:       domain.LearningStatusLearning,
			NewInterval:     0,
			NewEase:         input.Config.DefaultEaseFactor,
			NewLearningStep: input.LearningStep,
			NextReviewAt:    input.Now.Add(steps[0]),
		}
	}
}

func calculateReview(input SRSInput) SRSOutput {
	newEase := input.CurrentEase
	var newInterval int

	switch input.Grade {
	case domain.ReviewGradeAgain:
		// Lapse: drop back to learning, ease penalty.
		newEase = maxFloat(input.Config.MinEaseFactor, input.CurrentEase-0.20)

		steps := input.Config.LearningSteps
		if len(steps) == 0 {
			steps = []time.Duration{10 * time.Minute}
		}
		return SRSOutput{
			NewStatus:       domain.LearningStatusLearning,
			NewInterval:     1,
			NewEase:         newEase,
			NewLearningStep: 0,
			NextReviewAt:    input.Now.Add(steps[0]),
		}

	case domain.ReviewGradeHard:
		newEase = maxFloat(input.Config.MinEaseFactor, input.CurrentEase-0.15)
		newInterval = max(input.CurrentInterval+1, int(float64(input.CurrentInterval)*1.2))

	case domain.ReviewGradeGood:
		newInterval = max(input.CurrentInterval+1, int(float64(input.CurrentInterval)*input.CurrentEase))

	case domain.ReviewGradeEasy:
		newEase = input.CurrentEase + 0.15
		newInterval = max(input.CurrentInterval+1, int(float64(input.CurrentInterval)*input.CurrentEase*input.Config.EasyBonus))

	default:
		newInterval = input.CurrentInterval
	}

	newInterval = min(newInterval, input.Config.MaxIntervalDays)

	newStatus := domain.LearningStatusReview
	if newInterval >= input.Config.MasteredInterval && newEase >= input.Config.DefaultEaseFactor {
		newStatus = domain.LearningStatusMastered
	}

	return SRSOutput{
		NewStatus:       newStatus,
		NewInterval:     newInterval,
		NewEase:         newEase,
		NewLearningStep: 0,
		NextReviewAt:    input.Now.Add(time.Duration(newInterval) * 24 * time.Hour),
	}
}

func graduate(input SRSInput, intervalDays int, ease float64) SRSOutput {
	interval := min(intervalDays, input.Config.MaxIntervalDays)
	return SRSOutput{
		NewStatus:       domain.LearningStatusReview,
		NewInterval:     interval,
		NewEase:         ease,
		NewLearningStep: 0,
		NextReviewAt:    input.Now.Add(time.Duration(interval) * 24 * time.Hour),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
