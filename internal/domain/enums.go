package domain

import "strings"

type StageOfChange string

const (
	StagePrecontemplation StageOfChange = "Precontemplation"
	StageContemplation    StageOfChange = "Contemplation"
	StagePreparation      StageOfChange = "Preparation"
	StageAction           StageOfChange = "Action"
	StageMaintenance      StageOfChange = "Maintenance"
)

// AllStages returns the five stages in Transtheoretical Model order.
func AllStages() []StageOfChange {
	return []StageOfChange{
		StagePrecontemplation,
		StageContemplation,
		StagePreparation,
		StageAction,
		StageMaintenance,
	}
}

// ParseStage matches a stage name case-insensitively.
func ParseStage(s string) (StageOfChange, bool) {
	s = strings.TrimSpace(s)
	for _, st := range AllStages() {
		if strings.EqualFold(string(st), s) {
			return st, true
		}
	}
	return "", false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// AllDifficulties returns the difficulty levels from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// ParseDifficulty matches a difficulty name case-insensitively.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range AllDifficulties() {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Stages returns the stages a patient may be in at this difficulty.
// Unknown difficulties return nil.
func (d Difficulty) Stages() []StageOfChange {
	switch d {
	case DifficultyBeginner:
		return []StageOfChange{StagePreparation, StageAction, StageMaintenance}
	case DifficultyIntermediate:
		return []StageOfChange{StageContemplation}
	case DifficultyAdvanced:
		return []StageOfChange{StagePrecontemplation}
	default:
		return nil
	}
}

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

type ClinicianIntent string

const (
	IntentEmotion ClinicianIntent = "emotion"
	IntentInfo    ClinicianIntent = "info"
	IntentPlan    ClinicianIntent = "plan"
	IntentBarrier ClinicianIntent = "barrier"
	IntentReflect ClinicianIntent = "reflect"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

type Speaker string

const (
	SpeakerClinician Speaker = "clinician"
	SpeakerPatient   Speaker = "patient"
)

// ReplySource records whether a patient reply came from a live model or the
// canned responder.
type ReplySource string

const (
	SourceLLM  ReplySource = "llm"
	SourceMock ReplySource = "mock"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// ParseTier matches a tier name case-insensitively.
func ParseTier(s string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(TierFree):
		return TierFree, true
	case string(TierPremium):
		return TierPremium, true
	default:
		return "", false
	}
}
