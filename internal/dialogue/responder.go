package dialogue

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// genericJob stands in for an occupation the background does not name.
const genericJob = "person"

// genericProblem stands in for an empty presenting problem.
const genericProblem = "all this"

// answerChecks decide whether a reply's first sentence already speaks to
// the clinician's intent.
var answerChecks = map[domain.ClinicianIntent]*regexp.Regexp{
	domain.IntentEmotion: regexp.MustCompile(`(?i)\b(?:I|I'm|I've)\b.*\b(?:feel\w*|felt|scared|worried|frustrated|proud|nervous|anxious|overwhelmed|stressed|upset|angry|sad|happy|hopeful|tired|uneasy)\b`),
	domain.IntentPlan:    regexp.MustCompile(`(?i)\b(?:plan\w*|going to|start\w*|try\w*|want to|next|first step|this week|this month|routine)\b`),
	domain.IntentBarrier: regexp.MustCompile(`(?i)\b(?:hard\w*|difficult|tricky|gets? in the way|worr\w*|problem|tempted|struggl\w*|busy|stress\w*)\b`),
	domain.IntentInfo:    regexp.MustCompile(`(?i)\b(?:I|I'm|I've|my|me)\b`),
	domain.IntentReflect: regexp.MustCompile(`(?i)^\s*(?:yes|yeah|right|exactly|I guess|maybe|honestly|well|I mean|sort of|kind of|that's|it's|part of me)\b`),
}

// Responder produces canned patient replies when no live model is
// available. The zero value is not usable; use NewResponder.
type Responder struct {
	banks map[domain.StageOfChange][]string
}

// NewResponder returns a Responder over the built-in reply banks.
func NewResponder() *Responder {
	return &Responder{banks: defaultBanks}
}

var defaultResponder = NewResponder()

// Respond answers utterance in the voice of patient using the built-in banks.
func Respond(utterance string, patient domain.PatientProfile) string {
	return defaultResponder.Respond(utterance, patient)
}

// Respond picks a reply deterministically from the patient's stage bank,
// personalises it, and prefaces it when it would not answer the clinician.
// It never returns an empty string.
func (r *Responder) Respond(utterance string, patient domain.PatientProfile) string {
	bank := r.bankFor(patient.StageOfChange)
	tmpl := bank[utteranceHash(utterance)%len(bank)]

	reply := ToFirstPerson(fill(tmpl, patient))

	intent := ClassifyIntent(utterance)
	if !answersIntent(intent, reply) {
		reply = prefaces[intent] + " " + reply
	}
	return reply
}

// bankFor returns the stage's bank, falling back to contemplation for an
// unknown or empty stage.
func (r *Responder) bankFor(stage domain.StageOfChange) []string {
	if bank := r.banks[stage]; len(bank) > 0 {
		return bank
	}
	return r.banks[domain.StageContemplation]
}

// utteranceHash sums the code points of s.
func utteranceHash(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

func fill(tmpl string, patient domain.PatientProfile) string {
	job := ExtractOccupation(patient.Background)
	if job == "" {
		job = genericJob
	}
	problem := strings.TrimSpace(patient.PresentingProblem)
	if problem == "" {
		problem = genericProblem
	}
	return strings.NewReplacer(
		phAJob, withArticle(job),
		phJob, job,
		phAge, strconv.Itoa(patient.Age),
		phProblem, problem,
	).Replace(tmpl)
}

func answersIntent(intent domain.ClinicianIntent, reply string) bool {
	check, ok := answerChecks[intent]
	if !ok {
		return true
	}
	return check.MatchString(firstSentence(reply))
}
