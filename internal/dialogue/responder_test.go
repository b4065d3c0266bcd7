package dialogue

import (
	"strings"
	"testing"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleUtterances = []string{
	"",
	"How are you feeling about this?",
	"What is your plan for next week?",
	"What time is it?",
	"That sounds really hard for you.",
	"What gets in the way for you?",
	"It sounds like part of you wants things to be different.",
	"Why did you come in today?",
	"You're worried about what your family thinks.",
	"Ünïcödé input — 你好?",
}

func testPatient(stage domain.StageOfChange) domain.PatientProfile {
	return domain.PatientProfile{
		Name:              "Sam",
		Age:               34,
		Sex:               domain.SexFemale,
		Background:        "A 34-year-old software engineer who works long hours.",
		PresentingProblem: "drinking most evenings",
		Topic:             "Alcohol Use",
		ChiefComplaint:    "My doctor sent me.",
		StageOfChange:     stage,
	}
}

func TestRespond_NeverEmptyNorThirdPerson(t *testing.T) {
	c := scenario.DefaultCatalog()
	for _, tmpl := range c.Templates {
		for _, stage := range domain.AllStages() {
			age := tmpl.AgeRange.Min
			p := domain.PatientProfile{
				Name:              "Alex",
				Age:               age,
				Background:        tmpl.BackgroundFor(age),
				PresentingProblem: tmpl.PresentingProblem,
				Topic:             tmpl.Topic,
				History:           tmpl.History,
				ChiefComplaint:    tmpl.ChiefComplaint,
				StageOfChange:     stage,
			}
			for _, u := range sampleUtterances {
				reply := Respond(u, p)
				require.NotEmpty(t, strings.TrimSpace(reply))
				assert.NotContains(t, reply, "the patient")
				assert.NotContains(t, reply, "they report")
				assert.NotContains(t, reply, "{")
			}
		}
	}
}

func TestRespond_Deterministic(t *testing.T) {
	p := testPatient(domain.StageContemplation)
	for _, u := range sampleUtterances {
		assert.Equal(t, Respond(u, p), Respond(u, p))
	}
}

func TestRespond_UsesStageBank(t *testing.T) {
	p := testPatient(domain.StageMaintenance)
	u := "Tell me more."
	idx := utteranceHash(u) % len(defaultBanks[domain.StageMaintenance])
	want := ToFirstPerson(fill(defaultBanks[domain.StageMaintenance][idx], p))
	assert.True(t, strings.HasSuffix(Respond(u, p), want))
}

func TestRespond_PersonalisesJobAgeAndProblem(t *testing.T) {
	r := &Responder{banks: map[domain.StageOfChange][]string{
		domain.StageContemplation: {"Being {a_job} at {age} is stressful, and {problem} helps."},
	}}
	reply := r.Respond("Tell me more.", testPatient(domain.StageContemplation))
	assert.Contains(t, reply, "Being a software engineer at 34 is stressful, and drinking most evenings helps.")
}

func TestRespond_MissingJobDegradesToPerson(t *testing.T) {
	r := &Responder{banks: map[domain.StageOfChange][]string{
		domain.StageAction: {"As {a_job}, I've started making changes."},
	}}
	p := testPatient(domain.StageAction)
	p.Background = "Lives alone."
	p.PresentingProblem = ""
	reply := r.Respond("Tell me more.", p)
	assert.Contains(t, reply, "As a person, I've started making changes.")
}

func TestRespond_PrefacesWhenIntentUnanswered(t *testing.T) {
	r := &Responder{banks: map[domain.StageOfChange][]string{
		domain.StageAction: {"Work keeps me busy."},
	}}
	p := testPatient(domain.StageAction)

	reply := r.Respond("How are you feeling about this?", p)
	assert.Equal(t, prefaces[domain.IntentEmotion]+" Work keeps me busy.", reply)

	reply = r.Respond("What is your plan for next week?", p)
	assert.Equal(t, prefaces[domain.IntentPlan]+" Work keeps me busy.", reply)

	// "busy" already speaks to a barrier question.
	reply = r.Respond("What gets in the way?", p)
	assert.Equal(t, "Work keeps me busy.", reply)
}

func TestRespond_NoPrefaceWhenFirstSentenceAnswers(t *testing.T) {
	r := &Responder{banks: map[domain.StageOfChange][]string{
		domain.StageAction: {"I feel pretty good about it. Work is busy."},
	}}
	reply := r.Respond("How are you feeling?", testPatient(domain.StageAction))
	assert.Equal(t, "I feel pretty good about it. Work is busy.", reply)
}

func TestRespond_RewritesThirdPersonTemplate(t *testing.T) {
	r := &Responder{banks: map[domain.StageOfChange][]string{
		domain.StageAction: {"The patient reports feeling tired. They report that work is hard."},
	}}
	reply := r.Respond("How are you feeling?", testPatient(domain.StageAction))
	assert.Equal(t, "I feel tired. I've noticed that work is hard.", reply)
}

func TestRespond_UnknownStageFallsBack(t *testing.T) {
	p := testPatient("")
	reply := Respond("Tell me more.", p)
	assert.NotEmpty(t, reply)
}

func TestUtteranceHash(t *testing.T) {
	assert.Equal(t, 0, utteranceHash(""))
	assert.Equal(t, int('a')+int('b'), utteranceHash("ab"))
	assert.Equal(t, int('é'), utteranceHash("é"))
}
