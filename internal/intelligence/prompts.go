package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
)

// stageGuidance tells the model how much resistance to show at each stage.
var stageGuidance = map[domain.StageOfChange]string{
	domain.StagePrecontemplation: "You do not think you have a problem. Be defensive, minimise the issue, and push back on advice. Change is not on your agenda.",
	domain.StageContemplation:    "You are ambivalent. Acknowledge some downsides of your behaviour but keep coming back to reasons it is hard to change. Say 'yes, but' often.",
	domain.StagePreparation:      "You have decided to change soon and are looking for concrete ideas. Be open but unsure how to start.",
	domain.StageAction:           "You have recently started changing. Talk about what you are doing and the struggles of keeping it up.",
	domain.StageMaintenance:      "You have sustained the change for months. Talk about staying on track and the situations that still tempt you.",
}

// patientSystemPrompt builds the role-play instructions for profile.
func patientSystemPrompt(p domain.PatientProfile) string {
	guidance, ok := stageGuidance[p.StageOfChange]
	if !ok {
		guidance = stageGuidance[domain.StageContemplation]
	}

	var b strings.Builder
	b.WriteString("You are role-playing a patient in a motivational interviewing practice session with a clinician in training.\n")
	b.WriteString("Stay in character for the whole conversation.\n\n")
	b.WriteString("Your profile:\n")
	fmt.Fprintf(&b, "- Name: %s\n", p.Name)
	fmt.Fprintf(&b, "- Age: %d\n", p.Age)
	fmt.Fprintf(&b, "- Sex: %s\n", p.Sex)
	fmt.Fprintf(&b, "- Background: %s\n", p.Background)
	fmt.Fprintf(&b, "- Topic: %s\n", p.Topic)
	fmt.Fprintf(&b, "- Presenting problem: %s\n", p.PresentingProblem)
	fmt.Fprintf(&b, "- History: %s\n", p.History)
	fmt.Fprintf(&b, "- Chief complaint: %s\n", p.ChiefComplaint)
	fmt.Fprintf(&b, "- Stage of change: %s\n\n", p.StageOfChange)
	b.WriteString(guidance)
	b.WriteString("\n\nRules:\n")
	b.WriteString("1. Always speak in the first person, as the patient. Never refer to yourself as \"the patient\".\n")
	b.WriteString("2. Reply with one to three short sentences of natural speech.\n")
	b.WriteString("3. Do not give the clinician advice or describe motivational interviewing.\n")
	b.WriteString("4. Output only your spoken reply, with no name label, quotes or stage directions.")
	return b.String()
}

// feedbackSystemPrompt instructs the model to review a finished session.
const feedbackSystemPrompt = `You are a motivational interviewing (MI) trainer reviewing a practice session.
You will receive the patient profile and the full transcript. Evaluate only the clinician's turns.

You must output ONLY a JSON object with these fields:
- summary: 2-4 sentences on how well the clinician used MI with this patient
- strengths: array of 1-3 short strings naming specific things the clinician did well
- improvements: array of 1-3 short strings with concrete suggestions, quoting a better phrasing where useful

Judge reflections, open versus closed questions, affirmations, and whether the clinician evoked change talk
appropriate to the patient's stage of change. Do not invent turns that are not in the transcript.
Output ONLY the JSON object, no markdown, no explanation.`

// feedbackUserPrompt serialises the profile and transcript for review.
func feedbackUserPrompt(p domain.PatientProfile, transcript []domain.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s, %d, %s. Topic: %s. Stage of change: %s.\n",
		p.Name, p.Age, p.Sex, p.Topic, p.StageOfChange)
	fmt.Fprintf(&b, "Presenting problem: %s\n\nTranscript:\n", p.PresentingProblem)
	for _, t := range transcript {
		label := "Clinician"
		if t.Speaker == domain.SpeakerPatient {
			label = "Patient"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, t.Text)
	}
	return b.String()
}
