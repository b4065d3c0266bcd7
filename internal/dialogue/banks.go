package dialogue

import "github.com/alexanderramin/mipractice/internal/domain"

// Template placeholders filled from the patient profile.
const (
	phJob     = "{job}"   // occupation, or "person"
	phAJob    = "{a_job}" // occupation with indefinite article
	phAge     = "{age}"
	phProblem = "{problem}"
)

// defaultBanks holds canned patient replies per stage of change. Replies
// become less resistant as the stage advances.
var defaultBanks = map[domain.StageOfChange][]string{
	domain.StagePrecontemplation: {
		"Honestly, I don't see what the big deal is. I'm {a_job}, I'm {age}, and I've managed fine so far.",
		"Everyone keeps bringing up {problem}, and I think people are overreacting.",
		"I'm only here because someone else thought I should be. I don't really need to change anything.",
		"I get that you have to ask, but {problem} isn't a problem for me right now.",
		"Plenty of people my age live the same way. I don't know why I'm being singled out.",
	},
	domain.StageContemplation: {
		"Part of me knows {problem} isn't great, but another part of me isn't ready to give it up.",
		"I've thought about changing. Being {a_job} at {age} is stressful, and this is how I cope.",
		"Sometimes I think I should do something about it, and then the week gets busy and I forget.",
		"I can see the downsides, I really can. I just don't know if now is the right time.",
		"If I'm honest, I go back and forth about it a lot.",
	},
	domain.StagePreparation: {
		"I've been thinking I should start doing something about {problem} this month.",
		"I want to make a change. I'm just not sure what the first step should be for someone like me.",
		"I looked into a few options last week. As {a_job}, my schedule makes it tricky, but I want to try.",
		"I'm ready to try something. I'd like a plan that fits my life at {age}.",
	},
	domain.StageAction: {
		"I've started making some changes, and it's harder than I expected, but I'm sticking with it.",
		"This past week I've been working on {problem} every day. Some days go better than others.",
		"I told my friends I'm making changes. It helps to say it out loud.",
		"Work as {a_job} gets in the way sometimes, but I'm finding ways around it.",
	},
	domain.StageMaintenance: {
		"It's been a few months now and I'm proud of how far I've come.",
		"I still get tempted sometimes, especially after a long day as {a_job}.",
		"Things are a lot better. I just want to make sure I don't slip back into {problem}.",
		"I've got a routine now that works for me at {age}. The hard part is keeping it up.",
	},
}

// prefaces open a reply whose first sentence does not address the
// clinician's intent.
var prefaces = map[domain.ClinicianIntent]string{
	domain.IntentEmotion: "Honestly, I feel a bit uneasy talking about it.",
	domain.IntentInfo:    "Well, I can tell you a little about that.",
	domain.IntentPlan:    "I'm not sure I have a plan yet.",
	domain.IntentBarrier: "The hardest part for me is finding the time and energy.",
	domain.IntentReflect: "Yeah, I guess that's right.",
}
