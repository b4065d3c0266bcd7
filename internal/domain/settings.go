package domain

// Settings is user configuration persisted between runs. It replaces the
// ad-hoc flags a browser client would keep in local storage.
type Settings struct {
	OnboardingComplete bool
	DefaultTopic       string
	DefaultDifficulty  Difficulty
}
