package setup

import (
	"github.com/launchbase/appsetup/configs"
	"github.com/launchbase/appsetup/internal/wizard"
)

// Answer names, also used by callers reading the collected answers.
const (
	AnswerSetup   = "setup"
	AnswerDomain  = "domain"
	AnswerBucket  = "bucket"
	AnswerCleanup = "cleanup"
)

// ProjectAnswer returns the answer name of an environment's project
// identifier question.
func ProjectAnswer(env configs.EnvironmentDefaults) string {
	return "project_" + env.Name
}

// Questions returns the ordered setup sequence. Every file side effect
// lives in a question's validator, keeping the sequencing free of I/O.
func Questions(cfg configs.LibDefaults) []wizard.Question {
	confirmed := func(a *wizard.Answers) bool { return a.Bool(AnswerSetup) }

	qs := []wizard.Question{
		{
			Name:    AnswerSetup,
			Prompt:  "Set up this project now?",
			Kind:    wizard.Confirm,
			Default: func(*wizard.Answers) (string, error) { return "y", nil },
		},
		{
			Name:   AnswerDomain,
			Prompt: "Domain name",
			When:   confirmed,
			Default: func(*wizard.Answers) (string, error) {
				return DefaultDomain(cfg)
			},
			Validate: func(v string, _ *wizard.Answers) error {
				if !ValidDomain(v) {
					return wizard.Rejectf("%q does not look like a domain name (e.g. app.example.com)", v)
				}
				return ApplyDomain(cfg, v)
			},
		},
		{
			Name:   AnswerBucket,
			Prompt: "Storage bucket name",
			When:   confirmed,
			Default: func(a *wizard.Answers) (string, error) {
				return a.Get(AnswerDomain), nil
			},
			Validate: func(v string, _ *wizard.Answers) error {
				if !ValidBucket(v) {
					return wizard.Rejectf("%q is not a valid bucket name", v)
				}
				return ApplyBucket(cfg, v)
			},
		},
	}

	for _, env := range cfg.Environments {
		qs = append(qs, wizard.Question{
			Name:   ProjectAnswer(env),
			Prompt: "Cloud project ID (" + env.Name + ")",
			When:   confirmed,
			Default: func(a *wizard.Answers) (string, error) {
				return DefaultProjectID(ShortName(a.Get(AnswerDomain)), env), nil
			},
			Validate: func(v string, _ *wizard.Answers) error {
				return ApplyProject(cfg, env, v)
			},
		})
	}

	return append(qs, wizard.Question{
		Name:   AnswerCleanup,
		Prompt: "Delete the setup tool and remove its dependencies?",
		Kind:   wizard.Confirm,
		Danger: true,
		When:   confirmed,
	})
}
