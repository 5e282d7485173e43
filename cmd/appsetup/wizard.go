package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/launchbase/appsetup/configs"
	"github.com/launchbase/appsetup/internal/cleanup"
	"github.com/launchbase/appsetup/internal/setup"
	"github.com/launchbase/appsetup/internal/wizard"
	"github.com/launchbase/appsetup/pkg/result"
)

func runSetupWizard(resultPath string) error {
	cfg := configs.Defaults
	if err := checkProjectFiles(cfg); err != nil {
		return err
	}

	fmt.Printf("\n\033[1mappsetup\033[0m — Project Setup\n")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Println()

	runner := &wizard.Runner{
		Input:   readLine,
		Confirm: readYesNo,
		Danger:  readYesNoDanger,
		Reject: func(msg string) {
			fmt.Printf("  \033[31m✗ %s\033[0m\n", msg)
		},
	}

	answers, err := runner.Run(setup.Questions(cfg))
	if err != nil {
		return err
	}

	if !answers.Bool(setup.AnswerSetup) {
		fmt.Println("\n  Setup skipped — run it again anytime with: make " + cfg.Manifest.SetupTarget)
		return nil
	}

	fmt.Println()
	fmt.Println("Summary")
	printSummary(cfg, answers)

	if resultPath != "" {
		if err := result.SaveSetupResult(resultPath, buildResult(cfg, answers)); err != nil {
			return err
		}
		fmt.Printf("  \033[32m✓ Result written: %s\033[0m\n\n", resultPath)
	}

	if answers.Bool(setup.AnswerCleanup) {
		if err := cleanup.Run(cfg, getLogger()); err != nil {
			return err
		}
	}

	fmt.Printf("\033[32m✓ Project configured\033[0m\n")
	fmt.Printf("\n  Next steps:\n")
	fmt.Printf("    %s\n", cfg.Guidance.MigrateCmd)
	fmt.Printf("    %s\n\n", cfg.Guidance.StartCmd)
	return nil
}

// checkProjectFiles verifies the wizard runs from the project root with
// every file it rewrites in place.
func checkProjectFiles(cfg configs.LibDefaults) error {
	required := append(cfg.EnvFiles(), cfg.Manifest.Path)
	for _, f := range required {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return &userError{
				msg:  fmt.Sprintf("required file missing: %s", f),
				hint: "run appsetup from the project root",
			}
		}
	}
	return nil
}

func printSummary(cfg configs.LibDefaults, answers *wizard.Answers) {
	domain := answers.Get(setup.AnswerDomain)
	fmt.Printf("  %-20s %s\n", "Domain:", domain)
	fmt.Printf("  %-20s %s\n", "App name:", setup.ShortName(domain))
	fmt.Printf("  %-20s %s\n", "Bucket:", answers.Get(setup.AnswerBucket))
	for _, env := range cfg.Environments {
		project := answers.Get(setup.ProjectAnswer(env))
		fmt.Printf("  %-20s %s / db %s\n", env.Name+":", project, setup.DatabaseName(project))
	}
	if answers.Bool(setup.AnswerCleanup) {
		fmt.Printf("  %-20s will be removed\n", "Setup tool:")
	}
	fmt.Println()
}

func buildResult(cfg configs.LibDefaults, answers *wizard.Answers) result.SetupResult {
	domain := answers.Get(setup.AnswerDomain)
	envs := make(map[string]result.Environment, len(cfg.Environments))
	for _, env := range cfg.Environments {
		project := answers.Get(setup.ProjectAnswer(env))
		envs[env.Name] = result.Environment{
			Project:  project,
			Database: setup.DatabaseName(project),
		}
	}
	return result.SetupResult{
		Domain:       domain,
		AppName:      setup.ShortName(domain),
		Bucket:       answers.Get(setup.AnswerBucket),
		Environments: envs,
		CleanedUp:    answers.Bool(setup.AnswerCleanup),
	}
}
