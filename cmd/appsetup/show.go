package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/launchbase/appsetup/configs"
	"github.com/launchbase/appsetup/internal/envfile"
)

// runShow prints the key=value entries of one env file. With no --env flag
// the file is picked interactively.
func runShow(path string) error {
	cfg := configs.Defaults

	if path == "" {
		surveySelect(&survey.Select{
			Message: "Which env file?",
			Options: cfg.EnvFiles(),
			Default: cfg.EnvFiles()[0],
		}, &path)
		if path == "" {
			return nil
		}
	}

	entries, err := envfile.Read(path)
	if err != nil {
		return &userError{
			msg:  fmt.Sprintf("read %s: %v", path, err),
			hint: "run appsetup from the project root",
		}
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n  \033[1m%s\033[0m\n", path)
	fmt.Println("  " + strings.Repeat("─", len(path)+2))
	for _, k := range keys {
		fmt.Printf("  %s=\033[36m%s\033[0m\n", k, entries[k])
	}
	fmt.Println()
	return nil
}
