package ui

import (
	survey "github.com/AlecAivazis/survey/v2"
)

// Confirm asks a yes/no question on the terminal.
func Confirm(message string, def bool) (bool, error) {
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer)
	return answer, err
}

// AskInput prompts for a single free-form value. When required is set, an
// empty answer is rejected.
func AskInput(message, def string, required bool) (string, error) {
	var answer string
	prompt := &survey.Input{Message: message, Default: def}
	opts := []survey.AskOpt{}
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	err := survey.AskOne(prompt, &answer, opts...)
	return answer, err
}

// AskSelect prompts for exactly one of options.
func AskSelect(message string, options []string, def string) (string, error) {
	var answer string
	prompt := &survey.Select{Message: message, Options: options}
	if def != "" {
		prompt.Default = def
	}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}

// AskMultiSelect prompts for zero or more of options.
func AskMultiSelect(message string, options, defaults []string) ([]string, error) {
	var answer []string
	prompt := &survey.MultiSelect{Message: message, Options: options, Default: defaults}
	err := survey.AskOne(prompt, &answer)
	return answer, err
}
