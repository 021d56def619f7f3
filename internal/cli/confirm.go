package cli

import (
	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question on the terminal. Tests replace it.
var Confirm = func(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	return ok, err
}
