package cli

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/vgn360/internal/cli/formatter"
	"github.com/alexanderramin/vgn360/internal/domain"
)

// vgnHuhTheme returns a huh theme in the brand palette.
func vgnHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: brand accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorBrand)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorBrand).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorBrand)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorBrand)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed).SetString(" *")

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// requiredText returns a huh validator that rejects blank input with msg.
func requiredText(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// validatePhoneField adapts domain.ValidatePhone to huh.
func validatePhoneField(s string) error {
	if msg := domain.ValidatePhone(s); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// phoneInput returns a huh.Input for a 10-digit mobile number.
func phoneInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Prompt("+91 ").
		Placeholder("10-digit mobile number").
		CharLimit(10).
		Value(value).
		Validate(validatePhoneField)
}

// projectSelect returns a huh.Select over the project catalog. The
// placeholder entry stays selectable but fails validation.
func projectSelect(value *int) *huh.Select[int] {
	options := make([]huh.Option[int], 0, len(domain.ProjectCatalog))
	for _, p := range domain.ProjectCatalog {
		options = append(options, huh.NewOption(p.Name, p.ID))
	}
	return huh.NewSelect[int]().
		Title("Project").
		Options(options...).
		Value(value).
		Validate(func(id int) error {
			if _, ok := domain.ProjectByID(id); !ok || id == 0 {
				return errors.New("Please select a project")
			}
			return nil
		})
}

// leadFormFields holds the values bound to a lead form.
type leadFormFields struct {
	name     string
	phone    string
	email    string
	project  int
	location string
}

func (f *leadFormFields) leadForm() domain.LeadForm {
	return domain.LeadForm{
		Name:      f.name,
		Phone:     f.phone,
		Email:     f.email,
		ProjectID: f.project,
		Location:  f.location,
	}
}

// leadHuhForm builds the themed enquiry or referral form over f.
func leadHuhForm(kind domain.LeadKind, f *leadFormFields) *huh.Form {
	nameTitle, nameErr, phoneTitle := "Your name", "Name is required", "Mobile number"
	if kind == domain.LeadReferral {
		nameTitle, nameErr, phoneTitle = "Friend's name", "Referral name is required", "Friend's mobile number"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(nameTitle).
				Value(&f.name).
				Validate(requiredText(nameErr)),
			phoneInput(phoneTitle, &f.phone),
			huh.NewInput().
				Title("Email").
				Description("Optional").
				Value(&f.email),
			projectSelect(&f.project),
			huh.NewInput().
				Title("Location").
				Placeholder("Preferred area or city").
				Value(&f.location).
				Description("Enter submits the "+string(kind)).
				Validate(requiredText("Please select a location")),
		),
	).WithTheme(vgnHuhTheme()).WithShowHelp(false)
}
