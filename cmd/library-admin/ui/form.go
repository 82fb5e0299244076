package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/redmonkez12/library-api/internal/auth"
	"github.com/redmonkez12/library-api/internal/catalog"
	"github.com/redmonkez12/library-api/internal/user"
)

// UserComplete reports whether every required signup field is already set
func UserComplete(req *auth.SignupRequest) bool {
	for _, v := range []string{req.Username, req.Email, req.Password, req.PhoneNumber, req.UserType} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// RunUserForm asks for the fields of req. Values already set are shown as
// defaults.
func RunUserForm(req *auth.SignupRequest) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&req.Username).
				Validate(required("username")),

			huh.NewInput().
				Title("Email").
				Placeholder("reader@example.com").
				Value(&req.Email).
				Validate(required("email")),

			huh.NewInput().
				Title("Password").
				Description("At least 8 characters").
				EchoMode(huh.EchoModePassword).
				Value(&req.Password).
				Validate(minLength("password", 8)),

			huh.NewInput().
				Title("Phone number").
				Description("E.164, e.g. +989121234567").
				Value(&req.PhoneNumber).
				Validate(required("phone number")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("User type").
				Options(
					huh.NewOption("Reader", "READER"),
					huh.NewOption("Librarian", "LIBRARIAN"),
					huh.NewOption("Admin", "ADMIN"),
				).
				Value(&req.UserType),

			huh.NewInput().
				Title("First name").
				Value(&req.FirstName),

			huh.NewInput().
				Title("Last name").
				Value(&req.LastName),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return err
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	return nil
}

// RunAuthorForm asks for an author's name and bio
func RunAuthorForm(in *catalog.AuthorInput) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(required("name")),

			huh.NewText().
				Title("Bio").
				Value(&in.Bio),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return err
	}

	in.Name = strings.TrimSpace(in.Name)
	return nil
}

// PrintUser prints the created user
func PrintUser(u *user.User) {
	fmt.Println(successStyle.Render("User created"))
	fmt.Println()
	fmt.Println(titleStyle.Render(u.Username))
	fmt.Printf("  ID:        %s\n", u.ID)
	fmt.Printf("  Email:     %s\n", u.Email)
	fmt.Printf("  Phone:     %s\n", u.PhoneNumber)
	fmt.Printf("  User type: %s\n", u.UserType)
	fmt.Println(subtleStyle.Render("  The account is marked as OTP verified."))
	fmt.Println()
}

func PrintSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

func PrintInfo(msg string) {
	fmt.Println(subtleStyle.Render(msg))
}

// PrintError prints an error message.
func PrintError(msg string) {
	fmt.Println(errorStyle.Render("Error: " + msg))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func minLength(field string, n int) func(string) error {
	return func(s string) error {
		if len(s) < n {
			return fmt.Errorf("%s must be at least %d characters", field, n)
		}
		return nil
	}
}
