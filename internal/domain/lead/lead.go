package lead

import (
	"net/mail"
	"strings"
)

const DefaultSource = "general"

type ContactSubmission struct {
	Name    string
	Email   string
	Company string
	Message string
	Source  string
}

type WaitlistEntry struct {
	Name  string
	Email string
}

func NewContactSubmission(name, email, company, message, source string) (ContactSubmission, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return ContactSubmission{}, ErrNameRequired
	}
	if err := checkEmail(email); err != nil {
		return ContactSubmission{}, err
	}
	if message == "" {
		return ContactSubmission{}, ErrMessageRequired
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}

	return ContactSubmission{
		Name:    name,
		Email:   email,
		Company: strings.TrimSpace(company),
		Message: message,
		Source:  source,
	}, nil
}

func NewWaitlistEntry(name, email string) (WaitlistEntry, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return WaitlistEntry{}, ErrNameRequired
	}
	if err := checkEmail(email); err != nil {
		return WaitlistEntry{}, err
	}
	return WaitlistEntry{Name: name, Email: email}, nil
}

func checkEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
