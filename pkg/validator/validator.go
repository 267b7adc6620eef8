package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateRegister(username, fullName, email, password string, budget float64) ValidationErrors {
	errs := make(ValidationErrors)

	// Username
	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 3 {
		errs.Add("username", "Username must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "Username is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	// Full name
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		errs.Add("full_name", "Full name is required")
	} else if len(fullName) > 100 {
		errs.Add("full_name", "Full name is too long")
	}

	// Email
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	// Password
	if len(password) < 8 {
		errs.Add("password", "Password must be at least 8 characters")
	}

	// Budget
	if budget < 0 {
		errs.Add("budget", "Budget cannot be negative")
	}

	return errs
}

func ValidateLogin(username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateBudget(budget float64) ValidationErrors {
	errs := make(ValidationErrors)

	if budget < 0 {
		errs.Add("new_budget", "Budget cannot be negative")
	}

	return errs
}

func ValidateSpending(item string, price float64) ValidationErrors {
	errs := make(ValidationErrors)

	item = strings.TrimSpace(item)
	if item == "" {
		errs.Add("item", "Item is required")
	} else if len(item) > 200 {
		errs.Add("item", "Item is too long")
	}

	if price < 0 {
		errs.Add("price", "Price cannot be negative")
	}

	return errs
}
