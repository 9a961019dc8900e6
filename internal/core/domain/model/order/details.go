package order

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"freelance/internal/pkg/errs"
)

const (
	MaxTitleLength = 255
	MaxBudget      = 100_000_000
)

// Details is the customer-supplied description of an order.
type Details struct {
	title       string
	description string
	scope       string
	techStack   string
	budget      int64
}

func NewDetails(title, description, scope, techStack string, budget int64) (Details, error) {
	d := Details{
		description: strings.TrimSpace(description),
		scope:       strings.TrimSpace(scope),
		techStack:   strings.TrimSpace(techStack),
	}

	if err := errors.Join(
		d.setTitle(title),
		d.setBudget(budget),
	); err != nil {
		return Details{}, err
	}

	return d, nil
}

func (d Details) Title() string       { return d.title }
func (d Details) Description() string { return d.description }
func (d Details) Scope() string       { return d.scope }
func (d Details) TechStack() string   { return d.techStack }
func (d Details) Budget() int64       { return d.budget }

func (d Details) Validate() error {
	if d.title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	return nil
}

func (d *Details) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return errs.NewValueIsOutOfRangeError("title", n, 1, MaxTitleLength)
	}
	d.title = title
	return nil
}

func (d *Details) setBudget(budget int64) error {
	if budget < 0 || budget > MaxBudget {
		return errs.NewValueIsOutOfRangeErrorWithCause("budget", budget, 0, MaxBudget,
			fmt.Errorf("%d is outside the accepted budget", budget))
	}
	d.budget = budget
	return nil
}
