package oapidoc

import (
	"regexp"

	"github.com/nobl9/govy/pkg/govy"
	"github.com/nobl9/govy/pkg/rules"
	"github.com/pkg/errors"
)

var placeholderNameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

type placeholderName struct {
	Name string
}

var placeholderNameValidator = govy.New(
	govy.For(func(p placeholderName) string { return p.Name }).
		WithName("name").
		Required().
		Rules(
			rules.StringMatchRegexp(placeholderNameRegexp),
			rules.NEQ(DefinitionsPlaceholder),
		),
).WithName("Placeholder")

func validatePlaceholderName(name string) error {
	err := placeholderNameValidator.Validate(placeholderName{Name: name})
	if err == nil {
		return nil
	}
	if name == DefinitionsPlaceholder {
		return errors.Wrap(ErrReservedPlaceholder, err.Error())
	}
	return errors.Wrap(ErrInvalidPlaceholder, err.Error())
}
