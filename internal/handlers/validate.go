// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate checks form input against the validate tags on the model types.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages can be humanized.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Links end up as href and src attributes on the public site, so only
	// absolute http(s) URLs are accepted.
	if err := v.RegisterValidation("url", httpURL); err != nil {
		panic(fmt.Sprintf("register url validation: %v", err))
	}

	return v
}

func httpURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// validateForm validates a model and returns the first problem as a
// sentence for the form, or "" when the input is acceptable.
func validateForm(model any) string {
	err := validate.Struct(model)
	if err == nil {
		return ""
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "The form could not be validated."
	}
	return fieldMessage(errs[0])
}

func fieldMessage(fe validator.FieldError) string {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "max":
		return fmt.Sprintf("%s is too long (max %s characters).", field, fe.Param())
	case "url":
		return field + " must be a full http(s) address."
	case "gt":
		return field + " must be selected."
	default:
		return field + " is invalid."
	}
}

// humanize turns a JSON field name ("clientName", "category_id",
// "tags[2]") into a label ("Client name", "Category", "Tag 3").
func humanize(name string) string {
	if i := strings.IndexByte(name, '['); i > 0 {
		var n int
		if _, err := fmt.Sscanf(name[i:], "[%d]", &n); err == nil {
			return humanize(strings.TrimSuffix(name[:i], "s")) + fmt.Sprintf(" %d", n+1)
		}
		name = name[:i]
	}
	name = strings.TrimSuffix(name, "_id")

	var words []string
	var cur []rune
	for _, r := range name {
		switch {
		case r == '_':
			words = append(words, string(cur))
			cur = nil
		case unicode.IsUpper(r) && len(cur) > 0:
			words = append(words, string(cur))
			cur = []rune{unicode.ToLower(r)}
		default:
			cur = append(cur, unicode.ToLower(r))
		}
	}
	words = append(words, string(cur))

	for i, w := range words {
		if w == "url" {
			words[i] = "URL"
		}
	}
	out := strings.Join(words, " ")
	if out == "" {
		return "Field"
	}
	return strings.ToUpper(out[:1]) + out[1:]
}
