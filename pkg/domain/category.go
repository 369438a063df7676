package domain

import (
	"strings"

	dErrors "gatepass/pkg/domain-errors"
)

// Category classifies an attendee and determines which actions the rule
// table permits. Fixed for the lifetime of the attendee record.
type Category string

const (
	CategoryAlumni    Category = "alumni"
	CategoryFaculty   Category = "faculty"
	CategoryVolunteer Category = "volunteer"
	CategoryStudent   Category = "student"
	CategoryPress     Category = "press"
)

// categoryAliases maps scan-code prefixes and shorthand spellings onto
// canonical categories. Lookup is case-insensitive.
var categoryAliases = map[string]Category{
	"al":        CategoryAlumni,
	"alumni":    CategoryAlumni,
	"fl":        CategoryFaculty,
	"faculty":   CategoryFaculty,
	"vl":        CategoryVolunteer,
	"volunteer": CategoryVolunteer,
	"stu":       CategoryStudent,
	"student":   CategoryStudent,
	"pr":        CategoryPress,
	"press":     CategoryPress,
}

// codePrefixes drive the human-facing sequential code format, e.g. AL-007.
var codePrefixes = map[Category]string{
	CategoryAlumni:    "AL",
	CategoryFaculty:   "FL",
	CategoryVolunteer: "VL",
	CategoryStudent:   "STU",
	CategoryPress:     "PR",
}

// NormalizeCategory resolves aliases and case. Unknown inputs come back
// lower-cased but unresolved; they are valid for nothing downstream.
func NormalizeCategory(s string) Category {
	lower := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[lower]; ok {
		return c
	}
	return Category(lower)
}

// ParseCategory resolves aliases and rejects categories outside the
// configured set. Registration requires a known category; lookups do not.
func ParseCategory(s string) (Category, error) {
	c := NormalizeCategory(s)
	if _, ok := codePrefixes[c]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown attendee category")
	}
	return c, nil
}

// Prefix returns the sequential-code prefix for a category, empty for
// unknown categories.
func (c Category) Prefix() string {
	return codePrefixes[c]
}

func (c Category) String() string {
	return string(c)
}

// CategoryFromScanPrefix suggests a category from the leading segment of a
// scan code ("AL-93F2" -> alumni). Used to prefill the registration form
// when a scan does not resolve; empty when the prefix is unrecognized.
func CategoryFromScanPrefix(scanCode string) Category {
	prefix, _, found := strings.Cut(scanCode, "-")
	if !found {
		return ""
	}
	c := NormalizeCategory(prefix)
	if _, ok := codePrefixes[c]; !ok {
		return ""
	}
	return c
}

// Categories returns the configured category set in stable order.
func Categories() []Category {
	return []Category{
		CategoryAlumni,
		CategoryFaculty,
		CategoryVolunteer,
		CategoryStudent,
		CategoryPress,
	}
}
