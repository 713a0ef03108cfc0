package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"theorycheck/internal/diag"
	"theorycheck/internal/source"
	"theorycheck/internal/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func manifestValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// в сообщениях нужны ключи TOML, а не имена полей Go
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "csname", func(fl validator.FieldLevel) bool {
			return IsQualifiedName(fl.Field().String())
		})
		mustRegister(v, "implementor", func(fl validator.FieldLevel) bool {
			_, ok := types.ParseImplementor(fl.Field().String())
			return ok
		})
		mustRegister(v, "relpath", func(fl validator.FieldLevel) bool {
			p := filepath.ToSlash(fl.Field().String())
			return !filepath.IsAbs(p) && !strings.HasPrefix(p, "/") &&
				p != ".." && !strings.HasPrefix(p, "../")
		})
		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Errorf("register %s: %w", tag, err))
	}
}

// IsQualifiedName reports whether s is a dotted C# name such as
// "Acme.Colors.Color". A trailing generic arity ("`1") is allowed.
func IsQualifiedName(s string) bool {
	s, arity, generic := strings.Cut(s, "`")
	if generic {
		if arity == "" {
			return false
		}
		for _, r := range arity {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}

// validateConfig reports every validation failure as PRJ5002 and returns
// their count.
func validateConfig(cfg *Config, f *source.File, r diag.Reporter) int {
	err := manifestValidator().Struct(cfg)
	if err == nil {
		return 0
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		diag.ReportError(r, diag.PrjManifestInvalid, fileStart(f), err.Error()).Emit()
		return 1
	}
	for _, ve := range valErrs {
		value, _ := ve.Value().(string)
		diag.ReportError(r, diag.PrjManifestInvalid, valueSpan(f, value),
			fmt.Sprintf("%s: %s", fieldPath(ve), formatValidationError(ve))).Emit()
	}
	return len(valErrs)
}

// fieldPath turns "Config.types.interface[0].name" into "types.interface[0].name".
func fieldPath(ve validator.FieldError) string {
	ns := ve.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "csname":
		return fmt.Sprintf("%q is not a qualified type name", ve.Value())
	case "implementor":
		return fmt.Sprintf("%q is not a known value kind (numeric, integral, floating-point, decimal, bool, char, string, enum, type, array or a C# keyword)", ve.Value())
	case "relpath":
		return fmt.Sprintf("%q must be a path inside the project", ve.Value())
	case "unique":
		return fmt.Sprintf("duplicate %s", strings.ToLower(ve.Param()))
	case "max":
		return fmt.Sprintf("must be at most %s characters", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
