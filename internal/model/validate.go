package model

import (
	"fmt"
	"slices"
	"strings"
)

var (
	fitFields      = []string{"interface", "protect", "func", "defaults"}
	predictFields  = []string{"pre", "post", "func", "args"}
	encodingFields = []string{"predictor_indicators", "compute_intercept", "remove_intercept", "allow_sparse_x"}
)

// validateName checks a model, engine, mode, package or argument name.
func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Message: "must be a single non-empty string"}
	}
	if value != strings.TrimSpace(value) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%q has leading or trailing whitespace", value)}
	}
	return nil
}

// validateCall checks an invocation descriptor.
func validateCall(field string, c Call) error {
	if strings.TrimSpace(c.Func) == "" {
		return &ValidationError{Field: field, Message: "a function name (fun) is required"}
	}
	if c.Package != "" {
		if err := validateName(field+".pkg", c.Package); err != nil {
			return err
		}
	}
	if c.Trans != "" && !slices.Contains(Transforms, c.Trans) {
		return &ValidationError{Field: field + ".trans", Message: fmt.Sprintf("unknown transform %q; should be one of %s", c.Trans, quoteJoin(Transforms))}
	}
	if c.Range != nil {
		if len(c.Range) != 2 {
			return &ValidationError{Field: field + ".range", Message: fmt.Sprintf("must have a lower and an upper bound, got %d values", len(c.Range))}
		}
		if c.Range[0] > c.Range[1] {
			return &ValidationError{Field: field + ".range", Message: fmt.Sprintf("lower bound %v exceeds upper bound %v", c.Range[0], c.Range[1])}
		}
	}
	return nil
}

// validateArg checks an argument mapping.
func validateArg(arg ArgSpec) error {
	if err := validateName("argument name", arg.Name); err != nil {
		return err
	}
	if err := validateName("original argument name", arg.Original); err != nil {
		return err
	}
	return validateCall("argument func", arg.Func)
}

// validateFit checks the shape of a fit module.
func validateFit(fit FitModule) error {
	var problems []string

	switch {
	case fit.Interface == "":
		problems = append(problems, "interface is missing")
	case !fit.Interface.Valid():
		problems = append(problems, fmt.Sprintf("interface %q should be one of %s", fit.Interface, quoteJoin(toStrings(Interfaces))))
	}
	if err := validateCall("func", fit.Func); err != nil {
		problems = append(problems, err.Error())
	}

	seen := make(map[string]bool, len(fit.Protect))
	for _, name := range fit.Protect {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "protect contains an empty argument name")
			continue
		}
		if seen[name] {
			problems = append(problems, fmt.Sprintf("protect lists %q more than once", name))
		}
		seen[name] = true
	}
	for name := range fit.Defaults {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "defaults contains an unnamed entry")
		}
	}
	for name := range fit.Data {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "all data entries must be named")
		}
	}

	if len(problems) > 0 {
		return &SchemaError{Component: "fit", Required: fitFields, Problems: problems}
	}
	return nil
}

// validatePredict checks the shape of a predict module.
func validatePredict(pred PredictModule) error {
	var problems []string

	if err := validateCall("func", pred.Func); err != nil {
		problems = append(problems, err.Error())
	}
	for name := range pred.Args {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, "args contains an unnamed entry")
		}
	}

	if len(problems) > 0 {
		return &SchemaError{Component: "predict", Required: predictFields, Problems: problems}
	}
	return nil
}

// validatePredictType checks t against the fixed prediction types.
func validatePredictType(t PredictType) error {
	if !t.Valid() {
		return &ValidationError{
			Field:   "prediction type",
			Message: fmt.Sprintf("%q should be one of %s", t, quoteJoin(toStrings(PredictTypes))),
		}
	}
	return nil
}

// validateEncoding checks the shape of encoding options.
func validateEncoding(enc Encoding) error {
	switch {
	case enc.PredictorIndicators == "":
		return &SchemaError{Component: "encoding", Required: encodingFields, Problems: []string{"predictor_indicators is missing"}}
	case !enc.PredictorIndicators.Valid():
		return &SchemaError{
			Component: "encoding",
			Required:  encodingFields,
			Problems: []string{fmt.Sprintf("predictor_indicators %q should be one of %s",
				enc.PredictorIndicators, quoteJoin(toStrings(IndicatorOptions)))},
		}
	}
	return nil
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
