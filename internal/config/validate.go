// This file adds a lightweight linter for Pipeline values: static checks
// over a decoded Pipeline returning a list of issues (errors and warnings)
// that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but does not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "source.kind",
// "clean[3].options.column"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the slice is SeverityError.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
//
//	var p config.Pipeline
//	if err := json.Unmarshal(data, &p); err != nil { ... }
//	for _, iss := range config.ValidatePipeline(p) {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and identifies runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateClean(p.Clean)...)
	issues = append(issues, validateSinks(p.Sinks)...)

	return issues
}

// validateSource validates Source configuration.
func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	// Unknown kinds are warnings, for forward compatibility.
	known := map[string]struct{}{
		"csv":  {},
		"xlsx": {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching reader exists", s.Kind),
		})
	}

	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.path",
			Message:  "source requires a non-empty path",
		})
	}

	switch s.Kind {
	case "csv":
		if c := s.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.options.comma",
				Message:  fmt.Sprintf("comma must be a single character, got %q", c),
			})
		}
	case "xlsx":
		// Sheet defaults to the workbook's first sheet; nothing to check.
	}

	return issues
}

// validateClean validates the cleaning chain. Checks are intentionally
// light: presence of the options a step cannot run without, not full
// semantic validation (the step itself is the source of truth).
func validateClean(steps []Step) []Issue {
	var issues []Issue

	if len(steps) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "clean",
			Message:  "no cleaning steps configured; the input will be written back unchanged",
		})
		return issues
	}

	knownKinds := map[string]struct{}{
		"dedupe":       {},
		"drop_columns": {},
		"trim_edges":   {},
		"clean_phone":  {},
		"split_column": {},
		"map_values":   {},
		"fill_null":    {},
		"drop_where":   {},
		"drop_empty":   {},
		"reindex":      {},
	}

	for i, st := range steps {
		path := fmt.Sprintf("clean[%d].kind", i)
		if strings.TrimSpace(st.Kind) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "clean step kind must not be empty",
			})
			continue
		}
		if _, ok := knownKinds[st.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("unknown clean kind %q; ensure a matching step exists", st.Kind),
			})
		}

		opt := func(name string) string { return fmt.Sprintf("clean[%d].options.%s", i, name) }
		switch st.Kind {
		case "drop_columns", "trim_edges":
			if len(st.Options.StringSlice("columns")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("columns"),
					Message:  st.Kind + " requires a non-empty columns list",
				})
			}
		case "clean_phone", "drop_empty":
			if st.Options.String("column", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("column"),
					Message:  st.Kind + " requires a column",
				})
			}
		case "split_column":
			if st.Options.String("column", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("column"),
					Message:  "split_column requires a column",
				})
			}
			if len(st.Options.StringSlice("into")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("into"),
					Message:  "split_column requires destination columns in into",
				})
			}
		case "map_values":
			if st.Options.String("column", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("column"),
					Message:  "map_values requires a column",
				})
			}
			if len(st.Options.StringMap("mapping")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     opt("mapping"),
					Message:  "map_values has an empty mapping; the step will be a no-op",
				})
			}
		case "drop_where":
			if st.Options.String("column", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     opt("column"),
					Message:  "drop_where requires a column",
				})
			}
			if st.Options.Any("equals") == nil {
				issues = append(issues, Issue{
					Severity: SeverityWarning,
					Path:     opt("equals"),
					Message:  "drop_where has no equals value; it will match empty strings only",
				})
			}
		}
	}

	return issues
}

// validateSinks validates sink configuration.
func validateSinks(sinks []Sink) []Issue {
	var issues []Issue

	if len(sinks) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "sinks",
			Message:  "no sinks configured; the cleaned table will be discarded",
		})
		return issues
	}

	known := map[string]struct{}{
		"csv":      {},
		"xlsx":     {},
		"sqlite":   {},
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
	}
	for i, s := range sinks {
		path := fmt.Sprintf("sinks[%d]", i)
		if strings.TrimSpace(s.Kind) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  "sink kind must not be empty",
			})
			continue
		}
		if _, ok := known[s.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + ".kind",
				Message:  fmt.Sprintf("unknown sink kind %q; ensure a matching backend is registered", s.Kind),
			})
		}

		switch s.Kind {
		case "csv", "xlsx":
			if s.Options.String("path", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.path",
					Message:  s.Kind + " sink requires a path",
				})
			}
		case "sqlite", "postgres", "mysql", "mssql":
			if s.Options.String("dsn", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.dsn",
					Message:  s.Kind + " sink requires a dsn",
				})
			}
			if s.Options.String("table", "") == "" {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.table",
					Message:  s.Kind + " sink requires a table",
				})
			}
		}
	}

	return issues
}
