package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// env reads typed values and keeps going after a bad one so Load can report
// every problem in one pass.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) raw(key string) (string, bool) {
	value, ok := e.lookup(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func (e *env) fail(key, value string, err error) {
	e.errs = append(e.errs, fmt.Errorf("parse %s=%q: %w", key, value, err))
}

func (e *env) require(ok bool, format string, args ...any) {
	if !ok {
		e.errs = append(e.errs, fmt.Errorf(format, args...))
	}
}

func (e *env) str(key, fallback string) string {
	if value, ok := e.raw(key); ok {
		return value
	}
	return fallback
}

func (e *env) boolean(key string, fallback bool) bool {
	value, ok := e.raw(key)
	if !ok {
		return fallback
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return out
}

func (e *env) integer(key string, fallback int) int {
	value, ok := e.raw(key)
	if !ok {
		return fallback
	}
	out, err := strconv.Atoi(value)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return out
}

func (e *env) duration(key string, fallback time.Duration) time.Duration {
	value, ok := e.raw(key)
	if !ok {
		return fallback
	}
	out, err := time.ParseDuration(value)
	if err != nil {
		e.fail(key, value, err)
		return fallback
	}
	return out
}

// list splits a comma-separated value, dropping blanks.
func (e *env) list(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(e.str(key, fallback), ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// oneOf lower-cases the value and checks it against allowed.
func (e *env) oneOf(key, fallback string, allowed ...string) string {
	value := strings.ToLower(e.str(key, fallback))
	for _, candidate := range allowed {
		if value == candidate {
			return value
		}
	}
	e.errs = append(e.errs, fmt.Errorf("invalid %s %q: valid values are %s", key, value, strings.Join(allowed, ", ")))
	return fallback
}
