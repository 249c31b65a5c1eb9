// Package whitelist restricts which key codes the controller may inject.
package whitelist

import (
	"errors"
	"os"
	"strings"

	"github.com/frudas24/crowdpad/internal/keymap"
	"github.com/frudas24/crowdpad/internal/wire"
)

// Validator filters requested key codes against an allowed set.
type Validator struct {
	allowed  map[string]struct{}
	ignored  []string
	fromFile bool
}

// All returns a validator that permits every canonical key code.
func All() *Validator {
	v := &Validator{allowed: make(map[string]struct{})}
	for _, code := range keymap.Canonical() {
		v.allowed[code] = struct{}{}
	}
	return v
}

// Load reads a newline-delimited whitelist. Missing files permit all codes.
func Load(path string) (*Validator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return All(), nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}

// Parse builds a validator from whitelist file contents.
func Parse(data string) *Validator {
	v := &Validator{allowed: make(map[string]struct{}), fromFile: true}
	for _, line := range strings.Split(data, "\n") {
		code := strings.TrimSpace(line)
		if code == "" || strings.HasPrefix(code, "#") {
			continue
		}
		if !keymap.IsKey(code) {
			v.ignored = append(v.ignored, code)
			continue
		}
		v.allowed[code] = struct{}{}
	}
	return v
}

// Allowed reports whether a single code may be injected.
func (v *Validator) Allowed(code string) bool {
	_, ok := v.allowed[code]
	return ok
}

// Filter splits a comma-joined key set and drops disallowed codes.
func (v *Validator) Filter(csv string) []string {
	var out []string
	for _, code := range wire.SplitCodes(csv) {
		if v.Allowed(code) {
			out = append(out, code)
		}
	}
	return out
}

// Codes returns the allowed codes in canonical order.
func (v *Validator) Codes() []string {
	var out []string
	for _, code := range keymap.Canonical() {
		if v.Allowed(code) {
			out = append(out, code)
		}
	}
	return out
}

// Ignored returns whitelist entries that are not canonical codes.
func (v *Validator) Ignored() []string {
	return append([]string(nil), v.ignored...)
}

// FromFile reports whether the validator was built from a whitelist file.
func (v *Validator) FromFile() bool {
	return v.fromFile
}
