// Package language_pair validates language codes and maps language pairs to
// and from lookup table names.
package language_pair

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
)

// Separator joins the source and target codes in a table name.
const Separator = "_"

var (
	ErrInvalidCode = errors.New("invalid language code")

	// Codes are restricted to lower-case BCP-47 shaped subtags so they can
	// never contain the separator or anything that needs escaping.
	codePattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z0-9]{2,8})*$`)
)

// Pair is an ordered (source, target) translation direction.
type Pair struct {
	Source string
	Target string
}

// String renders the pair the way it is reported to clients, e.g. "en-es".
func (p Pair) String() string {
	return p.Source + "-" + p.Target
}

// TableName returns the lookup table that holds translations for the pair.
func (p Pair) TableName() string {
	return p.Source + Separator + p.Target
}

// ValidCode reports whether code is an allowed language code.
func ValidCode(code string) bool {
	if !codePattern.MatchString(code) {
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// New validates both codes and returns the pair.
func New(source, target string) (Pair, error) {
	if !ValidCode(source) {
		return Pair{}, fmt.Errorf("%w: source %q", ErrInvalidCode, source)
	}
	if !ValidCode(target) {
		return Pair{}, fmt.Errorf("%w: target %q", ErrInvalidCode, target)
	}
	return Pair{Source: source, Target: target}, nil
}

// TableName validates the codes and returns the table name for the pair.
func TableName(source, target string) (string, error) {
	p, err := New(source, target)
	if err != nil {
		return "", err
	}
	return p.TableName(), nil
}

// ParseTableName splits a table name on its single separator. Names with no
// separator, more than one, or halves that are not valid codes are rejected.
func ParseTableName(name string) (Pair, bool) {
	parts := strings.Split(name, Separator)
	if len(parts) != 2 {
		return Pair{}, false
	}
	p, err := New(parts[0], parts[1])
	if err != nil {
		return Pair{}, false
	}
	return p, true
}
