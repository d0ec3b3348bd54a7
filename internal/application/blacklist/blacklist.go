package blacklist

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/rs/zerolog"

	"github.com/barterhub/barterhub/internal/domain/trade"
)

// ErrInvalidRule is returned for rules that are neither a shorthand nor a
// valid expression.
var ErrInvalidRule = errors.New("invalid blacklist rule")

var shorthand = regexp.MustCompile(`^([A-Za-z0-9_.\-]+)(?::(\d+))?$`)

type rule struct {
	source string
	kind   string
	data   *int
	expr   *govaluate.EvaluableExpression
}

// List blocks item stacks matching any of its rules. A rule is an item type
// ("diamond"), a type with data value ("wool:14") or an expression over
// type, data and amount ("type == 'tnt' || amount > 32").
type List struct {
	rules  []rule
	logger zerolog.Logger
}

// Parse builds a list from ';'-separated rules. Blank rules are skipped.
func Parse(joined string, logger zerolog.Logger) (*List, error) {
	var sources []string
	for _, s := range strings.Split(joined, ";") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	return New(sources, logger)
}

// New builds a list from individual rules.
func New(sources []string, logger zerolog.Logger) (*List, error) {
	l := &List{logger: logger.With().Str("service", "blacklist").Logger()}
	for _, src := range sources {
		r, err := compile(src)
		if err != nil {
			return nil, err
		}
		l.rules = append(l.rules, r)
	}
	return l, nil
}

func compile(src string) (rule, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return rule{}, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}
	if m := shorthand.FindStringSubmatch(src); m != nil {
		r := rule{source: src, kind: strings.ToLower(m[1])}
		if m[2] != "" {
			data, err := strconv.Atoi(m[2])
			if err != nil {
				return rule{}, fmt.Errorf("%w: %q: %v", ErrInvalidRule, src, err)
			}
			r.data = &data
		}
		return r, nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return rule{}, fmt.Errorf("%w: %q: %v", ErrInvalidRule, src, err)
	}
	return rule{source: src, expr: expr}, nil
}

// Len returns the number of rules.
func (l *List) Len() int {
	return len(l.rules)
}

// Blocked reports whether stack matches a rule. A rule that fails to
// evaluate blocks the stack.
func (l *List) Blocked(stack trade.ItemStack) bool {
	if stack.IsEmpty() {
		return false
	}
	for _, r := range l.rules {
		matched, err := r.matches(stack)
		if err != nil {
			l.logger.Warn().Err(err).Str("rule", r.source).Str("stack", stack.String()).Msg("blacklist rule failed")
			return true
		}
		if matched {
			return true
		}
	}
	return false
}

func (r rule) matches(stack trade.ItemStack) (bool, error) {
	if r.expr == nil {
		if !strings.EqualFold(stack.Type, r.kind) {
			return false, nil
		}
		return r.data == nil || *r.data == stack.Data, nil
	}
	result, err := r.expr.Evaluate(map[string]interface{}{
		"type":   strings.ToLower(stack.Type),
		"data":   float64(stack.Data),
		"amount": float64(stack.Amount),
	})
	if err != nil {
		return false, err
	}
	matched, ok := result.(bool)
	if !ok {
		return false, errors.New("rule did not evaluate to boolean")
	}
	return matched, nil
}
