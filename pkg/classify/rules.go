package classify

import (
	"github.com/arthur-debert/skillsync/pkg/errors"
	"github.com/arthur-debert/skillsync/pkg/logging"
	"github.com/arthur-debert/skillsync/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
)

// Rule maps an item-name glob pattern to a disposition. Patterns use
// doublestar syntax, so "vault-*" and "*-draft" both work.
type Rule struct {
	Pattern     string
	Disposition types.Disposition
}

// Rules is a decider driven by configured name patterns. The first
// matching rule wins; items matching no rule fall through to the next
// decider, typically the interactive prompt.
type Rules struct {
	rules    []Rule
	fallback Decider
}

// NewRules builds a rule-based decider. A nil fallback skips unmatched
// items.
func NewRules(rules []Rule, fallback Decider) *Rules {
	if fallback == nil {
		fallback = SkipAll()
	}
	return &Rules{rules: rules, fallback: fallback}
}

func (r *Rules) Decide(item types.Item) (types.Disposition, error) {
	logger := logging.GetLogger("classify.rules")

	for _, rule := range r.rules {
		ok, err := doublestar.Match(rule.Pattern, item.Name)
		if err != nil {
			return types.DispositionSkip, errors.Wrapf(err, errors.ErrConfigValid, "bad classification pattern %q", rule.Pattern)
		}
		if ok {
			logger.Debug().Str("item", item.Name).Str("pattern", rule.Pattern).
				Str("disposition", string(rule.Disposition)).Msg("rule matched")
			return rule.Disposition, nil
		}
	}

	return r.fallback.Decide(item)
}
