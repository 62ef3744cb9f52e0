package rewrite

import "github.com/rs/zerolog/log"

// Phase is an ordered group of rules covering one category of renames.
// Phase order is load-bearing: later phases match against the output of
// earlier ones. The relation field name rules, for example, only match
// once the relation type rules have rewritten the types they reference.
type Phase struct {
	Name  string
	Rules []Rule
}

// Run applies every phase in order, threading the document text through
// each rule, and returns the rewritten text plus one change record per
// rule that matched, in application order. A rule that finds no match
// is skipped silently: an absent pattern means the rewrite was already
// applied or never applied to this document, not an error.
func Run(doc string, phases []Phase) (string, []Change) {
	var clog changeLog
	for _, p := range phases {
		log.Debug().Str("phase", p.Name).Int("rules", len(p.Rules)).Msg("phase started")
		for _, r := range p.Rules {
			next, matched, count := r.Apply(doc)
			if !matched {
				continue
			}
			doc = next
			clog.add(r, count)
			log.Debug().
				Str("phase", p.Name).
				Str("change", r.Description).
				Int("count", count).
				Msg("rule matched")
		}
	}
	return doc, clog.changes
}
