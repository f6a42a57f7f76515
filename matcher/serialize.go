package matcher

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/jonwraymond/fuzzmatch/search"
	"github.com/jonwraymond/fuzzmatch/token"
)

// MarshalPatterns renders a phrase matcher's pattern set as JSON. Each
// entry carries the label, the pattern's raw text, and its config when
// one was supplied at Add time. Matcher defaults and callbacks are not
// part of the wire form.
func MarshalPatterns(m *Matcher) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []byte(`{"patterns":[]}`)
	var err error
	for _, label := range m.order {
		for _, p := range m.patterns[label] {
			entry := []byte(`{}`)
			if entry, err = sjson.SetBytes(entry, "label", label); err != nil {
				return nil, err
			}
			if entry, err = sjson.SetBytes(entry, "text", p.seq.Text()); err != nil {
				return nil, err
			}
			if p.cfg != nil {
				if entry, err = setConfig(entry, p.cfg); err != nil {
					return nil, err
				}
			}
			if out, err = sjson.SetRawBytes(out, "patterns.-1", entry); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// UnmarshalPatterns rebuilds a phrase matcher from MarshalPatterns
// output. Pattern text is re-tokenized on whitespace.
func UnmarshalPatterns(data []byte, opts Options) (*Matcher, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed pattern JSON", search.ErrConfig)
	}
	m := New(opts)

	var addErr error
	gjson.GetBytes(data, "patterns").ForEach(func(_, entry gjson.Result) bool {
		label := entry.Get("label").String()
		text := entry.Get("text").String()
		if label == "" || text == "" {
			addErr = fmt.Errorf("%w: pattern entry missing label or text", search.ErrConfig)
			return false
		}
		var cfgs []*search.Config
		if entry.Get("config").Exists() {
			cfg, err := parseConfig(entry.Get("config"))
			if err != nil {
				addErr = err
				return false
			}
			cfgs = []*search.Config{cfg}
		}
		addErr = m.Add(label, []*token.Sequence{token.Split(text)}, cfgs)
		return addErr == nil
	})
	if addErr != nil {
		return nil, addErr
	}
	return m, nil
}

// setConfig writes a search config under the "config" key of a pattern
// entry.
func setConfig(entry []byte, cfg *search.Config) ([]byte, error) {
	var err error
	set := func(key string, value any) {
		if err != nil {
			return
		}
		entry, err = sjson.SetBytes(entry, "config."+key, value)
	}
	set("comparator", cfg.Comparator)
	set("case_sensitive", cfg.CaseSensitive)
	set("flex", cfg.Flex.String())
	set("min_r", cfg.MinR)
	set("min_r1", cfg.MinR1)
	set("min_r2", cfg.MinR2)
	set("thresh", cfg.Thresh)
	set("weight_profile", cfg.WeightProfile)
	set("limit", cfg.Limit)
	return entry, err
}

// parseConfig reads a search config back out of its JSON form. Absent
// ratio fields come back Unset, matching a hand-built config that never
// touched them.
func parseConfig(res gjson.Result) (*search.Config, error) {
	cfg := search.Config{
		Comparator:    res.Get("comparator").String(),
		CaseSensitive: res.Get("case_sensitive").Bool(),
		MinR:          intOr(res.Get("min_r"), search.Unset),
		MinR1:         intOr(res.Get("min_r1"), search.Unset),
		MinR2:         intOr(res.Get("min_r2"), search.Unset),
		Thresh:        intOr(res.Get("thresh"), search.Unset),
		WeightProfile: res.Get("weight_profile").String(),
		Limit:         int(res.Get("limit").Int()),
	}
	flex, err := search.ParseFlex(res.Get("flex").String())
	if err != nil {
		return nil, err
	}
	cfg.Flex = flex
	return &cfg, nil
}

func intOr(res gjson.Result, fallback int) int {
	if !res.Exists() {
		return fallback
	}
	return int(res.Int())
}
