package overlap

import (
	"encoding/json"
	"fmt"

	"github.com/revelaction/segfact/relation"
)

// Map returns the report as a mapping of the report keys to the 0/1
// indicators and, if present, the literal overlapping sets (sorted slices of
// lemma tuples or lemmas).
func (r Report) Map() map[string]any {
	m := map[string]any{
		KeyVSOInd:          r.VSO,
		KeyVSInd:           r.VS,
		KeyVSPassivizedInd: r.VSPassivized,
		KeyNounInd:         r.Noun,
		KeyPropnInd:        r.Propn,
	}

	if r.Matches == nil {
		return m
	}

	m[KeyVSO] = tupleLemmas(relation.Sorted(r.Matches.VSO))
	m[KeyVS] = tupleLemmas(relation.Sorted(r.Matches.VS))
	m[KeyVSPassivized] = tupleLemmas(relation.Sorted(r.Matches.VSPassivized))
	m[KeyNoun] = relation.SortedLemmas(r.Matches.Nouns)
	m[KeyPropn] = relation.SortedLemmas(r.Matches.Propns)
	return m
}

func tupleLemmas[T relation.Tuple](tuples []T) [][]string {
	out := make([][]string, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, t.Lemmas())
	}
	return out
}

// Any reports whether at least one indicator is set.
func (r Report) Any() bool {
	return r.VSO+r.VS+r.VSPassivized+r.Noun+r.Propn > 0
}

func (r Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

type reportJSON struct {
	VSOInd          int        `json:"vso_intersec_ind"`
	VSInd           int        `json:"vs_intersec_ind"`
	VSPassivizedInd int        `json:"vs_passivized_intersec_ind"`
	NounInd         int        `json:"noun_intersec_ind"`
	PropnInd        int        `json:"propn_intersec_ind"`
	VSO             [][]string `json:"vso_intersec"`
	VS              [][]string `json:"vs_intersec"`
	VSPassivized    [][]string `json:"vs_passivized_intersec"`
	Noun            []string   `json:"noun_intersec"`
	Propn           []string   `json:"propn_intersec"`
}

func (r *Report) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var in reportJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*r = Report{
		VSO:          in.VSOInd,
		VS:           in.VSInd,
		VSPassivized: in.VSPassivizedInd,
		Noun:         in.NounInd,
		Propn:        in.PropnInd,
	}

	if _, ok := raw[KeyVSO]; !ok {
		return nil
	}

	m := &Matches{
		VSO:          make(relation.Set[relation.VSO]),
		VS:           make(relation.Set[relation.VS]),
		VSPassivized: make(relation.Set[relation.VS]),
		Nouns:        relation.NewSet(in.Noun...),
		Propns:       relation.NewSet(in.Propn...),
	}

	for _, t := range in.VSO {
		if len(t) != 3 {
			return fmt.Errorf("%s: expected 3 lemmas, got %d", KeyVSO, len(t))
		}
		m.VSO.Add(relation.VSO{Verb: t[0], Subject: t[1], Object: t[2]})
	}

	for key, tuples := range map[string][][]string{KeyVS: in.VS, KeyVSPassivized: in.VSPassivized} {
		set := m.VS
		if key == KeyVSPassivized {
			set = m.VSPassivized
		}
		for _, t := range tuples {
			if len(t) != 2 {
				return fmt.Errorf("%s: expected 2 lemmas, got %d", key, len(t))
			}
			set.Add(relation.VS{Verb: t[0], Subject: t[1]})
		}
	}

	r.Matches = m
	return nil
}
