package dfa

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

//go:embed default_rules.yaml
var defaultYAML []byte

// Default returns the compiler's built-in rules document, parsed once per
// call so callers may freely mutate the result.
func Default() (*Rules, error) {
	return LoadYAML(defaultYAML)
}

// LoadYAML parses a rules document in the YAML encoding.
func LoadYAML(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("dfa: parse YAML rules: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadJSON parses a rules document in the JSON encoding using lenient
// path-based extraction rather than strict struct unmarshaling, since the
// document's "nested mapping of strings" shape varies in how permissive
// implementations are about extra keys.
func LoadJSON(data []byte) (*Rules, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() {
		return nil, fmt.Errorf("dfa: parse JSON rules: empty or invalid document")
	}

	r := &Rules{
		InitialState: root.Get("initial_state").String(),
		FinalStates:  map[string]FinalState{},
		Transitions:  map[string]map[string]string{},
	}

	root.Get("final_states").ForEach(func(state, val gjson.Result) bool {
		r.FinalStates[state.String()] = FinalState{
			Token:  val.Get("token").String(),
			Ignore: val.Get("ignore").Bool(),
		}
		return true
	})

	root.Get("transitions").ForEach(func(state, row gjson.Result) bool {
		triggers := map[string]string{}
		row.ForEach(func(trigger, next gjson.Result) bool {
			triggers[trigger.String()] = next.String()
			return true
		})
		r.Transitions[state.String()] = triggers
		return true
	})

	for _, name := range []string{"KEYWORDS", "WORD_ARITHMETIC", "WORD_LOGICAL"} {
		var words []string
		root.Get(name).ForEach(func(_, v gjson.Result) bool {
			words = append(words, v.String())
			return true
		})
		switch name {
		case "KEYWORDS":
			r.Keywords = words
		case "WORD_ARITHMETIC":
			r.WordArithmetic = words
		case "WORD_LOGICAL":
			r.WordLogical = words
		}
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rules) validate() error {
	if r.InitialState == "" {
		return fmt.Errorf("dfa: rules document missing initial_state")
	}
	if len(r.FinalStates) == 0 {
		return fmt.Errorf("dfa: rules document has no final_states")
	}
	if _, ok := r.Transitions[r.InitialState]; !ok {
		return fmt.Errorf("dfa: initial_state %q has no transitions", r.InitialState)
	}
	return nil
}
