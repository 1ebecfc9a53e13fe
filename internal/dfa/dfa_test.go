package dfa_test

import (
	"testing"

	"github.com/anellautari/pascalsindo/internal/dfa"
)

func TestCharCategory(t *testing.T) {
	tests := []struct {
		name string
		ch   rune
		want dfa.Category
	}{
		{"letter", 'a', dfa.CategoryLetter},
		{"digit", '7', dfa.CategoryDigit},
		{"newline", '\n', dfa.CategoryNewline},
		{"carriage-return", '\r', dfa.CategoryNewline},
		{"whitespace", ' ', dfa.CategoryWhitespace},
		{"underscore", '_', dfa.CategoryUnderscore},
		{"unknown", '@', dfa.CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dfa.CharCategory(tt.ch); got != tt.want {
				t.Errorf("CharCategory(%q) = %v, want %v", tt.ch, got, tt.want)
			}
		})
	}
}

func TestStepPrecedenceLiteralBeforeCategoryBeforeWildcard(t *testing.T) {
	rules := &dfa.Rules{
		Transitions: map[string]map[string]string{
			"S0": {
				"a":                       "literal",
				string(dfa.CategoryLetter): "category",
				dfa.Wildcard:              "wildcard",
			},
		},
	}

	if next, ok := dfa.Step("S0", 'a', rules); !ok || next != "literal" {
		t.Fatalf("Step on literal 'a' = (%q, %v), want (literal, true)", next, ok)
	}
	if next, ok := dfa.Step("S0", 'b', rules); !ok || next != "category" {
		t.Fatalf("Step on letter 'b' = (%q, %v), want (category, true)", next, ok)
	}
	if next, ok := dfa.Step("S0", '#', rules); !ok || next != "wildcard" {
		t.Fatalf("Step on '#' = (%q, %v), want (wildcard, true)", next, ok)
	}
}

func TestStepDeadEnd(t *testing.T) {
	rules := &dfa.Rules{Transitions: map[string]map[string]string{}}
	if _, ok := dfa.Step("missing", 'a', rules); ok {
		t.Fatal("Step on an unknown state: want ok=false")
	}
}

func TestFinalStateLookup(t *testing.T) {
	rules := &dfa.Rules{
		FinalStates: map[string]dfa.FinalState{
			"IDENT": {Token: "IDENTIFIER"},
			"WS":    {Token: "WHITESPACE", Ignore: true},
		},
	}

	fs, ok := rules.Final("IDENT")
	if !ok || fs.Token != "IDENTIFIER" || fs.Ignore {
		t.Fatalf("Final(IDENT) = (%+v, %v), want (IDENTIFIER, false, true)", fs, ok)
	}

	fs, ok = rules.Final("WS")
	if !ok || !fs.Ignore {
		t.Fatalf("Final(WS) = (%+v, %v), want Ignore=true", fs, ok)
	}

	if _, ok := rules.Final("nonexistent"); ok {
		t.Fatal("Final(nonexistent): want ok=false")
	}
}

func TestDefaultRulesLoad(t *testing.T) {
	rules, err := dfa.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if rules.InitialState == "" {
		t.Fatal("InitialState is empty")
	}
	if len(rules.FinalStates) == 0 {
		t.Fatal("FinalStates is empty")
	}
	if len(rules.Keywords) == 0 {
		t.Fatal("Keywords is empty")
	}
	if _, ok := rules.Transitions[rules.InitialState]; !ok {
		t.Fatal("InitialState has no transitions row")
	}
}

func TestLoadJSONRoundTripsTransitionsAndFinalStates(t *testing.T) {
	const doc = `{
		"initial_state": "S0",
		"final_states": {"S1": {"token": "IDENTIFIER", "ignore": false}},
		"transitions": {"S0": {"a": "S1"}},
		"KEYWORDS": ["program"],
		"WORD_ARITHMETIC": ["bagi"],
		"WORD_LOGICAL": ["dan"]
	}`

	rules, err := dfa.LoadJSON([]byte(doc))
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if rules.InitialState != "S0" {
		t.Errorf("InitialState = %q, want S0", rules.InitialState)
	}
	if next, ok := dfa.Step("S0", 'a', rules); !ok || next != "S1" {
		t.Errorf("Step(S0, 'a') = (%q, %v), want (S1, true)", next, ok)
	}
	fs, ok := rules.Final("S1")
	if !ok || fs.Token != "IDENTIFIER" {
		t.Errorf("Final(S1) = (%+v, %v), want IDENTIFIER", fs, ok)
	}
	if len(rules.Keywords) != 1 || rules.Keywords[0] != "program" {
		t.Errorf("Keywords = %v, want [program]", rules.Keywords)
	}
	if len(rules.WordArithmetic) != 1 || rules.WordArithmetic[0] != "bagi" {
		t.Errorf("WordArithmetic = %v, want [bagi]", rules.WordArithmetic)
	}
	if len(rules.WordLogical) != 1 || rules.WordLogical[0] != "dan" {
		t.Errorf("WordLogical = %v, want [dan]", rules.WordLogical)
	}
}

func TestLoadJSONRejectsMissingInitialState(t *testing.T) {
	const doc = `{"final_states": {}, "transitions": {}}`
	if _, err := dfa.LoadJSON([]byte(doc)); err == nil {
		t.Fatal("LoadJSON: want an error for a missing initial_state, got nil")
	}
}

func TestLoadJSONRejectsUnreachableInitialState(t *testing.T) {
	const doc = `{
		"initial_state": "S0",
		"final_states": {"S1": {"token": "IDENTIFIER"}},
		"transitions": {}
	}`
	if _, err := dfa.LoadJSON([]byte(doc)); err == nil {
		t.Fatal("LoadJSON: want an error when initial_state has no transitions row, got nil")
	}
}
