package rules

import "github.com/corpustools/corec/internal/spell"

// NewPhaseOne builds the structural cleanup engine. Rule order matters:
// parentheses and angle quotes go first so later bracket rules see a stable
// text, truncation corrections run before the generic bracket sweep would eat
// their brackets, and capitalization runs last over the settled tokens.
func NewPhaseOne(oracle spell.Oracle, dicts *Dictionaries) *Engine {
	return NewEngine(
		ParenRule{Dicts: dicts},
		AngleRule{},
		TruncationRule{},
		LexVarRule{Dicts: dicts},
		BracketRule{Dicts: dicts},
		EllipsisRule{},
		LengtheningRule{},
		CapsRule{Oracle: oracle},
	)
}

// NewPhaseTwo builds the lexical normalization engine over phase-one output.
// Colon lengthening resolves first because every later rule matches on plain
// tokens; the fusion and anonymization fixups close the pipeline.
func NewPhaseTwo(oracle spell.Oracle, dicts *Dictionaries, observed map[string]struct{}, profile DialectProfile) *Engine {
	return NewEngine(
		ColonRule{Oracle: oracle, Observed: observed, Dicts: dicts},
		ApostropheRule{Dicts: dicts},
		LexiconRule{Dicts: dicts, Profile: profile},
		FusionRule{Dicts: dicts},
		AnonymizeRule{},
	)
}
