package morph

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Analyzer is the default Parser backend. Lookup order per token: loaded
// lexicon, closed-class table, suffix heuristics, noun fallback.
type Analyzer struct {
	lexicon map[string]Token
}

// NewAnalyzer builds an analyzer. lexiconPath may be empty, in which case only
// the built-in tables and heuristics are used.
func NewAnalyzer(lexiconPath string) (*Analyzer, error) {
	a := &Analyzer{lexicon: make(map[string]Token)}
	if lexiconPath == "" {
		return a, nil
	}
	f, err := os.Open(lexiconPath)
	if err != nil {
		return nil, fmt.Errorf("opening morph lexicon: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// surface \t lemma \t pos \t feats (feats like "VerbForm=Fin|Mood=Ind")
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		tok := Token{
			Surface: fields[0],
			Lemma:   fields[1],
			POS:     fields[2],
			Feats:   map[string]string{},
		}
		if len(fields) > 3 {
			tok.Feats = parseFeats(fields[3])
		}
		a.lexicon[strings.ToLower(fields[0])] = tok
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading morph lexicon: %w", err)
	}
	return a, nil
}

func parseFeats(s string) map[string]string {
	feats := make(map[string]string)
	for _, kv := range strings.Split(s, "|") {
		if i := strings.IndexByte(kv, '='); i > 0 {
			feats[kv[:i]] = kv[i+1:]
		}
	}
	return feats
}

// Analyze tokenizes the text and assigns each token its analysis.
func (a *Analyzer) Analyze(text string) ([]Token, error) {
	var out []Token
	for _, surface := range tokenize(text) {
		out = append(out, a.analyzeToken(surface))
	}
	return out, nil
}

// tokenize splits into word runs and single punctuation tokens.
func tokenize(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’':
			cur.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			toks = append(toks, string(r))
		}
	}
	flush()
	return toks
}

func (a *Analyzer) analyzeToken(surface string) Token {
	low := strings.ToLower(surface)

	if tok, ok := a.lexicon[low]; ok {
		t := tok
		t.Surface = surface
		return t
	}
	if tok, ok := closedClass[low]; ok {
		t := tok
		t.Surface = surface
		return t
	}
	if len(surface) == 1 && !unicode.IsLetter([]rune(surface)[0]) && !unicode.IsDigit([]rune(surface)[0]) {
		return Token{Surface: surface, Lemma: surface, POS: "PUNCT", Feats: map[string]string{}}
	}
	if tok, ok := guessVerb(surface, low); ok {
		return tok
	}
	// Capitalized unknown mid-text tokens read as proper nouns.
	if r := []rune(surface); len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsLower(r[1]) {
		return Token{Surface: surface, Lemma: low, POS: "PROPN", Feats: map[string]string{}}
	}
	return Token{Surface: surface, Lemma: low, POS: "NOUN", Feats: map[string]string{}}
}

// guessVerb recognizes distinctly verbal Spanish endings and common irregular
// finite forms. Ambiguous endings (-a, -e, -an on short stems) are left to the
// noun fallback: a missed finite verb only delays a cut, while a phantom one
// creates a bad cut.
func guessVerb(surface, low string) (Token, bool) {
	if lemma, ok := irregularFinite[low]; ok {
		return Token{Surface: surface, Lemma: lemma, POS: "VERB", Feats: map[string]string{"VerbForm": "Fin", "Mood": "Ind"}}, true
	}
	for _, suf := range infinitiveSuffixes {
		if strings.HasSuffix(low, suf) && len(low) > len(suf)+1 {
			return Token{Surface: surface, Lemma: low, POS: "VERB", Feats: map[string]string{"VerbForm": "Inf"}}, true
		}
	}
	for _, suf := range gerundSuffixes {
		if strings.HasSuffix(low, suf) && len(low) > len(suf)+1 {
			return Token{Surface: surface, Lemma: low, POS: "VERB", Feats: map[string]string{"VerbForm": "Ger"}}, true
		}
	}
	for _, fs := range finiteSuffixes {
		if strings.HasSuffix(low, fs.suffix) && len(low) >= len(fs.suffix)+fs.minStem {
			feats := map[string]string{"VerbForm": "Fin", "Mood": "Ind"}
			if fs.tense != "" {
				feats["Tense"] = fs.tense
			}
			return Token{Surface: surface, Lemma: low, POS: "VERB", Feats: feats}, true
		}
	}
	return Token{}, false
}

var infinitiveSuffixes = []string{"ar", "er", "ir"}

var gerundSuffixes = []string{"ando", "iendo", "yendo"}

type finiteSuffix struct {
	suffix  string
	minStem int
	tense   string
}

var finiteSuffixes = []finiteSuffix{
	{"ábamos", 2, "Imp"},
	{"íamos", 2, "Imp"},
	{"aríamos", 2, "Cnd"},
	{"eríamos", 2, "Cnd"},
	{"aremos", 2, "Fut"},
	{"eremos", 2, "Fut"},
	{"iremos", 2, "Fut"},
	{"asteis", 2, "Past"},
	{"isteis", 2, "Past"},
	{"aron", 2, "Past"},
	{"ieron", 2, "Past"},
	{"aban", 2, "Imp"},
	{"aba", 2, "Imp"},
	{"ían", 2, "Imp"},
	{"ía", 3, "Imp"},
	{"aste", 2, "Past"},
	{"iste", 2, "Past"},
	{"amos", 3, "Pres"},
	{"emos", 3, "Pres"},
	{"imos", 3, "Pres"},
	{"arán", 2, "Fut"},
	{"erán", 2, "Fut"},
	{"irán", 2, "Fut"},
	{"ará", 2, "Fut"},
	{"erá", 2, "Fut"},
	{"irá", 2, "Fut"},
	{"aría", 2, "Cnd"},
	{"arían", 2, "Cnd"},
	{"ería", 2, "Cnd"},
	{"erían", 2, "Cnd"},
	{"ó", 3, "Past"},
	{"é", 3, "Past"},
	{"í", 3, "Past"},
}

var irregularFinite = map[string]string{
	"es": "ser", "son": "ser", "soy": "ser", "eres": "ser", "somos": "ser",
	"era": "ser", "eran": "ser", "éramos": "ser", "fue": "ser", "fui": "ser",
	"fueron": "ser", "fuimos": "ser", "sea": "ser", "sería": "ser", "será": "ser",
	"está": "estar", "están": "estar", "estoy": "estar", "estás": "estar",
	"estamos": "estar", "estaba": "estar", "estaban": "estar", "estuvo": "estar",
	"estuve": "estar", "estuvieron": "estar",
	"parece": "parecer", "parecen": "parecer", "parecía": "parecer",
	"pareció": "parecer", "parezco": "parecer",
	"hay": "haber", "ha": "haber", "han": "haber", "he": "haber", "hemos": "haber",
	"había": "haber", "habían": "haber", "hubo": "haber",
	"va": "ir", "van": "ir", "voy": "ir", "vas": "ir", "vamos": "ir",
	"iba": "ir", "iban": "ir",
	"tiene": "tener", "tienen": "tener", "tengo": "tener", "tenía": "tener",
	"tuvo": "tener", "tuve": "tener",
	"dice": "decir", "dicen": "decir", "digo": "decir", "dijo": "decir",
	"dije": "decir", "decía": "decir", "dijeron": "decir",
	"hace": "hacer", "hacen": "hacer", "hago": "hacer", "hizo": "hacer",
	"hice": "hacer", "hacía": "hacer", "hicieron": "hacer",
	"puede": "poder", "pueden": "poder", "puedo": "poder", "podía": "poder",
	"pudo": "poder",
	"quiere": "querer", "quieren": "querer", "quiero": "querer",
	"quería": "querer", "quiso": "querer",
	"sabe": "saber", "sé": "saber", "sabía": "saber", "supe": "saber",
	"doy": "dar", "da": "dar", "dan": "dar", "dio": "dar", "di": "dar", "daba": "dar",
	"veo": "ver", "ve": "ver", "ven": "ver", "vi": "ver", "vio": "ver", "veía": "ver",
}

var closedClass = buildClosedClass()

func buildClosedClass() map[string]Token {
	m := make(map[string]Token)
	add := func(pos string, words map[string]string) {
		for surface, lemma := range words {
			m[surface] = Token{Surface: surface, Lemma: lemma, POS: pos, Feats: map[string]string{}}
		}
	}
	same := func(words ...string) map[string]string {
		w := make(map[string]string, len(words))
		for _, s := range words {
			w[s] = s
		}
		return w
	}

	add("DET", map[string]string{
		"el": "el", "la": "el", "los": "el", "las": "el",
		"un": "un", "una": "un", "unos": "un", "unas": "un",
		"este": "este", "esta": "este", "estos": "este", "estas": "este",
		"ese": "ese", "esa": "ese", "esos": "ese", "esas": "ese",
		"aquel": "aquel", "aquella": "aquel", "aquellos": "aquel", "aquellas": "aquel",
		"mi": "mi", "mis": "mi", "tu": "tu", "tus": "tu", "su": "su", "sus": "su",
		"nuestro": "nuestro", "nuestra": "nuestro",
	})
	add("ADP", same("a", "de", "en", "para", "por", "con", "sin", "sobre",
		"entre", "hasta", "desde", "hacia", "según", "tras", "durante"))
	add("PRON", map[string]string{
		"yo": "yo", "me": "yo", "mí": "yo",
		"tú": "tú", "te": "tú", "ti": "tú",
		"él": "él", "ella": "él", "ellos": "él", "ellas": "él",
		"nosotros": "nosotros", "nosotras": "nosotros", "nos": "nosotros",
		"ustedes": "ustedes", "usted": "usted",
		"se": "se", "le": "le", "les": "le", "lo": "lo",
		"eso": "eso", "esto": "esto", "aquello": "aquello",
		"algo": "algo", "nada": "nada", "alguien": "alguien", "nadie": "nadie",
		"quien": "quien", "quienes": "quien", "cual": "cual", "cuales": "cual",
		"cuyo": "cuyo", "cuya": "cuyo",
	})
	add("SCONJ", map[string]string{
		"que": "que", "porque": "porque", "aunque": "aunque", "si": "si",
		"cuando": "cuando", "mientras": "mientras",
	})
	add("CCONJ", same("y", "e", "o", "u", "pero", "sino", "ni"))
	add("ADV", map[string]string{
		"no": "no", "sí": "sí", "ya": "ya", "muy": "muy", "más": "más",
		"menos": "menos", "bien": "bien", "mal": "mal", "aquí": "aquí",
		"ahí": "ahí", "allí": "allí", "allá": "allá", "así": "así",
		"entonces": "entonces", "ahora": "ahora", "siempre": "siempre",
		"nunca": "nunca", "también": "también", "tampoco": "tampoco",
		"donde": "donde", "dónde": "donde", "como": "como", "cómo": "como",
		"luego": "luego", "después": "después", "antes": "antes", "casi": "casi",
	})
	add("INTJ", same("eh", "mm", "ajá", "ah", "oh", "uy", "bueno", "pues"))
	return m
}
