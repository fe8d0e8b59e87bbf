package ponente

import "regexp"

// rule rewrites a candidate name when its pattern matches.
type rule struct {
	name    string
	pattern *regexp.Regexp
	replace string
}

// titleSuffixes strip a trailing "C.J." or "J." designation. Chief forms are
// tried first; at most one suffix is removed.
var titleSuffixes = []rule{
	{
		name:    "chief",
		pattern: regexp.MustCompile(`(?i),?\s*(act(g\.|ing)|work(g\.|ing))?\s+c\.?\s*j\.?,?$`),
	},
	{
		name:    "ends-in-j",
		pattern: regexp.MustCompile(`(?i)((\s*,\s*j\.)|(,\s*j)|(\s+j))$`),
	},
}

// commonTypos maps known misspellings and alternate spellings to the roster
// key. Evaluated top to bottom; the first match wins and replaces the whole
// candidate.
var commonTypos = []rule{
	{"avancena", regexp.MustCompile(`(?i)^avan?((cea'a)|(cena))`), "avancena"},
	{"bengzon", regexp.MustCompile(`(?i)^bengzon[,\s]+j\W+p\W+`), "bengzon"},
	{"gonzaga-reyes", regexp.MustCompile(`(?i)^gonzaga(-|_)reyes`), "gonzaga-reyes"},
	{"melencio-herrera", regexp.MustCompile(`(?i)^melencio[\s-]+her`), "melencio-herrera"},
	{"campos jr.", regexp.MustCompile(`(?i)^campos[\s,]+jr`), "campos jr."},
	{"torres jr.", regexp.MustCompile(`(?i)^torres[\s,]+jr`), "torres jr."},
	{"villarama jr.", regexp.MustCompile(`(?i)^villarama[\s,]+jr`), "villarama jr."},
	{"concepcion jr.", regexp.MustCompile(`(?i)^conce(pc|cp)ion[\s,]+jr`), "concepcion jr."},
	{"grino-aquino", regexp.MustCompile(`(?i)gri(n|r)o[\s-]+a?quino`), "grino-aquino"},
	{"carpio-morales", regexp.MustCompile(`(?i)carpio[\s-]+morales`), "carpio-morales"},
	{"gutierrez jr.", regexp.MustCompile(`(?i)^gutierrez[\s;,]+jr`), "gutierrez jr."},
	{"de leon jr.", regexp.MustCompile(`(?i)^de[\s]+leon[\s;,]+jr`), "de leon jr."},
	{"davide jr.", regexp.MustCompile(`(?i)^davide[\s,]+jr`), "davide jr."},
	{"velasco jr.", regexp.MustCompile(`(?i)^velasco[\s,]+jr`), "velasco jr."},
	{"ynares-santiago", regexp.MustCompile(`(?i)ynares[_\s-]+san?tiago`), "ynares-santiago"},
	{"chico-nazario", regexp.MustCompile(`(?i)chico[_\s-]+nazario`), "chico-nazario"},
	{"leonardo-de castro", regexp.MustCompile(`(?i)leonardo[\s-]+de[\s-]castro`), "leonardo-de castro"},
	{"austria-martinez", regexp.MustCompile(`(?i)austria[\s-]+martinez`), "austria-martinez"},
	{"perlas-bernabe", regexp.MustCompile(`(?i)perlas[\s-]+bernabe`), "perlas-bernabe"},
	{"reyes, j.b.l.", regexp.MustCompile(`(?i)(j\W+b\W+l\W*)`), "reyes, j.b.l."},
	{"reyes, a. jr.", regexp.MustCompile(`(?i)((a\.\s+)?(reyes,\s)jr)|((reyes,\s)a\W+jr)`), "reyes, a. jr."},
	{"reyes, r.t.", regexp.MustCompile(`(?i)^reyes,\sr\.t\.?$`), "reyes, r.t."},
	{"del castillo", regexp.MustCompile(`(?i)^del[\s,-]+castillo`), "del castillo"},
	{"bautista angelo", regexp.MustCompile(`(?i)^bautista[\s,-]+a(n|u)gelo`), "bautista angelo"},
	{"teehankee", regexp.MustCompile(`(?i)^teehankee`), "teehankee"},
	{"callejo", regexp.MustCompile(`(?i)^callejo`), "callejo"},
	{"bellosillo", regexp.MustCompile(`(?i)^bellosi?illo`), "bellosillo"},
	{"makalintal", regexp.MustCompile(`(?i)^ma?kalintal`), "makalintal"},
	{"vitug", regexp.MustCompile(`(?i)^v(i|l)tug`), "vitug"},
	{"makasiar", regexp.MustCompile(`(?i)^makasiar`), "makasiar"},
	{"brion", regexp.MustCompile(`(?i)^brion`), "brion"},
	{"hermosisima", regexp.MustCompile(`(?i)^hermosisima`), "hermosisima"},
	{"villamor", regexp.MustCompile(`(?i)^v(i|l)llamor`), "villamor"},
	{"gaerlan", regexp.MustCompile(`(?i)^gaerlan[\s,]+s`), "gaerlan"},
	{"caguioa", regexp.MustCompile(`(?i)^caguioa`), "caguioa"},
	{"padilla", regexp.MustCompile(`(?i)^padilll?a`), "padilla"},
	{"willard", regexp.MustCompile(`(?i)(willl?ard)|(wlllard)`), "willard"},
	{"francisco", regexp.MustCompile(`(?i)^francisco`), "francisco"},
	{"cruz", regexp.MustCompile(`(?i)^cruz\.?$`), "cruz"},
	{"yulo", regexp.MustCompile(`(?i)^yulo\.?$`), "yulo"},
	{"arellano", regexp.MustCompile(`(?i)^arr?ell?ano`), "arellano"},
	{"zalameda", regexp.MustCompile(`(?i)^zalameda`), "zalameda"},
	{"villa-real", regexp.MustCompile(`(?i)^villa[\s-]*real`), "villa-real"},
	{"zaldivar", regexp.MustCompile(`(?i)^zaldivar`), "zaldivar"},
	{"sandoval-gutierrez", regexp.MustCompile(`(?i)^sandoval[\s-]+gutierrez`), "sandoval-gutierrez"},
	{"pablo", regexp.MustCompile(`(?i)^pablo[,\s]+m\.?`), "pablo"},
	{"horrilleno", regexp.MustCompile(`(?i)^horrilleno[,\s]+m\.?`), "horrilleno"},
	{"diokno", regexp.MustCompile(`(?i)^diokno[,\s]+m\.?`), "diokno"},
}

// stripSuffix removes the first matching title suffix.
func stripSuffix(candidate string) string {
	for _, r := range titleSuffixes {
		if r.pattern.MatchString(candidate) {
			return r.pattern.ReplaceAllString(candidate, "")
		}
	}
	return candidate
}

// fixTypo returns the replacement of the first matching typo rule.
func fixTypo(candidate string) string {
	for _, r := range commonTypos {
		if r.pattern.MatchString(candidate) {
			return r.replace
		}
	}
	return candidate
}
