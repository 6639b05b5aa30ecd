// Package lexicon holds the fixed vocabulary used for signal matching.
//
// Every list is an ordered set of lowercase phrases. Matching everywhere is
// case-insensitive substring containment against normalized input text; no
// stemming, no tokenization. Operators audit and extend these lists by hand,
// so they stay data, not code.
package lexicon

// FounderLed flags a founder-led business that has outpaced its own
// infrastructure.
var FounderLed = []string{
	"founder-led",
	"founder led",
	"founder owned",
	"owner-operated",
	"owner operated",
	"ceo does everything",
	"founder still doing",
	"outpaced",
	"outgrown",
	"no systems",
	"no infrastructure",
	"infrastructure gap",
	"lacks infrastructure",
	"still founder-run",
	"founder runs",
	"founder is the bottleneck",
	"founder bottleneck",
	"leadership bottleneck",
}

// RevenueScale flags $10M+ revenue or clear scaling-complexity language.
var RevenueScale = []string{
	"10m+",
	"$10m",
	"10 million",
	"eight figure",
	"eight-figure",
	"multi-million",
	"scaling revenue",
	"revenue growth",
	"seven figure",
	"7-figure",
	"8-figure",
	"growing fast",
	"rapid growth",
	"scale-up",
	"scale up",
	"high growth",
	"hypergrowth",
}

// Burnout flags founder burnout risk: 60+ hours/week, overwhelmed, can't
// delegate.
var Burnout = []string{
	"60+ hours",
	"60 hours",
	"70 hours",
	"80 hours",
	"working 60",
	"working 70",
	"working 80",
	"burnout",
	"burned out",
	"burnt out",
	"wearing all hats",
	"wearing every hat",
	"doing everything",
	"can't delegate",
	"cannot delegate",
	"stretched thin",
	"overwhelmed founder",
	"stretched too thin",
}

// EarlyStage flags early-stage or pre-revenue companies.
var EarlyStage = []string{
	"pre-revenue",
	"pre revenue",
	"no revenue",
	"idea stage",
	"concept stage",
	"pre-launch",
	"pre launch",
	"not yet launched",
	"early stage",
	"just starting",
	"just launched",
	"newly launched",
}

// Lifestyle flags lifestyle operations: not scaling, not founder-led growth.
var Lifestyle = []string{
	"lifestyle business",
	"lifestyle brand",
	"solopreneur",
	"solo business",
	"one-person shop",
	"one person shop",
	"freelancer",
	"self-employed",
	"hobby business",
	"side project",
	"side hustle",
	"part-time business",
}

// Negative flags explicit not-a-fit signals. These are only matched against
// the operator-authored notes field, never scraped descriptions.
var Negative = []string{
	"only hiring brokers",
	"only hiring analysts",
	"only hiring for sales",
	"only hiring sales",
	"only hiring agents",
	"no immediate hiring for strategy",
	"no immediate hiring for ops",
	"no immediate hiring for strateg",
	"no immediate need",
	"no overlap",
	"not a fit",
	"not interested",
	"no operational need",
	"no plans to hire",
	"no need for",
	"downsizing",
	"laying off",
	"restructuring",
}

// StrongPositive flags an explicit service need expressed in notes.
var StrongPositive = []string{
	"hot lead",
	"strong lead",
	"needs procurement",
	"needs supply",
	"needs operations",
	"needs ops",
	"needs strategy",
	"needs logistics",
	"needs project manager",
	"needs senior consultant",
	"needs coordinator",
	"needs director",
	"needs manager",
	"in need of supply",
	"in need of strategy",
	"in need of operations",
	"in need of ops",
	"in need of logistics",
	"urgent need",
	"immediate need",
}

// OpsKeywords is the weaker, general operational-context signal.
var OpsKeywords = []string{
	"ops",
	"operations",
	"scaling",
	"scale",
	"growth",
	"growing",
	"expand",
	"expansion",
	"coordinator",
	"manager",
	"director",
	"looking for",
}

// RegulatedIndustries are the regulated / lower-priority sectors.
var RegulatedIndustries = []string{
	"healthcare",
	"real estate",
	"regulated",
}

// StageEarlyIndicators are explicit early-stage markers in the stage field.
var StageEarlyIndicators = []string{
	"pre-revenue",
	"pre revenue",
	"pre-seed",
	"idea",
	"concept",
}

// USLocations: all 50 state names, common country indicators, and state
// abbreviations. Matching is raw substring containment; "Georgia" the
// country also matches, which operators accept as a known imprecision.
var USLocations = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado",
	"connecticut", "delaware", "florida", "georgia", "hawaii", "idaho",
	"illinois", "indiana", "iowa", "kansas", "kentucky", "louisiana",
	"maine", "maryland", "massachusetts", "michigan", "minnesota",
	"mississippi", "missouri", "montana", "nebraska", "nevada",
	"new hampshire", "new jersey", "new mexico", "new york",
	"north carolina", "north dakota", "ohio", "oklahoma", "oregon",
	"pennsylvania", "rhode island", "south carolina", "south dakota",
	"tennessee", "texas", "utah", "vermont", "virginia", "washington",
	"west virginia", "wisconsin", "wyoming", "district of columbia",
	// Common abbreviations and indicators
	"usa", "united states", "u.s.", "us",
	// State abbreviations
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga", "hi", "id",
	"il", "in", "ia", "ks", "ky", "la", "me", "md", "ma", "mi", "mn", "ms",
	"mo", "mt", "ne", "nv", "nh", "nj", "nm", "ny", "nc", "nd", "oh", "ok",
	"or", "pa", "ri", "sc", "sd", "tn", "tx", "ut", "vt", "va", "wa", "wv",
	"wi", "wy", "dc",
}
