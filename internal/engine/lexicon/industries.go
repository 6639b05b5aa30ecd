package lexicon

// IndustryRelevance maps an industry to its three ranked problems and three
// ranked services. Entries keeps insertion order so partial matching stays
// deterministic; Default covers unmapped industries.
type IndustryRelevance struct {
	Problems []string
	Services []string
}

type industryEntry struct {
	Key       string
	Relevance IndustryRelevance
}

var industryEntries = []industryEntry{
	{
		Key: "real estate",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Executive leadership becoming operational bottlenecks",
				"Teams operating with guesswork due to lack of documented processes",
				"Inability to delegate effectively due to missing infrastructure",
			},
			Services: []string{
				"Operating System Audit & Priority Roadmap",
				"System Design, Documentation & Implementation (SOPs, workflows, templates)",
				"Management Structure with Defined Roles and Ownership",
			},
		},
	},
	{
		Key: "beauty",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Growth stalling because execution fails under complexity",
				"Systems that never materialize because leadership lacks capacity to build them",
				"Founder burnout from 60+ hour weeks",
			},
			Services: []string{
				"Capacity Planning & Leadership Bandwidth Optimization",
				"Team Workflows, Change Management, Onboarding & Training",
				"Performance Measurement & Accountability Systems (KPIs, dashboards)",
			},
		},
	},
	{
		Key: "travel",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Inconsistent execution across the organization",
				"Teams operating with guesswork due to lack of documented processes",
				"Executive leadership becoming operational bottlenecks",
			},
			Services: []string{
				"System Design, Documentation & Implementation (SOPs, workflows, templates)",
				"Team Workflows, Change Management, Onboarding & Training",
				"Future Roadmap & Growth Planning",
			},
		},
	},
	{
		Key: "wellness",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Founder burnout from 60+ hour weeks",
				"Growth stalling because execution fails under complexity",
				"Inability to delegate effectively due to missing infrastructure",
			},
			Services: []string{
				"6-Month Operational Co-Founder Partnership: Full operational audit, system design, documentation, implementation, and transfer",
				"Capacity Planning & Leadership Bandwidth Optimization",
				"Management Structure with Defined Roles and Ownership",
			},
		},
	},
	{
		Key: "wellness & fitness",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Founder burnout from 60+ hour weeks",
				"Growth stalling because execution fails under complexity",
				"Inability to delegate effectively due to missing infrastructure",
			},
			Services: []string{
				"6-Month Operational Co-Founder Partnership: Full operational audit, system design, documentation, implementation, and transfer",
				"Capacity Planning & Leadership Bandwidth Optimization",
				"Management Structure with Defined Roles and Ownership",
			},
		},
	},
	{
		Key: "healthcare",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Inconsistent execution across the organization",
				"Systems that never materialize because leadership lacks capacity to build them",
				"Executive leadership becoming operational bottlenecks",
			},
			Services: []string{
				"System Design, Documentation & Implementation (SOPs, workflows, templates)",
				"Performance Measurement & Accountability Systems (KPIs, dashboards)",
				"Team Workflows, Change Management, Onboarding & Training",
			},
		},
	},
	{
		Key: "media",
		Relevance: IndustryRelevance{
			Problems: []string{
				"Founder burnout from 60+ hour weeks",
				"Teams operating with guesswork due to lack of documented processes",
				"Inability to delegate effectively due to missing infrastructure",
			},
			Services: []string{
				"Capacity Planning & Leadership Bandwidth Optimization",
				"System Design, Documentation & Implementation (SOPs, workflows, templates)",
				"Management Structure with Defined Roles and Ownership",
			},
		},
	},
}

// DefaultRelevance covers industries not present in the table.
var DefaultRelevance = IndustryRelevance{
	Problems: []string{
		"Executive leadership becoming operational bottlenecks",
		"Growth stalling because execution fails under complexity",
		"Systems that never materialize because leadership lacks capacity to build them",
	},
	Services: []string{
		"Operating System Audit & Priority Roadmap",
		"System Design, Documentation & Implementation (SOPs, workflows, templates)",
		"Capacity Planning & Leadership Bandwidth Optimization",
	},
}

// IndustryKeys returns the table keys in insertion order.
func IndustryKeys() []string {
	keys := make([]string, 0, len(industryEntries))
	for _, e := range industryEntries {
		keys = append(keys, e.Key)
	}
	return keys
}

// LookupIndustry returns the relevance entry for an exact key match.
func LookupIndustry(key string) (IndustryRelevance, bool) {
	for _, e := range industryEntries {
		if e.Key == key {
			return e.Relevance, true
		}
	}
	return IndustryRelevance{}, false
}
