package rag

// Fixed lexical configuration for the pipeline. These lists are package-level
// data rather than inline literals so the thresholds they drive can be tested
// independently.

// conceptStopwords are dropped during concept extraction for both questions
// and chunk text.
var conceptStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "from": {}, "with": {}, "this": {},
	"that": {}, "are": {}, "is": {}, "on": {}, "or": {}, "to": {}, "a": {},
	"an": {}, "by": {}, "at": {}, "be": {}, "been": {}, "if": {}, "as": {},
	"in": {},
}

// joinIndicators and resignIndicators together signal a probation-status
// question (joining date plus resignation/notice period).
var joinIndicators = []string{"joined", "join", "joining", "started", "start"}

var resignIndicators = []string{"resign", "resignation", "notice period", "leave the org", "quit"}

// holidayQueryIndicators signal a question that needs the holiday calendar.
var holidayQueryIndicators = []string{
	"next holiday", "upcoming holiday", "whats holiday", "what holiday",
	"which holiday", "remaining holiday", "future holiday",
}

// docListingIndicators signal a question asking what documents or policies
// the knowledge base covers.
var docListingIndicators = []string{
	"list all doc", "list doc", "all doc", "what doc", "which doc",
	"list all polic", "list polic", "all polic", "what polic", "which polic",
	"what can you help", "what info", "what information",
	"available doc", "available polic", "access to",
}

// docListingExpansion enumerates the known document names appended to the
// query for document-listing questions.
const docListingExpansion = " Holiday Calendar Probation Policy Separation Policy Hybrid Work Policy"

// multiConceptPairs lists keyword pairs whose joint presence marks a question
// as spanning multiple policy areas, which widens retrieval.
var multiConceptPairs = [][2]string{
	{"holiday", "leave"},
	{"holiday", "wfh"},
	{"hybrid", "leave"},
	{"calculate", "leave"},
	{"holidays", "days"},
	{"policy", "leave"},
	{"dec", "holidays"},
	{"december", "holidays"},
	{"january", "leave"},
	{"january", "wfh"},
	{"february", "leave"},
	{"approval", "leave"},
	{"leave", "approval"},
	{"march", "leave"}, {"april", "leave"}, {"may", "leave"},
	{"june", "leave"}, {"july", "leave"}, {"august", "leave"},
	{"september", "leave"}, {"october", "leave"}, {"november", "leave"},
	{"month", "policy"}, {"policy", "procedure"},
	{"notice", "period"}, {"resign", "notice"}, {"resignation", "notice"},
}

// monthNames and weekdayNames feed the domain-signal boost in the
// completeness scorer.
var monthNames = []string{
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
}

var weekdayNames = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// tableColumnKeywords mark well-formed table structure in chunk text.
// Matching is case-sensitive: these appear verbatim as column headers.
var tableColumnKeywords = []string{"S.No", "Date", "Holiday", "Month", "Day", "Occasion"}

// baseTitleKeywords mark short chunks as header or boilerplate noise. The
// configured company name is appended at engine construction.
var baseTitleKeywords = []string{
	"holiday calendar", "mandate holidays", "optional holidays",
	"holiday calendar 2025", "holiday calendar 2024", "holiday calendar 2023",
	"company", "address", "email", "web:", "web", "phone", "ph:",
}

// notFoundMarker is the phrase the generator emits when the context lacks an
// answer; its presence triggers the source-preview postprocessing step.
const notFoundMarker = "i couldn't find"

// blockSeparator joins chunk blocks in the assembled context.
const blockSeparator = "\n\n---\n\n"

const (
	historyHeader = "[CONVERSATION HISTORY]\n"
	historyFooter = "[END OF CONVERSATION HISTORY]\n\n"
	// maxHistoryTurns caps how many trailing conversation turns are included.
	maxHistoryTurns = 10
)

const (
	// sourcePreviewLimit bounds the citation text carried per source.
	sourcePreviewLimit = 800
	// snippetPreviewLimit bounds the per-source snippet appended to
	// "not found" answers.
	snippetPreviewLimit = 400
	// maxAnswerSnippets bounds how many snippets are appended.
	maxAnswerSnippets = 3
)

// Noise-filter thresholds.
const (
	minChunkLen             = 2
	maxTitleChars           = 120
	maxTitleWords           = 6
	titleUppercaseThreshold = 0.6
	minAlphaChars           = 3
	shortChunkLen           = 40
)

// diversityShareThreshold is the minimum share of the final context a
// contributing source must hold before it is flagged as under-represented.
const diversityShareThreshold = 0.15
