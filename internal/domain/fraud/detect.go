package fraud

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword sets used to turn free-text generator output into risk factors.
// The lists and the suppression rule (any high keyword present suppresses all
// medium keywords) are part of the observable contract; do not reorder.
var highRiskKeywords = []string{
	"suspicious", "fraudulent", "fake", "template", "inconsistent",
	"invalid", "incorrect", "missing", "red flag", "concerning",
}

var mediumRiskKeywords = []string{
	"unusual", "inconsistent", "questionable", "unclear", "generic",
}

// ExtractContentRisks scans generator output for the fixed keyword sets.
// One factor per matched keyword.
func ExtractContentRisks(analysis string, category Category) []RiskFactor {
	lower := strings.ToLower(analysis)
	risks := make([]RiskFactor, 0, 4)

	highHit := false
	for _, kw := range highRiskKeywords {
		if strings.Contains(lower, kw) {
			highHit = true
			risks = append(risks, RiskFactor{
				Category:    category,
				Severity:    SeverityHigh,
				Description: "Analysis flagged potential issue",
				Evidence:    fmt.Sprintf("Keyword: %q found in analysis", kw),
			})
		}
	}

	// Medium keywords only count when no high keyword matched anywhere,
	// so an overlapping sentence is not double-counted.
	if !highHit {
		for _, kw := range mediumRiskKeywords {
			if strings.Contains(lower, kw) {
				risks = append(risks, RiskFactor{
					Category:    category,
					Severity:    SeverityMedium,
					Description: "Analysis noted potential concern",
					Evidence:    fmt.Sprintf("Keyword: %q found in analysis", kw),
				})
			}
		}
	}

	return risks
}

// Template/placeholder patterns checked by the duplicate detector.
var templatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)template|placeholder|example|sample`),
	regexp.MustCompile(`\[INSERT.*?\]|\{.*?\}|<.*?>`),
	regexp.MustCompile(`(?i)lorem ipsum`),
	regexp.MustCompile(`(?i)www\.example\.com|example@`),
	regexp.MustCompile(`123-456-7890|555-`),
}

// TemplateRisks returns one high plagiarism factor per pattern with at least
// one hit. Evidence lists up to three matched substrings.
func TemplateRisks(content string) []RiskFactor {
	var risks []RiskFactor
	for _, re := range templatePatterns {
		matches := re.FindAllString(content, -1)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > 3 {
			matches = matches[:3]
		}
		risks = append(risks, RiskFactor{
			Category:    CategoryPlagiarism,
			Severity:    SeverityHigh,
			Description: "Template or placeholder content detected",
			Evidence:    "Found: " + strings.Join(matches, ", "),
		})
	}
	return risks
}

// JaccardSimilarity is the ratio of shared tokens to total distinct tokens
// between two texts (lower-cased, whitespace tokenized).
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

// Labeled-field patterns for the consistency checker.
var (
	businessNameRe = regexp.MustCompile(`(?i)(?:business name|company name|trading as)[\s:]*([^\n\r,;]{1,100})`)
	abnRe          = regexp.MustCompile(`(?i)(?:abn|australian business number)[\s:]*(\d{2}\s?\d{3}\s?\d{3}\s?\d{3})`)
	addressRe      = regexp.MustCompile(`(?i)(?:address|street|suburb)[\s:]*([^\n\r]{1,200})`)
	dateRe         = regexp.MustCompile(`\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}`)
)

// IdentityFields holds candidate identity values extracted from a document,
// retained for cross-document comparison by a future revision.
type IdentityFields struct {
	BusinessNames []string
	ABNs          []string
	Addresses     []string
	Dates         []string
}

// Count returns the total number of extracted values.
func (f IdentityFields) Count() int {
	return len(f.BusinessNames) + len(f.ABNs) + len(f.Addresses) + len(f.Dates)
}

// ExtractIdentityFields pulls labeled identity fields out of document text.
func ExtractIdentityFields(content string) IdentityFields {
	return IdentityFields{
		BusinessNames: captureAll(businessNameRe, content),
		ABNs:          captureAll(abnRe, content),
		Addresses:     captureAll(addressRe, content),
		Dates:         dateRe.FindAllString(content, -1),
	}
}

func captureAll(re *regexp.Regexp, s string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(s, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}
