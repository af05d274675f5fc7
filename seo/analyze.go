package seo

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
)

// IssueType classifies the severity of an analysis finding.
type IssueType string

const (
	IssueError   IssueType = "error"
	IssueWarning IssueType = "warning"
	IssueInfo    IssueType = "info"
)

// Issue is a single finding against the current metadata or content.
type Issue struct {
	Type       IssueType `json:"type"`
	Message    string    `json:"message"`
	Field      string    `json:"field"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// SuggestionType classifies improvement recommendations.
type SuggestionType string

const (
	SuggestionImprovement  SuggestionType = "improvement"
	SuggestionOptimization SuggestionType = "optimization"
	SuggestionBestPractice SuggestionType = "best-practice"
)

// Impact grades how much a suggestion is expected to move the score.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Suggestion is a recommended action that would improve the page's SEO.
type Suggestion struct {
	Type    SuggestionType `json:"type"`
	Message string         `json:"message"`
	Impact  Impact         `json:"impact"`
	Action  string         `json:"action,omitempty"`
}

// Performance bundles the probe's metrics with a derived score.
type Performance struct {
	Score   int                           `json:"score"`
	Metrics interfaces.PerformanceMetrics `json:"metrics"`
}

// Analysis is the full derived report for a page. It is recomputed from the
// current metadata, content, and URL on every call; never persisted and
// never mutated incrementally.
type Analysis struct {
	Score       int          `json:"score"`
	Issues      []Issue      `json:"issues"`
	Suggestions []Suggestion `json:"suggestions"`
	Readability Readability  `json:"readability"`
	Performance Performance  `json:"performance"`
}

// Analyzer computes SEO reports. The performance probe is pluggable; the
// default returns static metrics with HTTPS derived from the URL scheme.
type Analyzer struct {
	probe  interfaces.PerformanceProbe
	logger interfaces.Logger
}

// AnalyzerOption configures an Analyzer at construction time.
type AnalyzerOption func(*Analyzer)

// WithProbe overrides the performance probe.
func WithProbe(probe interfaces.PerformanceProbe) AnalyzerOption {
	return func(a *Analyzer) {
		if probe != nil {
			a.probe = probe
		}
	}
}

// WithLogger attaches a logger to the analyzer.
func WithLogger(logger interfaces.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer constructs an analyzer with the static default probe.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		probe:  StaticProbe{},
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze produces the full report for the supplied metadata and content.
// Probe failures degrade the performance block to zero rather than failing
// the analysis.
func (a *Analyzer) Analyze(ctx context.Context, data Data, content, url string) Analysis {
	report := Analysis{
		Score:       Score(data, content),
		Issues:      Issues(data, content),
		Suggestions: Suggestions(data),
		Readability: AnalyzeReadability(content),
	}

	metrics, err := a.probe.Measure(ctx, url)
	if err != nil {
		a.logger.Warn("performance probe failed", "url", url, "error", err)
		return report
	}
	report.Performance = Performance{
		Score:   performanceScore(metrics),
		Metrics: metrics,
	}
	return report
}

// Issues reports findings in a fixed order: title, description, keywords,
// then content length.
func Issues(data Data, content string) []Issue {
	var issues []Issue

	switch titleLen := utf8.RuneCountInString(data.Title); {
	case titleLen == 0:
		issues = append(issues, Issue{
			Type: IssueError, Field: "title",
			Message:    "Title is missing.",
			Suggestion: "Add a page title between 30 and 60 characters.",
		})
	case titleLen < titleMin:
		issues = append(issues, Issue{
			Type: IssueWarning, Field: "title",
			Message:    "Title is too short.",
			Suggestion: "Expand the title to at least 30 characters.",
		})
	case titleLen > titleMax:
		issues = append(issues, Issue{
			Type: IssueWarning, Field: "title",
			Message:    "Title is too long.",
			Suggestion: "Shorten the title to at most 60 characters.",
		})
	}

	switch descLen := utf8.RuneCountInString(data.Description); {
	case descLen == 0:
		issues = append(issues, Issue{
			Type: IssueError, Field: "description",
			Message:    "Meta description is missing.",
			Suggestion: "Add a description between 120 and 160 characters.",
		})
	case descLen < descriptionMin:
		issues = append(issues, Issue{
			Type: IssueWarning, Field: "description",
			Message:    "Meta description is too short.",
			Suggestion: "Expand the description to at least 120 characters.",
		})
	case descLen > descriptionMax:
		issues = append(issues, Issue{
			Type: IssueWarning, Field: "description",
			Message:    "Meta description is too long.",
			Suggestion: "Shorten the description to at most 160 characters.",
		})
	}

	if len(data.Keywords) == 0 {
		issues = append(issues, Issue{
			Type: IssueInfo, Field: "keywords",
			Message:    "No keywords defined.",
			Suggestion: "Add 3 to 10 focus keywords.",
		})
	}

	if utf8.RuneCountInString(content) < contentFull {
		issues = append(issues, Issue{
			Type: IssueWarning, Field: "content",
			Message:    "Content is shorter than 300 characters.",
			Suggestion: "Add more content so search engines can evaluate the page.",
		})
	}

	return issues
}

// Suggestions recommends the highest-leverage fixes for the metadata.
func Suggestions(data Data) []Suggestion {
	var out []Suggestion

	if data.OGTitle == "" || data.OGDescription == "" {
		out = append(out, Suggestion{
			Type:    SuggestionImprovement,
			Impact:  ImpactHigh,
			Message: "Add Open Graph title and description for better social sharing.",
			Action:  "Fill in og_title and og_description.",
		})
	}
	if data.SchemaMarkup == nil {
		out = append(out, Suggestion{
			Type:    SuggestionBestPractice,
			Impact:  ImpactMedium,
			Message: "Add structured data markup to enable rich search results.",
			Action:  "Attach schema.org JSON-LD to the page.",
		})
	}
	if len(data.Keywords) < keywordsMin {
		out = append(out, Suggestion{
			Type:    SuggestionOptimization,
			Impact:  ImpactMedium,
			Message: "Define at least 3 focus keywords.",
			Action:  "Add keywords that match the page's search intent.",
		})
	}

	return out
}

// StaticProbe is the default performance collaborator. No measurement takes
// place; HTTPS is derived from the URL and the rest is a fixed baseline.
type StaticProbe struct{}

var _ interfaces.PerformanceProbe = StaticProbe{}

// Measure implements interfaces.PerformanceProbe.
func (StaticProbe) Measure(_ context.Context, url string) (interfaces.PerformanceMetrics, error) {
	return interfaces.PerformanceMetrics{
		LoadTime:        1200 * time.Millisecond,
		ImagesOptimized: true,
		MobileFriendly:  true,
		HTTPSEnabled:    strings.HasPrefix(url, "https://"),
	}, nil
}

func performanceScore(metrics interfaces.PerformanceMetrics) int {
	score := 100
	if !metrics.HTTPSEnabled {
		score -= 20
	}
	if !metrics.ImagesOptimized {
		score -= 10
	}
	if !metrics.MobileFriendly {
		score -= 10
	}
	if metrics.LoadTime > 2*time.Second {
		score -= 20
	}
	if score < 0 {
		score = 0
	}
	return score
}
