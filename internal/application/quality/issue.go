package quality

import (
	"fmt"
	"strings"
)

// Reason codes for row-level data quality issues
const (
	ReasonMissingKey          = "MISSING_KEY"
	ReasonDuplicateKey        = "DUPLICATE_KEY"
	ReasonMalformedDate       = "MALFORMED_DATE"
	ReasonDateOutOfRange      = "DATE_OUT_OF_RANGE"
	ReasonFutureBirthdate     = "FUTURE_BIRTHDATE"
	ReasonUnrepairableMeasure = "UNREPAIRABLE_MEASURE"
	ReasonDivisionByZero      = "DIVISION_BY_ZERO"
	ReasonOrphanReference     = "ORPHAN_REFERENCE"
	ReasonExtractParsing      = "EXTRACT_PARSING"
	ReasonExtractInvalidType  = "EXTRACT_INVALID_TYPE"
	ReasonExtractRequired     = "EXTRACT_REQUIRED_FIELD"
)

// Issue describes a single data quality finding on a specific row. Issues are
// values, never errors: one bad row must not abort the batch.
type Issue struct {
	Key     string `json:"key"`    // business identifier of the offending row, if known
	Field   string `json:"field"`  // field the issue concerns, empty for row-level issues
	Reason  string `json:"reason"` // one of the Reason constants
	Message string `json:"message"`
	Value   string `json:"value,omitempty"` // offending value, for the report
}

// Error implements the error interface so issues can be logged uniformly
func (i Issue) Error() string {
	if i.Field != "" {
		return fmt.Sprintf("row %q, field %q: %s", i.Key, i.Field, i.Message)
	}
	return fmt.Sprintf("row %q: %s", i.Key, i.Message)
}

// NewIssue creates a new Issue
func NewIssue(key, field, reason, message string) Issue {
	return Issue{
		Key:     key,
		Field:   field,
		Reason:  reason,
		Message: message,
	}
}

// NewIssueWithValue creates a new Issue retaining the offending value
func NewIssueWithValue(key, field, reason, message, value string) Issue {
	return Issue{
		Key:     key,
		Field:   field,
		Reason:  reason,
		Message: message,
		Value:   value,
	}
}

// IssueCollection accumulates issues up to a bound, keeping the total count
// so the report can state how many findings were truncated.
type IssueCollection struct {
	issues     []Issue
	maxIssues  int
	totalCount int
}

// NewIssueCollection creates an IssueCollection with a maximum retained size
func NewIssueCollection(maxIssues int) *IssueCollection {
	if maxIssues <= 0 {
		maxIssues = 100
	}
	return &IssueCollection{
		issues:    make([]Issue, 0, maxIssues),
		maxIssues: maxIssues,
	}
}

// Add records an issue
func (c *IssueCollection) Add(issue Issue) {
	c.totalCount++
	if len(c.issues) < c.maxIssues {
		c.issues = append(c.issues, issue)
	}
}

// AddAll records a batch of issues
func (c *IssueCollection) AddAll(issues []Issue) {
	for _, issue := range issues {
		c.Add(issue)
	}
}

// Issues returns the retained issues
func (c *IssueCollection) Issues() []Issue {
	return c.issues
}

// Count returns the number of retained issues
func (c *IssueCollection) Count() int {
	return len(c.issues)
}

// TotalCount returns the total number of issues including truncated ones
func (c *IssueCollection) TotalCount() int {
	return c.totalCount
}

// HasIssues returns true if anything was recorded
func (c *IssueCollection) HasIssues() bool {
	return c.totalCount > 0
}

// IsTruncated returns true if some issues were dropped due to the bound
func (c *IssueCollection) IsTruncated() bool {
	return c.totalCount > c.maxIssues
}

// Summary returns issue counts grouped by reason code
func (c *IssueCollection) Summary() map[string]int {
	summary := make(map[string]int)
	for _, issue := range c.issues {
		summary[issue.Reason]++
	}
	return summary
}

// String renders the collection for log output
func (c *IssueCollection) String() string {
	if !c.HasIssues() {
		return "no issues"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d issue(s) found", c.totalCount))
	if c.IsTruncated() {
		sb.WriteString(fmt.Sprintf(" (showing first %d)", c.maxIssues))
	}
	sb.WriteString(":\n")
	for _, issue := range c.issues {
		sb.WriteString("  - " + issue.Error() + "\n")
	}
	return sb.String()
}
