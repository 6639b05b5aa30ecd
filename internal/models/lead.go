package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Lead is a prospective customer record plus pipeline status.
type Lead struct {
	ID                 int64    `json:"id,omitempty"`
	Company            string   `json:"company"`
	Industry           string   `json:"industry,omitempty"`
	Location           string   `json:"location,omitempty"`
	Employees          *int     `json:"employees,omitempty"`
	EmployeesRange     string   `json:"employeesRange,omitempty"`
	Stage              string   `json:"stage,omitempty"`
	Website            string   `json:"website,omitempty"`
	Notes              string   `json:"notes,omitempty"`
	CompanyDescription string   `json:"companyDescription,omitempty"`
	Score              float64  `json:"score"`
	ScoreReason        string   `json:"scoreReason,omitempty"`
	ContactName        string   `json:"contactName,omitempty"`
	ContactRole        string   `json:"contactRole,omitempty"`
	ContactEmail       string   `json:"contactEmail,omitempty"`
	EmailSubject       string   `json:"emailSubject,omitempty"`
	EmailBody          string   `json:"emailBody,omitempty"`
	Status             string   `json:"status,omitempty"`
	Source             string   `json:"source,omitempty"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	CreatedAt          string   `json:"createdAt,omitempty"`
}

// Normalize cleans up fields that arrive as free text from imports and
// scraped discovery results. Stage single letters become "Series X";
// Employees is filled from EmployeesRange when not already set.
func (l *Lead) Normalize() {
	l.Company = strings.TrimSpace(l.Company)
	l.Stage = NormalizeStage(l.Stage)
	if l.Employees == nil && l.EmployeesRange != "" {
		l.Employees = ParseEmployees(l.EmployeesRange)
	}
}

// ParseEmployees parses an employee count from free text. Range formats
// like "1-10", "11-50", "51-200" resolve to their midpoint.
func ParseEmployees(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if strings.Contains(value, "-") {
		parts := strings.SplitN(value, "-", 2)
		low, errLow := strconv.Atoi(strings.TrimSpace(parts[0]))
		high, errHigh := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errLow != nil || errHigh != nil {
			return nil
		}
		mid := (low + high) / 2
		return &mid
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// NormalizeStage normalizes a funding stage value. Single letters like
// "a" become "Series A"; everything else is passed through trimmed.
func NormalizeStage(stage string) string {
	stage = strings.TrimSpace(stage)
	if len(stage) == 1 && unicode.IsLetter(rune(stage[0])) {
		return "Series " + strings.ToUpper(stage)
	}
	return stage
}

// Pipeline statuses, in lifecycle order.
const (
	StatusNew       = "new"
	StatusDrafted   = "drafted"
	StatusQualified = "qualified"
	StatusApproved  = "approved"
	StatusSent      = "sent"
	StatusReplied   = "replied"
	StatusClosed    = "closed"
)
