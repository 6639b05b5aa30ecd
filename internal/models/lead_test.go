package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmployees(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *int
	}{
		{name: "empty", value: "", want: nil},
		{name: "whitespace only", value: "   ", want: nil},
		{name: "plain number", value: "42", want: intPtr(42)},
		{name: "padded number", value: " 120 ", want: intPtr(120)},
		{name: "small range", value: "1-10", want: intPtr(5)},
		{name: "mid range", value: "11-50", want: intPtr(30)},
		{name: "large range", value: "51-200", want: intPtr(125)},
		{name: "range with spaces", value: "51 - 200", want: intPtr(125)},
		{name: "garbage", value: "about fifty", want: nil},
		{name: "half garbage range", value: "10-lots", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEmployees(tt.value)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalizeStage(t *testing.T) {
	tests := []struct {
		name  string
		stage string
		want  string
	}{
		{name: "empty", stage: "", want: ""},
		{name: "single letter lower", stage: "a", want: "Series A"},
		{name: "single letter upper", stage: "B", want: "Series B"},
		{name: "already labeled", stage: "Series C", want: "Series C"},
		{name: "descriptive", stage: "growth", want: "growth"},
		{name: "padded", stage: "  seed  ", want: "seed"},
		{name: "single digit passes through", stage: "1", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStage(tt.stage))
		})
	}
}

func TestLeadNormalize(t *testing.T) {
	lead := Lead{
		Company:        "  Summit Wellness Group ",
		Stage:          "b",
		EmployeesRange: "11-50",
	}
	lead.Normalize()

	assert.Equal(t, "Summit Wellness Group", lead.Company)
	assert.Equal(t, "Series B", lead.Stage)
	require.NotNil(t, lead.Employees)
	assert.Equal(t, 30, *lead.Employees)
}

func TestLeadNormalizeKeepsExplicitEmployees(t *testing.T) {
	lead := Lead{Company: "Harbor Clinics", Employees: intPtr(120), EmployeesRange: "1-10"}
	lead.Normalize()

	require.NotNil(t, lead.Employees)
	assert.Equal(t, 120, *lead.Employees)
}

func intPtr(n int) *int { return &n }
