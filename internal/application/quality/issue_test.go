package quality

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue_Error(t *testing.T) {
	t.Run("includes the field when set", func(t *testing.T) {
		issue := NewIssue("SO43697", "sls_price", ReasonUnrepairableMeasure, "unit price is null")

		assert.Equal(t, `row "SO43697", field "sls_price": unit price is null`, issue.Error())
	})

	t.Run("omits the field when empty", func(t *testing.T) {
		issue := NewIssue("SO43697", "", ReasonMissingKey, "customer id is null")

		assert.Equal(t, `row "SO43697": customer id is null`, issue.Error())
	})
}

func TestNewIssueWithValue(t *testing.T) {
	issue := NewIssueWithValue("SO1", "sls_sales", ReasonUnrepairableMeasure, "bad amount", "-10")

	assert.Equal(t, "SO1", issue.Key)
	assert.Equal(t, "sls_sales", issue.Field)
	assert.Equal(t, ReasonUnrepairableMeasure, issue.Reason)
	assert.Equal(t, "-10", issue.Value)
}

func TestIssueCollection(t *testing.T) {
	t.Run("retains issues up to the bound", func(t *testing.T) {
		c := NewIssueCollection(2)
		for i := 0; i < 5; i++ {
			c.Add(NewIssue(fmt.Sprintf("row-%d", i), "", ReasonMalformedDate, "bad date"))
		}

		assert.Equal(t, 2, c.Count())
		assert.Equal(t, 5, c.TotalCount())
		assert.True(t, c.IsTruncated())
		assert.True(t, c.HasIssues())
	})

	t.Run("below the bound nothing is truncated", func(t *testing.T) {
		c := NewIssueCollection(10)
		c.Add(NewIssue("row-1", "", ReasonMissingKey, "missing"))

		assert.Equal(t, 1, c.Count())
		assert.False(t, c.IsTruncated())
	})

	t.Run("empty collection has no issues", func(t *testing.T) {
		c := NewIssueCollection(10)

		assert.False(t, c.HasIssues())
		assert.Equal(t, "no issues", c.String())
	})

	t.Run("non-positive bound falls back to the default", func(t *testing.T) {
		c := NewIssueCollection(0)
		c.Add(NewIssue("row-1", "", ReasonMissingKey, "missing"))

		assert.Equal(t, 1, c.Count())
	})

	t.Run("AddAll records a batch", func(t *testing.T) {
		c := NewIssueCollection(10)
		c.AddAll([]Issue{
			NewIssue("row-1", "", ReasonMissingKey, "missing"),
			NewIssue("row-2", "", ReasonDuplicateKey, "duplicate"),
		})

		assert.Equal(t, 2, c.TotalCount())
	})

	t.Run("summary groups by reason code", func(t *testing.T) {
		c := NewIssueCollection(10)
		c.Add(NewIssue("row-1", "", ReasonMalformedDate, "bad"))
		c.Add(NewIssue("row-2", "", ReasonMalformedDate, "bad"))
		c.Add(NewIssue("row-3", "", ReasonMissingKey, "missing"))

		summary := c.Summary()

		require.Len(t, summary, 2)
		assert.Equal(t, 2, summary[ReasonMalformedDate])
		assert.Equal(t, 1, summary[ReasonMissingKey])
	})

	t.Run("string output notes truncation", func(t *testing.T) {
		c := NewIssueCollection(1)
		c.Add(NewIssue("row-1", "", ReasonMissingKey, "missing"))
		c.Add(NewIssue("row-2", "", ReasonMissingKey, "missing"))

		out := c.String()

		assert.Contains(t, out, "2 issue(s) found")
		assert.Contains(t, out, "showing first 1")
	})
}
