package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOccupation(t *testing.T) {
	cases := []struct {
		background string
		want       string
	}{
		{"A 34-year-old software engineer who works long hours.", "software engineer"},
		{"A 30-year-old nurse on rotating night shifts.", "nurse"},
		{"A 66-year-old retired teacher who looks after grandchildren.", "retired teacher"},
		{"A 70-year-old retired police officer who spends most days at home.", "retired police officer"},
		{"A 50-year-old truck driver.", "truck driver"},
		{"A 45-year-old restaurant chef.", "restaurant chef"},
		{"A 52-year-old accountant.", "accountant"},
		{"A 40-year-old warehouse supervisor.", "warehouse supervisor"},
		{"A 25-year-old graduate student.", "graduate student"},
		{"A 29-year-old Civil Engineer.", "civil engineer"},
		{"Lives alone with a cat.", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractOccupation(tc.background), tc.background)
	}
}

func TestWithArticle(t *testing.T) {
	assert.Equal(t, "an accountant", withArticle("accountant"))
	assert.Equal(t, "a nurse", withArticle("nurse"))
	assert.Equal(t, "a retired teacher", withArticle("retired teacher"))
	assert.Equal(t, "", withArticle(""))
}
