package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryIndex(t *testing.T) {
	// "tophat" predates categories and has none at all; it must simply be
	// left out of every grouping.
	st, err := Load([]byte(`{
		"bowtie": {"categories": ["alignment"]},
		"samtools": {"categories": ["formats", "alignment", "alignment"]},
		"tophat": {"description": "splice junction mapper"},
		"blast": {"categories": ["search"]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"alignment", "formats", "search"}, st.Categories())
	assert.Equal(t, []string{"bowtie", "samtools"}, st.InCategory("alignment"))
	assert.Equal(t, []string{"samtools"}, st.InCategory("formats"))
	assert.Empty(t, st.InCategory("assembly"))

	index := st.CategoryIndex()
	assert.Equal(t, map[string][]string{
		"alignment": {"bowtie", "samtools"},
		"formats":   {"samtools"},
		"search":    {"blast"},
	}, index)
}

func TestCategoriesEmptyStore(t *testing.T) {
	st := New()
	assert.Empty(t, st.Categories())
	assert.Empty(t, st.CategoryIndex())
}
