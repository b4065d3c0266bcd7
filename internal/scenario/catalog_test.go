package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/mipractice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_Valid(t *testing.T) {
	c := DefaultCatalog()
	assert.NotEmpty(t, c.Version)
	assert.Empty(t, ValidateCatalog(c))
	assert.Contains(t, c.Topics(), "Alcohol Use")
}

func TestTopics_DistinctInOrder(t *testing.T) {
	c := &Catalog{Templates: []domain.PatientProfileTemplate{
		{Topic: "B"}, {Topic: "A"}, {Topic: "B"},
	}}
	assert.Equal(t, []string{"B", "A"}, c.Topics())
}

func TestLoadCatalog_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `version: "test-1"
names: [Robin]
sexes: [Female]
templates:
  - topic: Sleep
    presenting_problem: insomnia
    history: months of poor sleep
    chief_complaint: I can't sleep.
    background: A {age}-year-old teacher.
    age_range: {min: 35, max: 40}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, "test-1", c.Version)
	require.Len(t, c.Templates, 1)
	assert.Equal(t, domain.AgeRange{Min: 35, Max: 40}, c.Templates[0].AgeRange)
	assert.Equal(t, []domain.Sex{domain.SexFemale}, c.Sexes)
}

func TestLoadCatalog_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, defaultCatalogJSON, 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog().Topics(), c.Topics())
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseCatalog_CollectsAllErrors(t *testing.T) {
	data := []byte(`{"names":[],"sexes":["Other"],"templates":[
		{"topic":"","presenting_problem":"p","chief_complaint":"c","background":"no placeholder","age_range":{"min":50,"max":40}}
	]}`)
	_, err := ParseCatalog(data, ".json")
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "at least one name")
	assert.Contains(t, msg, `unknown sex "Other"`)
	assert.Contains(t, msg, "topic is required")
	assert.Contains(t, msg, "must contain {age}")
	assert.Contains(t, msg, "exceeds max")
}

func TestParseCatalog_BadSyntax(t *testing.T) {
	_, err := ParseCatalog([]byte("{"), ".json")
	assert.ErrorContains(t, err, "parsing scenario catalog")
}
