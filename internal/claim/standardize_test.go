package claim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizeRenamesAliases(t *testing.T) {
	raw := map[string]string{
		"Patient Name": "JANE DOE",
		"DOB":          "03/15/1975",
		"npi":          "1234567890",
	}

	out := Standardize(raw, Aliases)

	assert.Equal(t, "JANE DOE", out[FieldPatientsName])
	assert.Equal(t, "03/15/1975", out[FieldPatientsDOB])
	assert.Equal(t, "1234567890", out[FieldBillingProviderNPI])
	assert.NotContains(t, out, "Patient Name", "original alias key must be absent")
	assert.NotContains(t, out, "DOB")
}

func TestStandardizePassThroughUnknownKeys(t *testing.T) {
	raw := map[string]string{
		"something_the_model_invented": "value",
		"patients_name":                "JOHN",
	}

	out := Standardize(raw, Aliases)

	assert.Equal(t, "value", out["something_the_model_invented"])
	assert.Equal(t, "JOHN", out["patients_name"])
}

func TestStandardizeCanonicalWinsOverAlias(t *testing.T) {
	raw := map[string]string{
		"patients_name": "CANONICAL",
		"Patient Name":  "ALIASED",
	}

	out := Standardize(raw, Aliases)
	assert.Equal(t, "CANONICAL", out[FieldPatientsName])
	assert.NotContains(t, out, "Patient Name")
}

func TestStandardizeDoesNotBackfill(t *testing.T) {
	out := Standardize(map[string]string{"DOB": "01/01/1990"}, Aliases)
	require.Len(t, out, 1, "standardize must not invent missing fields")
}

func TestConformBackfillsAndDrops(t *testing.T) {
	in := map[string]string{
		FieldPatientsName: "JANE",
		"unknown_extra":   "junk",
		FieldCharges:      "",
	}

	out := Conform(in)

	require.Len(t, out, len(Rules))
	assert.Equal(t, "JANE", out[FieldPatientsName])
	assert.Equal(t, NotFound, out[FieldCharges], "empty values conform to the sentinel")
	assert.Equal(t, NotFound, out[FieldPatientsDOB])
	assert.NotContains(t, out, "unknown_extra", "fields outside the vocabulary are dropped")
}
