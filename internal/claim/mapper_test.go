package claim

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFieldsScenario(t *testing.T) {
	text := "Patient's Name: John Smith DOB: 01/02/1980"

	out := MapFields(text, Rules)

	assert.Equal(t, "John Smith", out[FieldPatientsName])
	assert.Equal(t, "01/02/1980", out[FieldPatientsDOB])
	assert.Equal(t, NotFound, out[FieldCharges])
	assert.Equal(t, NotFound, out[FieldBillingProviderNPI])
}

func TestMapFieldsTotalCoverage(t *testing.T) {
	out := MapFields("completely unrelated text", Rules)

	require.Len(t, out, len(Rules), "no extra keys")
	for _, name := range Vocabulary() {
		v, ok := out[name]
		require.True(t, ok, "missing key %s", name)
		assert.Equal(t, NotFound, v)
	}
}

func TestMapFieldsNormalizedForm(t *testing.T) {
	// what the form looks like after Normalize: uppercase, one line, no periods
	text := "PATIENT'S NAME: DOE JANE DOB: 03/15/1975 SEX: F " +
		"INSURED'S ID NUMBER: XYZ123456 FEDERAL TAX ID NUMBER: 12-3456789 " +
		"CPT/HCPCS: 99213 MODIFIER: 25 DAYS OR UNITS: 1 " +
		"$ CHARGES: 150 00 BILLING PROVIDER NPI: 1234567890"

	out := MapFields(text, Rules)

	assert.Equal(t, "DOE JANE", out[FieldPatientsName])
	assert.Equal(t, "03/15/1975", out[FieldPatientsDOB])
	assert.Equal(t, "F", out[FieldPatientsSex])
	assert.Equal(t, "XYZ123456", out[FieldInsuredsID])
	assert.Equal(t, "12-3456789", out[FieldFederalTIN])
	assert.Equal(t, "99213", out[FieldProcedureCode])
	assert.Equal(t, "25", out[FieldProcedureCodeModifier])
	assert.Equal(t, "1", out[FieldDaysUnits])
	assert.Equal(t, "150 00", out[FieldCharges])
	assert.Equal(t, "1234567890", out[FieldBillingProviderNPI])
}

func TestMapFieldsIndependentLookups(t *testing.T) {
	// duplicated label: first match wins, and one field's match must not
	// shift another field's search region
	text := "DOB: 01/01/2000 PATIENT'S NAME: A B DOB: 02/02/2002"

	out := MapFields(text, Rules)
	assert.Equal(t, "01/01/2000", out[FieldPatientsDOB])
	assert.Equal(t, "A B", out[FieldPatientsName])
}

func TestMapFieldsBadGroupIndex(t *testing.T) {
	rules := []FieldRule{{
		Name:    "broken",
		Pattern: regexp.MustCompile(`X`),
		Group:   3, // no such group; field stays NotFound instead of panicking
	}}
	out := MapFields("X marks the spot", rules)
	assert.Equal(t, NotFound, out["broken"])
}

func TestVocabularyMatchesRules(t *testing.T) {
	v := Vocabulary()
	require.Len(t, v, 21)
	seen := map[string]bool{}
	for _, name := range v {
		assert.False(t, seen[name], "duplicate field %s", name)
		seen[name] = true
	}
}
