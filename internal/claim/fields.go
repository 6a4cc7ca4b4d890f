// Package claim holds the canonical claim-form field vocabulary and the
// declarative rules that map free text onto it.
package claim

import "regexp"

// NotFound is the sentinel reported for a field that was looked for and not
// located. It is normal output, never an error.
const NotFound = "Not Found"

// Canonical field names. Every successfully processed document reports a
// value (or NotFound) for each of these.
const (
	FieldPatientsName          = "patients_name"
	FieldPatientsDOB           = "patients_dob"
	FieldPatientsSex           = "patients_sex"
	FieldInsuredsID            = "insureds_id"
	FieldInsuredsName          = "insureds_name"
	FieldPatientsAddress       = "patients_address"
	FieldRelationshipToInsured = "relationship_to_insured"
	FieldGroupNumber           = "group_number"
	FieldDiagnosis             = "diagnosis"
	FieldDateOfService         = "date_of_service"
	FieldPlaceOfService        = "place_of_service"
	FieldProcedureCode         = "procedure_code"
	FieldProcedureCodeModifier = "procedure_code_modifier"
	FieldDiagnosisPointer      = "diagnosis_pointer"
	FieldCharges               = "charges"
	FieldRenderingProviderID   = "rendering_provider_id"
	FieldDaysUnits             = "days_units"
	FieldFederalTIN            = "federal_tin"
	FieldClinicalSignatureDate = "clinical_signature_date"
	FieldBilledBy              = "billed_by"
	FieldBillingProviderNPI    = "billing_provider_npi"
)

// FieldRule anchors a field to the form label immediately preceding its
// value. Group selects the capture group holding the value. The set is data,
// not code: tuning a pattern never touches control flow.
type FieldRule struct {
	Name    string
	Pattern *regexp.Regexp
	Group   int
}

// Rules is the versioned rule set for the standard claim form layout. The
// patterns expect normalized text (uppercased, whitespace collapsed, periods
// and commas stripped) but carry (?i) so they also work on raw text.
var Rules = []FieldRule{
	{FieldPatientsName, regexp.MustCompile(`(?i)PATIENT'S NAME[^:]*:?\s*([A-Za-z][\w\s'-]*?)\s*(?:DOB|BIRTH|\d|$)`), 1},
	{FieldPatientsDOB, regexp.MustCompile(`(?i)(?:PATIENT'S BIRTH DATE|DOB|DATE OF BIRTH):?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), 1},
	{FieldPatientsSex, regexp.MustCompile(`(?i)\bSEX:?\s*\(?\s*(MALE|FEMALE|M|F)\b`), 1},
	{FieldInsuredsID, regexp.MustCompile(`(?i)INSURED'S I\.?D\.?\s*(?:NUMBER|NO|#)?:?\s*([A-Za-z0-9]+)`), 1},
	{FieldInsuredsName, regexp.MustCompile(`(?i)INSURED'S NAME[^:]*:?\s*([A-Za-z][\w\s'-]*?)\s*(?:PATIENT|ADDRESS|DOB|\d|$)`), 1},
	{FieldPatientsAddress, regexp.MustCompile(`(?i)PATIENT'S ADDRESS[^:]*:?\s*([\w\s#'-]+?)\s*(?:CITY|STATE|ZIP|TELEPHONE|$)`), 1},
	{FieldRelationshipToInsured, regexp.MustCompile(`(?i)RELATIONSHIP TO INSURED:?\s*\(?\s*(SELF|SPOUSE|CHILD|OTHER)\b`), 1},
	{FieldGroupNumber, regexp.MustCompile(`(?i)(?:GROUP(?: OR FECA)? NUMBER|GROUP NO|GROUP #):?\s*([A-Za-z0-9-]+)`), 1},
	{FieldDiagnosis, regexp.MustCompile(`(?i)DIAGNOSIS(?: OR NATURE OF ILLNESS(?: OR INJURY)?)?[^:]*:?\s*([A-Za-z]?\d[\w\s-]*?)\s*(?:ICD|DATE|$)`), 1},
	{FieldDateOfService, regexp.MustCompile(`(?i)DATE\(?S?\)? OF SERVICE:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), 1},
	{FieldPlaceOfService, regexp.MustCompile(`(?i)PLACE OF\s*SERVICE:?\s*(\d{1,2})\b`), 1},
	{FieldProcedureCode, regexp.MustCompile(`(?i)(?:CPT/HCPCS|PROCEDURE CODE|CPT):?\s*([A-Za-z0-9]{5})\b`), 1},
	{FieldProcedureCodeModifier, regexp.MustCompile(`(?i)MODIFIER:?\s*([A-Za-z0-9]{2})\b`), 1},
	{FieldDiagnosisPointer, regexp.MustCompile(`(?i)DIAGNOSIS POINTER:?\s*([A-D](?:\s?[A-D])*)\b`), 1},
	{FieldCharges, regexp.MustCompile(`(?i)\$?\s*CHARGES:?\s*\$?\s*([\d][\d\s.,]*)`), 1},
	{FieldRenderingProviderID, regexp.MustCompile(`(?i)RENDERING PROVIDER ID\.?\s*(?:NUMBER|NO|#)?:?\s*([A-Za-z0-9]+)`), 1},
	{FieldDaysUnits, regexp.MustCompile(`(?i)DAYS OR UNITS:?\s*(\d+)\b`), 1},
	{FieldFederalTIN, regexp.MustCompile(`(?i)FEDERAL TAX I\.?D\.?\s*(?:NUMBER|NO)?:?\s*([A-Za-z0-9-]+)`), 1},
	{FieldClinicalSignatureDate, regexp.MustCompile(`(?i)SIGNED:?\s*DATE:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), 1},
	{FieldBilledBy, regexp.MustCompile(`(?i)BILLED BY:?\s*([A-Za-z][\w\s&'-]*?)\s*(?:NPI|PHONE|TEL|\(|$)`), 1},
	{FieldBillingProviderNPI, regexp.MustCompile(`(?i)(?:BILLING PROVIDER[\w\s&#]*?)?\bNPI:?\s*#?\s*(\d{10})\b`), 1},
}

// Vocabulary returns the canonical field names, in rule order.
func Vocabulary() []string {
	out := make([]string, 0, len(Rules))
	for _, r := range Rules {
		out = append(out, r.Name)
	}
	return out
}
