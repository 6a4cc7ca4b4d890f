package claim

// Aliases maps field names a generative model is likely to invent onto the
// canonical vocabulary. Keys are matched exactly; extend the table rather
// than adding matching logic.
var Aliases = map[string]string{
	"patient_name":       FieldPatientsName,
	"patient's name":     FieldPatientsName,
	"Patient Name":       FieldPatientsName,
	"Patient's Name":     FieldPatientsName,
	"name":               FieldPatientsName,
	"patient_dob":        FieldPatientsDOB,
	"date_of_birth":      FieldPatientsDOB,
	"DOB":                FieldPatientsDOB,
	"Date of Birth":      FieldPatientsDOB,
	"sex":                FieldPatientsSex,
	"gender":             FieldPatientsSex,
	"Sex":                FieldPatientsSex,
	"insured_id":         FieldInsuredsID,
	"member_id":          FieldInsuredsID,
	"Insured ID":         FieldInsuredsID,
	"Insured's ID":       FieldInsuredsID,
	"insured_name":       FieldInsuredsName,
	"Insured Name":       FieldInsuredsName,
	"patient_address":    FieldPatientsAddress,
	"address":            FieldPatientsAddress,
	"Patient Address":    FieldPatientsAddress,
	"relationship":       FieldRelationshipToInsured,
	"Relationship":       FieldRelationshipToInsured,
	"group":              FieldGroupNumber,
	"group_no":           FieldGroupNumber,
	"Group Number":       FieldGroupNumber,
	"diagnosis_code":     FieldDiagnosis,
	"icd_code":           FieldDiagnosis,
	"Diagnosis":          FieldDiagnosis,
	"service_date":       FieldDateOfService,
	"dos":                FieldDateOfService,
	"Date of Service":    FieldDateOfService,
	"pos":                FieldPlaceOfService,
	"Place of Service":   FieldPlaceOfService,
	"cpt":                FieldProcedureCode,
	"cpt_code":           FieldProcedureCode,
	"hcpcs":              FieldProcedureCode,
	"CPT Code":           FieldProcedureCode,
	"modifier":           FieldProcedureCodeModifier,
	"Modifier":           FieldProcedureCodeModifier,
	"dx_pointer":         FieldDiagnosisPointer,
	"Diagnosis Pointer":  FieldDiagnosisPointer,
	"charge":             FieldCharges,
	"amount":             FieldCharges,
	"Charges":            FieldCharges,
	"rendering_npi":      FieldRenderingProviderID,
	"Rendering Provider": FieldRenderingProviderID,
	"units":              FieldDaysUnits,
	"Days or Units":      FieldDaysUnits,
	"tin":                FieldFederalTIN,
	"tax_id":             FieldFederalTIN,
	"Federal Tax ID":     FieldFederalTIN,
	"signature_date":     FieldClinicalSignatureDate,
	"signed_date":        FieldClinicalSignatureDate,
	"Signature Date":     FieldClinicalSignatureDate,
	"provider":           FieldBilledBy,
	"billing_provider":   FieldBilledBy,
	"Billed By":          FieldBilledBy,
	"npi":                FieldBillingProviderNPI,
	"billing_npi":        FieldBillingProviderNPI,
	"NPI":                FieldBillingProviderNPI,
}

// Standardize renames keys of raw onto the canonical vocabulary using the
// alias table. Unknown keys pass through unchanged; nothing is backfilled
// here (see Conform). When an alias and its canonical name are both present,
// the canonical entry wins.
func Standardize(raw map[string]string, aliases map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		canon, ok := aliases[k]
		if !ok {
			out[k] = v
			continue
		}
		if _, exists := raw[canon]; exists {
			continue
		}
		out[canon] = v
	}
	return out
}

// Conform restricts m to the canonical vocabulary: fields the vocabulary
// declares but m lacks are backfilled with NotFound, and keys outside the
// vocabulary are dropped. Guarantees total field coverage for callers.
func Conform(m map[string]string) map[string]string {
	out := make(map[string]string, len(Rules))
	for _, name := range Vocabulary() {
		if v, ok := m[name]; ok && v != "" {
			out[name] = v
		} else {
			out[name] = NotFound
		}
	}
	return out
}
