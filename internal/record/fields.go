package record

// Invoice fields.
const (
	FieldTotal     = "Total"
	FieldLineItems = "Line Items"
)

// LaTeX fields.
const (
	FieldMathML   = "MathML"
	FieldRawLaTeX = "Raw LaTeX"
	FieldError    = "Error"
)

// Resume fields. FieldRawText is the single field of the fallback record.
const (
	FieldName           = "Name"
	FieldEmail          = "Email"
	FieldPhone          = "Phone"
	FieldLinks          = "Links"
	FieldSummary        = "Summary"
	FieldSkills         = "Skills"
	FieldExperience     = "Experience"
	FieldEducation      = "Education"
	FieldProjects       = "Projects"
	FieldCertifications = "Certifications"

	FieldRawText = "Raw Text"
)

// ResumeFields is the structured resume field set in display order.
var ResumeFields = []string{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldLinks,
	FieldSummary,
	FieldSkills,
	FieldExperience,
	FieldEducation,
	FieldProjects,
	FieldCertifications,
}

// RawText builds the single-field record used when structured parsing gives up.
func RawText(text string) *Record {
	return New().Set(FieldRawText, Text(text))
}
