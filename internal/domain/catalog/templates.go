package catalog

// Draft wording. All user-facing text of a draft lives here so another locale only
// has to swap this file.
const (
	SubjectUrgentPrefix   = "[Urgent] "
	SubjectPressKind      = "Press coverage proposal: "
	SubjectFeatureKind    = "Feature proposal: "
	FallbackSubjectPrefix = "[Outreach proposal] "

	HonorificNewspaper = "Dear"
	HonorificDefault   = "Hello"

	UrgencyNote = "This announcement is time-sensitive, and we would be grateful for your early consideration."

	FallbackBody = `Hello,

We would like to share a story that may interest you. Please let us know if you would like more details.

Best regards,
PR Team`
)

// BodyTemplate is a text/template rendered with the drafting package's body data.
const BodyTemplate = `{{.Honorific}} {{.Name}},

I hope this message finds you well. I am reaching out with a story we believe will resonate with the readers of {{.Company}}.

{{.Summary}}
{{with .UrgencyNote}}
{{.}}
{{end}}
Our analysis rates this story's relevance to your coverage at {{.Score}} points.

I would be glad to share additional materials or arrange an interview at your convenience.

Best regards,
PR Team`
