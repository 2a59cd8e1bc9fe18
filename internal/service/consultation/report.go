package consultation

import (
	"html/template"
	"io"

	"github.com/rahat-sukari/api/internal/model"
)

// reportTmpl is the printable consultation summary. html/template
// escapes every clinical field, so free-text diagnosis and notes are
// safe to render.
var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Consultation Report</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 640px; color: #222; }
h1 { font-size: 1.4rem; border-bottom: 2px solid #2a7ae2; padding-bottom: .4rem; }
dt { font-weight: bold; margin-top: 1rem; }
dd { margin: .2rem 0 0; white-space: pre-wrap; }
footer { margin-top: 2rem; font-size: .8rem; color: #888; }
</style>
</head>
<body>
<h1>Consultation Report</h1>
<dl>
{{- if .Patient}}{{if .Patient.Account}}
<dt>Patient</dt>
<dd>{{.Patient.Account.FullName}}</dd>
{{- end}}{{end}}
{{- if .Doctor}}
<dt>Doctor</dt>
<dd>Dr. {{.Doctor.FullName}}</dd>
{{- end}}
<dt>Date</dt>
<dd>{{.ScheduledAt.Format "2006-01-02 15:04"}}</dd>
<dt>Diagnosis</dt>
<dd>{{.Diagnosis}}</dd>
{{- if .Treatment}}
<dt>Treatment</dt>
<dd>{{.Treatment}}</dd>
{{- end}}
{{- if .Notes}}
<dt>Notes</dt>
<dd>{{.Notes}}</dd>
{{- end}}
</dl>
<footer>Generated by Rahat Sukari</footer>
</body>
</html>
`))

func renderReport(w io.Writer, c *model.Consultation) error {
	return reportTmpl.Execute(w, c)
}
