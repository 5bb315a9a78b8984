package render

import _ "embed"

//go:embed templates/report.html
var defaultTemplate string
