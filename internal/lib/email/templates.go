package email

// Template names an HTML file under templates/.
type Template string

const (
	TemplateWelcome Template = "welcome"
)

func (t Template) file() string {
	return string(t) + ".html"
}

// PreviewData holds sample variables per template, used by the
// preview-email command.
var PreviewData = map[Template]map[string]any{
	TemplateWelcome: {
		"Name":           "Ann Example",
		"UserID":         "user123444",
		"RemainingChats": 5,
	},
}
