package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONToleratesPartialDocuments(t *testing.T) {
	doc, err := Decode([]byte(`{
		"name": "Ava",
		"unknown": {"nested": true},
		"projects": [{"name": "P1"}],
		"education": [{"school": "X", "gpa": 3.80, "expectedGraduation": 2026}],
		"experience": [{"title": "Engineer", "date": null}]
	}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Ava", doc.Name)
	require.Len(t, doc.Projects, 1)
	assert.Nil(t, doc.Projects[0].Tech)
	assert.Nil(t, doc.Projects[0].Description)
	assert.Equal(t, Text("3.80"), doc.Education[0].GPA)
	assert.Equal(t, Text("2026"), doc.Education[0].ExpectedGraduation)
	assert.Equal(t, Text(""), doc.Experience[0].Date)
	assert.Nil(t, doc.Skills.Languages)
}

func TestDecodeYAML(t *testing.T) {
	doc, err := Decode([]byte(`
name: Ava
contact:
  email: a@b.com
education:
  - school: X
    gpa: 3.9
skills:
  languages: [Go, SQL]
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", doc.Contact.Email)
	assert.Equal(t, Text("3.9"), doc.Education[0].GPA)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills.Group(SkillLanguages))
}

func TestDecodeListsKeepScalarEntries(t *testing.T) {
	doc, err := Decode([]byte(`{
		"name": "Ava",
		"projects": [{"name": "P", "tech": ["Go", 3, true], "description": [2024]}],
		"education": [{"school": "X", "coursework": ["CS", 101]}],
		"skills": {"languages": ["Go", 3.5], "developerTools": null}
	}`), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, Texts{"Go", "3", "true"}, doc.Projects[0].Tech)
	assert.Equal(t, Texts{"2024"}, doc.Projects[0].Description)
	assert.Equal(t, Texts{"CS", "101"}, doc.Education[0].Coursework)
	assert.Equal(t, []string{"Go", "3.5"}, doc.Skills.Group(SkillLanguages))
	assert.Nil(t, doc.Skills.DeveloperTools)

	doc, err = Decode([]byte("name: Ava\nprojects:\n  - name: P\n    tech: [Go, 3]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Texts{"Go", "3"}, doc.Projects[0].Tech)
}

func TestDecodeRejects(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		format Format
	}{
		{"empty body", "   ", FormatJSON},
		{"malformed json", `{"name": "Ava"`, FormatJSON},
		{"missing name", `{"projects": []}`, FormatJSON},
		{"blank name", `{"name": "  "}`, FormatJSON},
		{"wrong collection shape", `{"name": "Ava", "projects": "many"}`, FormatJSON},
		{"object as text", `{"name": "Ava", "education": [{"school": "X", "gpa": {"v": 4}}]}`, FormatJSON},
		{"object in tag list", `{"name": "Ava", "projects": [{"name": "P", "tech": [{"v": 4}]}]}`, FormatJSON},
		{"scalar as tag list", `{"name": "Ava", "projects": [{"name": "P", "tech": "Go"}]}`, FormatJSON},
		{"malformed yaml", "name: [", FormatYAML},
		{"unknown format", `{"name": "Ava"}`, Format("toml")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body), tc.format)
			require.Error(t, err)
		})
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFor("resume.json", ""))
	assert.Equal(t, FormatYAML, FormatFor("data/resume.yml", ""))
	assert.Equal(t, FormatYAML, FormatFor("https://cdn.example.com/resume.yaml?v=2", ""))
	assert.Equal(t, FormatYAML, FormatFor("https://example.com/resume", "application/yaml; charset=utf-8"))
	assert.Equal(t, FormatJSON, FormatFor("https://example.com/resume", "application/json"))
}

func TestContactLinks(t *testing.T) {
	links := Contact{GitHub: "https://github.com/x", Email: "a@b.com"}.Links()
	assert.Equal(t, []Link{
		{Label: "GitHub", Href: "https://github.com/x"},
		{Label: "Email", Href: "mailto:a@b.com"},
	}, links)

	assert.Empty(t, Contact{LinkedIn: "  "}.Links())
}

func TestProjectActionURI(t *testing.T) {
	contact := Contact{GitHub: "https://github.com/owner"}
	cases := []struct {
		name    string
		project Project
		contact Contact
		want    string
	}{
		{"repo wins", Project{Repo: "https://github.com/owner/r", Link: "https://r.dev"}, contact, "https://github.com/owner/r"},
		{"link next", Project{Link: "https://r.dev"}, contact, "https://r.dev"},
		{"profile fallback", Project{}, contact, "https://github.com/owner"},
		{"placeholder", Project{}, Contact{}, PlaceholderURI},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.project.ActionURI(tc.contact))
		})
	}
}

func TestDocumentAccessors(t *testing.T) {
	var nilDoc *Document
	assert.Equal(t, "New York, NY", nilDoc.PrimaryLocation("New York, NY"))
	assert.Zero(t, nilDoc.ProjectCount())

	doc := &Document{Education: []Institution{{School: "X"}}}
	assert.Equal(t, "Fallback", doc.PrimaryLocation("Fallback"))

	doc.Education[0].Location = "Boston, MA"
	doc.Projects = make([]Project, 3)
	doc.Experience = make([]Role, 2)
	assert.Equal(t, "Boston, MA", doc.PrimaryLocation("Fallback"))
	assert.Equal(t, 3, doc.ProjectCount())
	assert.Equal(t, 2, doc.ExperienceCount())
}

func TestSkillsGroupUnknownKey(t *testing.T) {
	assert.Nil(t, Skills{Languages: []string{"Go"}}.Group("frameworks"))
}
