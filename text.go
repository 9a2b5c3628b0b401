package main

// Site copy. These are the CLI defaults; every value can be overridden by
// flag or environment variable.
var (
	Tagline = `Software Engineer | Building creative and impactful technology.`

	DataPath = `resume.json`

	ResumePath = `assets/resume.pdf`

	Description = `Renders a portfolio page from a single resume document.
Edit the document's projects, experience, education or skills and every
section follows on the next page load.`
)
