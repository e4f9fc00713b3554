package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docfields/internal/record"
)

const sampleResume = `Jane Q Doe
jane.doe@example.com | (555) 123-4567 | https://github.com/janedoe
linkedin.com/in/janedoe

SUMMARY
Backend engineer focused on data pipelines.

Skills: Go, SQL; Kubernetes
go, Terraform

Experience
Senior Engineer, Example Corp (2019 - present)
Built the ingestion service.

EDUCATION:
B.Sc. Computer Science, State University

Projects
`

func TestResumeParseText(t *testing.T) {
	rec, err := (&ResumeParser{}).ParseText(sampleResume)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := rec.Names()
	if len(names) != len(record.ResumeFields) {
		t.Fatalf("expected %d fields, got %d: %v", len(record.ResumeFields), len(names), names)
	}
	for i, name := range record.ResumeFields {
		if names[i] != name {
			t.Errorf("field %d: expected %q, got %q", i, name, names[i])
		}
	}

	want := map[string]string{
		record.FieldName:       "Jane Q Doe",
		record.FieldEmail:      "jane.doe@example.com",
		record.FieldPhone:      "(555) 123-4567",
		record.FieldLinks:      "https://github.com/janedoe, linkedin.com/in/janedoe",
		record.FieldSummary:    "Backend engineer focused on data pipelines.",
		record.FieldSkills:     "Go, SQL, Kubernetes, Terraform",
		record.FieldExperience: "Senior Engineer, Example Corp (2019 - present)\nBuilt the ingestion service.",
		record.FieldEducation:  "B.Sc. Computer Science, State University",
	}
	for field, w := range want {
		v, _ := rec.Get(field)
		if v.String() != w {
			t.Errorf("%s: expected %q, got %q", field, w, v.String())
		}
	}

	for _, field := range []string{record.FieldProjects, record.FieldCertifications} {
		v, _ := rec.Get(field)
		if !v.IsNotFound() {
			t.Errorf("%s: expected sentinel, got %q", field, v.String())
		}
	}

	if err := record.Validate(rec, record.ResumeSchema); err != nil {
		t.Errorf("unexpected schema error: %v", err)
	}
}

func TestResumeLetterSpacedHeading(t *testing.T) {
	text := "John Smith\nE X P E R I E N C E\nWrote code.\n"
	rec, err := (&ResumeParser{}).ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := rec.Get(record.FieldExperience)
	if v.String() != "Wrote code." {
		t.Errorf("expected %q, got %q", "Wrote code.", v.String())
	}
}

func TestResumeRepeatedHeading(t *testing.T) {
	text := "Experience\nFirst job\nEducation\nSchool\nWork Experience\nSecond job\n"
	rec, err := (&ResumeParser{}).ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := rec.Get(record.FieldExperience)
	if v.String() != "First job\nSecond job" {
		t.Errorf("expected both jobs, got %q", v.String())
	}
}

func TestResumeContactOnly(t *testing.T) {
	rec, err := (&ResumeParser{}).ParseText("reach me at someone@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := rec.Get(record.FieldEmail)
	if v.String() != "someone@example.org" {
		t.Errorf("expected email, got %q", v.String())
	}
	name, _ := rec.Get(record.FieldName)
	if !name.IsNotFound() {
		t.Errorf("expected no name, got %q", name.String())
	}
}

func TestResumeNoStructure(t *testing.T) {
	for _, text := range []string{"", "   \n\n", "just a paragraph of prose with nothing else"} {
		_, err := (&ResumeParser{}).ParseText(text)
		if !errors.Is(err, ErrNoStructure) {
			t.Errorf("ParseText(%q): expected ErrNoStructure, got %v", text, err)
		}
	}
}

func TestResumeCIDArtifactsIgnoredInHeadings(t *testing.T) {
	text := "(cid:127)Skills(cid:127)\nGo\n"
	rec, err := (&ResumeParser{}).ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := rec.Get(record.FieldSkills)
	if v.String() != "Go" {
		t.Errorf("expected %q, got %q", "Go", v.String())
	}
}

func TestSplitSkills(t *testing.T) {
	got := splitSkills("Go • Python | go\n- Rust;; SQL")
	want := []string{"Go", "Python", "Rust", "SQL"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}
}
