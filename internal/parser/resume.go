package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/docfields/internal/record"
)

// sectionAliases maps lowercased heading text to the resume field it starts.
var sectionAliases = map[string]string{
	"summary":              record.FieldSummary,
	"professional summary": record.FieldSummary,
	"profile":              record.FieldSummary,
	"professional profile": record.FieldSummary,
	"objective":            record.FieldSummary,
	"career objective":     record.FieldSummary,
	"about":                record.FieldSummary,
	"about me":             record.FieldSummary,

	"skills":                 record.FieldSkills,
	"technical skills":       record.FieldSkills,
	"key skills":             record.FieldSkills,
	"core competencies":      record.FieldSkills,
	"skills and abilities":   record.FieldSkills,
	"skills & abilities":     record.FieldSkills,
	"technologies":           record.FieldSkills,
	"tools and technologies": record.FieldSkills,

	"experience":              record.FieldExperience,
	"work experience":         record.FieldExperience,
	"professional experience": record.FieldExperience,
	"employment":              record.FieldExperience,
	"employment history":      record.FieldExperience,
	"work history":            record.FieldExperience,
	"internships":             record.FieldExperience,
	"internship":              record.FieldExperience,

	"education":                  record.FieldEducation,
	"academic background":        record.FieldEducation,
	"academics":                  record.FieldEducation,
	"qualifications":             record.FieldEducation,
	"educational qualifications": record.FieldEducation,

	"projects":          record.FieldProjects,
	"personal projects": record.FieldProjects,
	"academic projects": record.FieldProjects,
	"key projects":      record.FieldProjects,

	"certifications":              record.FieldCertifications,
	"certificates":                record.FieldCertifications,
	"licenses and certifications": record.FieldCertifications,
	"licenses & certifications":   record.FieldCertifications,
}

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s.\-]?)?(?:\(\d{2,4}\)|\d{2,4})[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`)
	linkRe  = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;|]+|\b(?:linkedin\.com|github\.com|gitlab\.com)/[^\s,;|]+`)

	cidRe        = regexp.MustCompile(`\(cid:[0-9]+\)`)
	nameWordRe   = regexp.MustCompile(`^[A-Za-z][A-Za-z.'\-]*$`)
	skillSplitRe = regexp.MustCompile(`[,;|•·●▪◦\n]`)
)

// ResumeParser detects resume sections with header heuristics.
type ResumeParser struct {
	Text *TextExtractor
}

func (p *ResumeParser) Parse(path string) (*record.Record, error) {
	text, err := p.Text.ExtractText(path)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text)
}

// ParseText splits resume text into the fields listed in record.ResumeFields.
// Every field is present; unmatched ones hold the not-found sentinel.
// It fails with ErrNoStructure when the text has no section headings and no
// contact details.
func (p *ResumeParser) ParseText(text string) (*record.Record, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrNoStructure)
	}

	sections, preamble := splitSections(text)
	email := emailRe.FindString(text)
	phone := findPhone(text)
	if len(sections) == 0 && email == "" && phone == "" {
		return nil, fmt.Errorf("%w: no headings or contact details", ErrNoStructure)
	}

	values := map[string]string{
		record.FieldName:  findName(preamble),
		record.FieldEmail: email,
		record.FieldPhone: phone,
		record.FieldLinks: strings.Join(findLinks(text), ", "),
	}
	for field, body := range sections {
		if field == record.FieldSkills {
			values[field] = strings.Join(splitSkills(body), ", ")
			continue
		}
		values[field] = body
	}

	rec := record.New()
	for _, name := range record.ResumeFields {
		if v := values[name]; v != "" {
			rec.Set(name, record.Text(v))
		} else {
			rec.Set(name, record.NotFound())
		}
	}
	return rec, nil
}

// splitSections returns the body of each recognized section and the lines
// that come before the first heading. Repeated headings for the same field
// are concatenated.
func splitSections(text string) (map[string]string, []string) {
	sections := make(map[string]string)
	var preamble []string
	current := ""
	var body []string

	flush := func() {
		if current == "" {
			return
		}
		b := strings.TrimSpace(strings.Join(body, "\n"))
		if b != "" {
			if prev := sections[current]; prev != "" {
				b = prev + "\n" + b
			}
			sections[current] = b
		} else if _, ok := sections[current]; !ok {
			sections[current] = ""
		}
		body = body[:0]
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(cidRe.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}
		if field, rest, ok := matchHeading(line); ok {
			flush()
			current = field
			if rest != "" {
				body = append(body, rest)
			}
			continue
		}
		if current == "" {
			preamble = append(preamble, line)
		} else {
			body = append(body, line)
		}
	}
	flush()
	return sections, preamble
}

// matchHeading reports whether line is a section heading. "Skills: Go, SQL"
// counts as a heading followed by inline content.
func matchHeading(line string) (field, rest string, ok bool) {
	if field, ok := sectionAliases[headingKey(line)]; ok {
		return field, "", true
	}
	if i := strings.Index(line, ":"); i > 0 {
		if field, ok := sectionAliases[headingKey(line[:i])]; ok {
			return field, strings.TrimSpace(line[i+1:]), true
		}
	}
	return "", "", false
}

func headingKey(s string) string {
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	words := strings.Fields(strings.ToLower(s))

	// Letter-spaced headings such as "E D U C A T I O N".
	if len(words) > 3 {
		spaced := true
		for _, w := range words {
			if len([]rune(w)) != 1 {
				spaced = false
				break
			}
		}
		if spaced {
			return strings.Join(words, "")
		}
	}
	return strings.Join(words, " ")
}

// findName looks for a 2-4 word alphabetic line near the top of the resume.
func findName(preamble []string) string {
	for i, line := range preamble {
		if i >= 5 {
			break
		}
		if j := strings.IndexAny(line, "|•"); j > 0 {
			line = strings.TrimSpace(line[:j])
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		valid := true
		for _, w := range words {
			if !nameWordRe.MatchString(w) {
				valid = false
				break
			}
		}
		if valid {
			return strings.Join(words, " ")
		}
	}
	return ""
}

func findPhone(text string) string {
	for _, m := range phoneRe.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 10 && digits <= 15 {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

func findLinks(text string) []string {
	seen := make(map[string]bool)
	var links []string
	for _, m := range linkRe.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".)")
		key := strings.ToLower(m)
		if m == "" || seen[key] {
			continue
		}
		seen[key] = true
		links = append(links, m)
	}
	return links
}

func splitSkills(body string) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, part := range skillSplitRe.Split(body, -1) {
		part = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(part), "-*"))
		key := strings.ToLower(part)
		if part == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, part)
	}
	return skills
}
