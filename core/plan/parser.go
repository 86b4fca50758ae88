// Package plan parses extracted study-plan text into blocks, sections
// and disciplines.
//
// The source documents are table exports flattened to one cell per
// line, so parsing is line-pattern driven: «Блок N.» opens a block,
// known section keywords or a «N семестр» marker open a section, and a
// discipline is a run of title lines followed by a credits/hours/semester
// integer triple. Text appearing before any heading lands in a
// synthetic preamble section.
package plan

import (
	"regexp"
	"strconv"
	"strings"
)

// Discipline is one course row: its title plus the credits/hours/semester
// triple that follows it in the flattened table.
type Discipline struct {
	Title    string `xml:"title,attr"`
	Credits  int    `xml:"credits,attr"`
	Hours    int    `xml:"hours,attr"`
	Semester int    `xml:"semester,attr"`
}

// Section groups disciplines under a section heading.
type Section struct {
	Title       string       `xml:"title,attr"`
	Semester    int          `xml:"semester,attr,omitempty"`
	Disciplines []Discipline `xml:"discipline"`
}

// Block is a top-level «Блок N.» division of the plan.
type Block struct {
	Title    string    `xml:"title,attr"`
	Sections []Section `xml:"section"`
}

// StudyPlan is the parsed document.
type StudyPlan struct {
	Blocks []Block
}

// SectionCount returns the total number of sections across all blocks.
func (p *StudyPlan) SectionCount() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Sections)
	}
	return n
}

const (
	// PreambleBlockTitle names the synthetic block for text that
	// precedes any «Блок» heading.
	PreambleBlockTitle = "Блок"
	// PreambleSectionTitle names the synthetic section for text that
	// precedes any section heading.
	PreambleSectionTitle = "Преамбула"
)

var (
	numRe   = regexp.MustCompile(`^\d{1,4}$`)
	blockRe = regexp.MustCompile(`(?i)^Блок\s+(\d+)\.`)
	semRe   = regexp.MustCompile(`(?i)(\d)\s*семест`)
)

var totalKeywords = []string{"итог", "всего", "сумма"}

// sectionKeywords mark lines that open a new section even without a
// semester marker. Matching is case-insensitive substring.
var sectionKeywords = []string{
	"обязательные дисциплины",
	"пул выборных дисциплин",
	"практика по выбору",
	"универсальная (надпрофессиональная) подготовка",
	"государственная итоговая аттестация",
	"факультативные модули",
	"практика",
	"гиа",
}

// parser carries the accumulation state while walking lines.
type parser struct {
	plan    *StudyPlan
	block   *Block
	section *Section
	titles  []string // buffered discipline title lines
}

// Parse walks the cleaned document lines and builds the plan structure.
// Any non-empty input yields at least one section (the preamble when no
// heading matched), so the section count grows monotonically with the
// number of heading-like lines.
func Parse(lines []string) *StudyPlan {
	p := &parser{plan: &StudyPlan{}}

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		if blockRe.MatchString(line) {
			p.openBlock(line)
			// Summary numbers directly after the heading are part of
			// the heading row, not a discipline.
			i = skipInts(lines, i+1, 4)
			continue
		}

		if sem, ok := sectionHeading(line); ok {
			p.openSection(line, sem)
			i = skipInts(lines, i+1, 3)
			continue
		}

		if isTotalLine(line) {
			i++
			continue
		}

		if !numRe.MatchString(line) {
			p.titles = append(p.titles, line)
			if d, ok := parseTriple(lines, i+1); ok {
				d.Title = strings.Join(p.titles, " ")
				p.addDiscipline(d)
				p.titles = nil
				i += 4
				continue
			}
			p.ensureSection()
			i++
			continue
		}

		i++
	}

	return p.plan
}

// openBlock starts a new block and resets section state.
func (p *parser) openBlock(title string) {
	p.plan.Blocks = append(p.plan.Blocks, Block{Title: title})
	p.block = &p.plan.Blocks[len(p.plan.Blocks)-1]
	p.section = nil
	p.titles = nil
}

// openSection starts a new section, creating a host block if none is
// open yet.
func (p *parser) openSection(title string, semester int) {
	if p.block == nil {
		p.plan.Blocks = append(p.plan.Blocks, Block{Title: PreambleBlockTitle})
		p.block = &p.plan.Blocks[len(p.plan.Blocks)-1]
	}
	p.block.Sections = append(p.block.Sections, Section{Title: title, Semester: semester})
	p.section = &p.block.Sections[len(p.block.Sections)-1]
	p.titles = nil
}

// ensureSection guarantees free-standing text has a section to live in.
func (p *parser) ensureSection() {
	if p.section == nil {
		p.openSection(PreambleSectionTitle, 0)
	}
}

func (p *parser) addDiscipline(d Discipline) {
	p.ensureSection()
	p.section.Disciplines = append(p.section.Disciplines, d)
}

// sectionHeading reports whether the line opens a section, returning
// the semester number when the heading carries one.
func sectionHeading(line string) (int, bool) {
	if m := semRe.FindStringSubmatch(line); m != nil {
		sem, err := strconv.Atoi(m[1])
		if err != nil {
			sem = 0
		}
		return sem, true
	}
	lower := strings.ToLower(line)
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			return 0, true
		}
	}
	return 0, false
}

// isTotalLine matches summary rows («Итого», «Всего», «Сумма») that
// carry no discipline data.
func isTotalLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range totalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// parseTriple reads credits/hours/semester from three consecutive
// integer lines starting at idx.
func parseTriple(lines []string, idx int) (Discipline, bool) {
	if idx+2 >= len(lines) {
		return Discipline{}, false
	}
	vals := make([]int, 3)
	for j := 0; j < 3; j++ {
		s := strings.TrimSpace(lines[idx+j])
		if !numRe.MatchString(s) {
			return Discipline{}, false
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return Discipline{}, false
		}
		vals[j] = v
	}
	return Discipline{Credits: vals[0], Hours: vals[1], Semester: vals[2]}, true
}

// skipInts advances past up to max bare-integer lines starting at idx.
func skipInts(lines []string, idx, max int) int {
	skipped := 0
	for idx < len(lines) && skipped < max && numRe.MatchString(strings.TrimSpace(lines[idx])) {
		idx++
		skipped++
	}
	return idx
}
