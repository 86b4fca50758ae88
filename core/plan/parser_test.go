package plan_test

import (
	"testing"

	"planpipe/core/plan"
)

func TestParsePreambleOnly(t *testing.T) {
	t.Parallel()
	lines := []string{
		"Общая информация о программе",
		"Набор 2025 года",
	}
	p := plan.Parse(lines)

	if len(p.Blocks) != 1 {
		t.Fatalf("expected 1 synthetic block, got %d", len(p.Blocks))
	}
	if p.SectionCount() != 1 {
		t.Fatalf("zero headings must yield exactly one preamble section, got %d", p.SectionCount())
	}
	sec := p.Blocks[0].Sections[0]
	if sec.Title != plan.PreambleSectionTitle {
		t.Fatalf("expected preamble section, got %q", sec.Title)
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()
	p := plan.Parse(nil)
	if len(p.Blocks) != 0 || p.SectionCount() != 0 {
		t.Fatalf("empty input must parse to an empty plan, got %+v", p)
	}
}

func TestParseBlockSectionDiscipline(t *testing.T) {
	t.Parallel()
	lines := []string{
		"Блок 1. Модули (дисциплины)",
		"30", "1080", // summary numbers after block heading
		"Обязательные дисциплины. 1 семестр",
		"15", "540", "1", // summary numbers after section heading
		"Воркшоп по созданию продукта на данных",
		"3", "108", "1",
		"Итого", "30",
		"Управление продуктом",
		"3", "108", "2",
	}
	p := plan.Parse(lines)

	if len(p.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(p.Blocks))
	}
	b := p.Blocks[0]
	if b.Title != "Блок 1. Модули (дисциплины)" {
		t.Fatalf("unexpected block title %q", b.Title)
	}
	if len(b.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(b.Sections))
	}
	sec := b.Sections[0]
	if sec.Semester != 1 {
		t.Fatalf("expected semester 1 from heading, got %d", sec.Semester)
	}
	if len(sec.Disciplines) != 2 {
		t.Fatalf("expected 2 disciplines, got %d: %+v", len(sec.Disciplines), sec.Disciplines)
	}
	d := sec.Disciplines[0]
	if d.Title != "Воркшоп по созданию продукта на данных" {
		t.Fatalf("unexpected discipline title %q", d.Title)
	}
	if d.Credits != 3 || d.Hours != 108 || d.Semester != 1 {
		t.Fatalf("unexpected triple %+v", d)
	}
	if sec.Disciplines[1].Semester != 2 {
		t.Fatalf("total row must not break discipline parsing: %+v", sec.Disciplines[1])
	}
}

func TestParseMultiLineDisciplineTitle(t *testing.T) {
	t.Parallel()
	lines := []string{
		"Обязательные дисциплины",
		"Машинное обучение",
		"(продвинутый уровень)",
		"6", "216", "2",
	}
	p := plan.Parse(lines)

	if p.SectionCount() != 1 {
		t.Fatalf("expected 1 section, got %d", p.SectionCount())
	}
	discs := p.Blocks[0].Sections[0].Disciplines
	if len(discs) != 1 {
		t.Fatalf("expected 1 discipline, got %d", len(discs))
	}
	want := "Машинное обучение (продвинутый уровень)"
	if discs[0].Title != want {
		t.Fatalf("title lines must join: got %q, want %q", discs[0].Title, want)
	}
}

func TestParseSectionWithoutBlockGetsSyntheticBlock(t *testing.T) {
	t.Parallel()
	lines := []string{
		"Практика. 2 семестр",
		"Производственная практика",
		"9", "324", "2",
	}
	p := plan.Parse(lines)

	if len(p.Blocks) != 1 {
		t.Fatalf("expected a synthetic block, got %d blocks", len(p.Blocks))
	}
	if p.Blocks[0].Title != plan.PreambleBlockTitle {
		t.Fatalf("unexpected synthetic block title %q", p.Blocks[0].Title)
	}
}

func TestSectionCountMonotonicInHeadings(t *testing.T) {
	t.Parallel()
	base := []string{"Некоторый вводный текст"}
	headings := []string{
		"Обязательные дисциплины. 1 семестр",
		"Пул выборных дисциплин. 2 семестр",
		"Государственная итоговая аттестация",
		"Факультативные модули",
	}

	prev := 0
	lines := append([]string{}, base...)
	for _, h := range headings {
		lines = append(lines, h, "Дисциплина", "3", "108", "1")
		count := plan.Parse(lines).SectionCount()
		if count < prev {
			t.Fatalf("section count decreased from %d to %d after adding %q", prev, count, h)
		}
		prev = count
	}
	if prev < len(headings) {
		t.Fatalf("expected at least %d sections, got %d", len(headings), prev)
	}
}
