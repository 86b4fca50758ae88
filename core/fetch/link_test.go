package fetch

import (
	"errors"
	"testing"
	"time"

	"planpipe/core"
)

const pageURL = "https://abit.example.ru/program/master/ai"

func TestFindPDFLinkByExtension(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<a href="/about">О программе</a>
		<a href="/docs/plan.pdf">План</a>
	</body></html>`

	link, err := FindPDFLink(html, pageURL)
	if err != nil {
		t.Fatalf("find link: %v", err)
	}
	if link != "https://abit.example.ru/docs/plan.pdf" {
		t.Fatalf("link %q not resolved against page URL", link)
	}
}

func TestFindPDFLinkByFileStoragePath(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<a href="https://api.example.ru/file_storage/file/abc123">Скачать</a>
	</body></html>`

	link, err := FindPDFLink(html, pageURL)
	if err != nil {
		t.Fatalf("find link: %v", err)
	}
	if link != "https://api.example.ru/file_storage/file/abc123" {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestFindPDFLinkByLabel(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<a href="/download/42">Скачать учебный план</a>
	</body></html>`

	link, err := FindPDFLink(html, pageURL)
	if err != nil {
		t.Fatalf("find link: %v", err)
	}
	if link != "https://abit.example.ru/download/42" {
		t.Fatalf("unexpected link %q", link)
	}
}

func TestFindPDFLinkTakesFirstMatch(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<a href="/docs/first.pdf">Первый</a>
		<a href="/docs/second.pdf">Второй</a>
	</body></html>`

	link, err := FindPDFLink(html, pageURL)
	if err != nil {
		t.Fatalf("find link: %v", err)
	}
	if link != "https://abit.example.ru/docs/first.pdf" {
		t.Fatalf("expected first match, got %q", link)
	}
}

func TestFindPDFLinkNotFound(t *testing.T) {
	t.Parallel()
	html := `<html><body>
		<a href="mailto:abit@example.ru">Почта</a>
		<a href="#top">Наверх</a>
		<a href="/news">Новости</a>
	</body></html>`

	_, err := FindPDFLink(html, pageURL)
	var notFound *core.LinkNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected LinkNotFoundError, got %T: %v", err, err)
	}
	if notFound.URL != pageURL {
		t.Fatalf("error URL %q, want %q", notFound.URL, pageURL)
	}
}

func TestDownloadName(t *testing.T) {
	t.Parallel()
	now := time.Unix(1700000000, 0).UTC()

	if got := downloadName("https://x.ru/docs/study_plan.pdf?v=2", now); got != "study_plan.pdf" {
		t.Fatalf("name %q, want study_plan.pdf", got)
	}
	if got := downloadName("https://x.ru/file_storage/file/abc123", now); got != "study_plan_1700000000.pdf" {
		t.Fatalf("name %q, want timestamped fallback", got)
	}
}
