package snapshot_test

import (
	"strings"
	"testing"

	"planpipe/core/snapshot"
)

const fixtureHTML = `<html><head><title>Программа</title></head><body>
<nav><a href="/">Главная</a> навигация</nav>
<script>console.log("tracker")</script>
<main>
  <h1>Искусственный интеллект</h1>
  <p>Магистерская программа.</p>
</main>
<footer>Контакты приёмной комиссии</footer>
</body></html>`

func TestRenderKeepsMainContent(t *testing.T) {
	t.Parallel()
	data, err := snapshot.New().Render("https://abit.example.ru/program/master/ai", fixtureHTML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	md := string(data)

	if !strings.Contains(md, "Искусственный интеллект") {
		t.Fatalf("heading missing from snapshot:\n%s", md)
	}
	if !strings.Contains(md, "Магистерская программа.") {
		t.Fatalf("paragraph missing from snapshot:\n%s", md)
	}
	if !strings.Contains(md, "source: https://abit.example.ru/program/master/ai") {
		t.Fatalf("source line missing:\n%s", md)
	}
}

func TestRenderStripsNoise(t *testing.T) {
	t.Parallel()
	data, err := snapshot.New().Render("https://abit.example.ru", fixtureHTML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	md := string(data)

	for _, noise := range []string{"навигация", "tracker", "приёмной комиссии"} {
		if strings.Contains(md, noise) {
			t.Fatalf("noise %q leaked into snapshot:\n%s", noise, md)
		}
	}
}

func TestRenderFallsBackToBody(t *testing.T) {
	t.Parallel()
	data, err := snapshot.New().Render("https://x.ru", "<html><body><p>просто текст</p></body></html>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(data), "просто текст") {
		t.Fatalf("body content missing:\n%s", data)
	}
}
