// Tests for prompt templates and script loading.
package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustParse(t *testing.T, name, text string) *Template {
	t.Helper()
	tmpl, err := Parse(name, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tmpl
}

func TestFormatWithoutPlaceholders(t *testing.T) {
	tmpl := mustParse(t, "greeting", "Say hello.")

	got, err := tmpl.Format(map[string]string{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Say hello." {
		t.Fatalf("unexpected prompt: %q", got)
	}

	got, err = tmpl.Format(nil)
	if err != nil {
		t.Fatalf("Format with nil vars: %v", err)
	}
	if got != "Say hello." {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestFormatSubstitutesPlaceholder(t *testing.T) {
	tmpl := mustParse(t, "small_talk", "Candidate: {{.last_response}}\nReply.")

	got, err := tmpl.Format(map[string]string{"last_response": "Good", "unused": "x"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Candidate: Good\nReply." {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestFormatKeepsTextVerbatim(t *testing.T) {
	tmpl := mustParse(t, "small_talk", "Candidate: {{.last_response}}")

	got, err := tmpl.Format(map[string]string{"last_response": "<b>fine & you?</b>"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "Candidate: <b>fine & you?</b>" {
		t.Fatalf("expected no escaping, got %q", got)
	}
}

func TestFormatMissingPlaceholder(t *testing.T) {
	tmpl := mustParse(t, "small_talk", "Candidate: {{.last_response}}")

	_, err := tmpl.Format(map[string]string{})
	if err == nil {
		t.Fatal("expected error for missing placeholder")
	}
	if !errors.Is(err, ErrMissingPlaceholder) {
		t.Fatalf("expected ErrMissingPlaceholder, got: %v", err)
	}
}

func TestParseRejectsSecondPlaceholder(t *testing.T) {
	_, err := Parse("bad", "{{.a}} and {{.b}}")
	if err == nil {
		t.Fatal("expected error for two placeholders")
	}
}

func TestParseCountsPlaceholdersInDefinedTemplates(t *testing.T) {
	_, err := Parse("bad", `{{define "inner"}}{{.b}}{{end}}{{.a}} {{template "inner" .}}`)
	if err == nil {
		t.Fatal("expected error for placeholder hidden in a define block")
	}
}

func TestParseCountsPlaceholdersInChains(t *testing.T) {
	_, err := Parse("bad", "{{.a}} {{$x := (.b).c}}{{$x}}")
	if err == nil {
		t.Fatal("expected error for placeholder reached through a chain")
	}
}

func TestParseCountsRepeatedPlaceholderOnce(t *testing.T) {
	tmpl, err := Parse("twice", "{{.a}} then {{if .a}}again {{.a}}{{end}}")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p := tmpl.Placeholders(); len(p) != 1 || p[0] != "a" {
		t.Fatalf("unexpected placeholders: %v", p)
	}
}

func TestDefaultScript(t *testing.T) {
	s := DefaultScript()

	greeting, err := s.Greeting.Format(nil)
	if err != nil {
		t.Fatalf("greeting Format: %v", err)
	}
	if greeting != "You are a friendly interviewer. Greet the candidate warmly and ask how they are doing." {
		t.Fatalf("unexpected greeting prompt: %q", greeting)
	}

	smallTalk, err := s.SmallTalk.Format(map[string]string{LastResponseKey: "Good"})
	if err != nil {
		t.Fatalf("small talk Format: %v", err)
	}
	want := "Continue the natural conversation based on the candidate's last response:\n" +
		"Candidate: Good\n" +
		"Respond naturally and keep the conversation going."
	if smallTalk != want {
		t.Fatalf("unexpected small talk prompt:\n got: %q\nwant: %q", smallTalk, want)
	}
	if s.Opening != "Starting interview..." {
		t.Fatalf("unexpected opening: %q", s.Opening)
	}
	if s.Closing != "(Now moving to interview questions...)" {
		t.Fatalf("unexpected closing: %q", s.Closing)
	}
}

func TestLoadScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.yaml")
	content := `opening: Hi
greeting: Greet the candidate.
small_talk: |-
  They said: {{.last_response}}
closing: Bye
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	got, err := s.SmallTalk.Format(map[string]string{LastResponseKey: "Fine"})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if got != "They said: Fine" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestParseScriptValidatesTemplates(t *testing.T) {
	cases := map[string]string{
		"greeting placeholder": "greeting: Hello {{.name}}\nsmall_talk: \"{{.last_response}}\"\n",
		"wrong small talk key": "greeting: Hello\nsmall_talk: \"{{.answer}}\"\n",
		"no small talk":        "greeting: Hello\n",
		"no greeting":          "small_talk: \"{{.last_response}}\"\n",
	}
	for name, content := range cases {
		if _, err := ParseScript([]byte(content)); err == nil {
			t.Fatalf("%s: expected error", name)
		} else if strings.TrimSpace(err.Error()) == "" {
			t.Fatalf("%s: expected descriptive error", name)
		}
	}
}
