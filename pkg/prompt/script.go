package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LastResponseKey is the placeholder the small-talk template must substitute.
const LastResponseKey = "last_response"

//go:embed script.yaml
var defaultScriptRaw []byte

// Script is the fixed text of the interview opening.
type Script struct {
	Opening   string
	Greeting  *Template
	SmallTalk *Template
	Closing   string
}

// scriptFile mirrors the YAML layout of a script file.
type scriptFile struct {
	Opening   string `yaml:"opening"`
	Greeting  string `yaml:"greeting"`
	SmallTalk string `yaml:"small_talk"`
	Closing   string `yaml:"closing"`
}

// DefaultScript returns the embedded script.
func DefaultScript() *Script {
	s, err := ParseScript(defaultScriptRaw)
	if err != nil {
		panic(fmt.Sprintf("embedded script: %v", err))
	}
	return s
}

// LoadScript reads and parses a YAML script from path.
func LoadScript(path string) (*Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScript(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// ParseScript parses YAML script content and checks both templates.
func ParseScript(content []byte) (*Script, error) {
	var sf scriptFile
	if err := yaml.Unmarshal(content, &sf); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sf.Greeting) == "" {
		return nil, fmt.Errorf("missing greeting template")
	}
	if strings.TrimSpace(sf.SmallTalk) == "" {
		return nil, fmt.Errorf("missing small_talk template")
	}

	greeting, err := Parse("greeting", strings.TrimSpace(sf.Greeting))
	if err != nil {
		return nil, err
	}
	if len(greeting.Placeholders()) != 0 {
		return nil, fmt.Errorf("greeting template must not use placeholders, found %v", greeting.Placeholders())
	}

	smallTalk, err := Parse("small_talk", strings.TrimSpace(sf.SmallTalk))
	if err != nil {
		return nil, err
	}
	if p := smallTalk.Placeholders(); len(p) != 1 || p[0] != LastResponseKey {
		return nil, fmt.Errorf("small_talk template must use exactly {{.%s}}, found %v", LastResponseKey, p)
	}

	return &Script{
		Opening:   strings.TrimSpace(sf.Opening),
		Greeting:  greeting,
		SmallTalk: smallTalk,
		Closing:   strings.TrimSpace(sf.Closing),
	}, nil
}
