// Package chatmodel is the conversational heuristics layer in front of the
// upstream model: repetition tracking, clarifying questions, and system
// prompt composition.
package chatmodel

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mindcare/support-chat/types"
)

//go:embed library.yaml
var libraryYAML []byte

// Bilingual holds the English and Hindi/Hinglish variants of a text list.
type Bilingual struct {
	English []string `yaml:"english"`
	Hindi   []string `yaml:"hindi"`
}

// For returns the variants for the speaker's language.
func (b Bilingual) For(hindi bool) []string {
	if hindi && len(b.Hindi) > 0 {
		return b.Hindi
	}
	return b.English
}

// All returns both languages' variants.
func (b Bilingual) All() []string {
	out := make([]string, 0, len(b.English)+len(b.Hindi))
	out = append(out, b.English...)
	return append(out, b.Hindi...)
}

type GuidanceBlock struct {
	English string `yaml:"english"`
	Hindi   string `yaml:"hindi"`
}

func (g GuidanceBlock) For(hindi bool) string {
	if hindi && g.Hindi != "" {
		return strings.TrimSpace(g.Hindi)
	}
	return strings.TrimSpace(g.English)
}

// ClarifierBank is one level of clarifying questions.
type ClarifierBank struct {
	Prefixes  Bilingual            `yaml:"prefixes"`
	Questions map[string]Bilingual `yaml:"questions"`
}

// QuestionsFor returns the bank for emotion, or the generic bank.
func (c ClarifierBank) QuestionsFor(emotion types.Emotion, hindi bool) []string {
	if q, ok := c.Questions[string(emotion)]; ok {
		return q.For(hindi)
	}
	return c.Questions[genericBank].For(hindi)
}

const genericBank = "generic"

// Library is the canned text the heuristics draw from.
type Library struct {
	Clarifiers struct {
		Level1 ClarifierBank `yaml:"level1"`
		Level2 ClarifierBank `yaml:"level2"`
	} `yaml:"clarifiers"`
	Guidance        map[string]GuidanceBlock `yaml:"guidance"`
	CrisisResources string                   `yaml:"crisis_resources"`
	Deflection      Bilingual                `yaml:"deflection"`
	ReliefOpeners   Bilingual                `yaml:"relief_openers"`
	NameAsk         Bilingual                `yaml:"name_ask"`
}

// LoadLibrary parses a library document and checks every list it relies on
// is populated.
func LoadLibrary(data []byte) (*Library, error) {
	var lib Library
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse library: %w", err)
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

var defaultLibrary = func() *Library {
	lib, err := LoadLibrary(libraryYAML)
	if err != nil {
		panic(err)
	}
	return lib
}()

// DefaultLibrary returns the embedded library.
func DefaultLibrary() *Library {
	return defaultLibrary
}

// GuidanceFor returns the guidance block for emotion, falling back to default.
func (l *Library) GuidanceFor(emotion types.Emotion, hindi bool) string {
	if g, ok := l.Guidance[string(emotion)]; ok {
		return g.For(hindi)
	}
	return l.Guidance[string(types.EmotionDefault)].For(hindi)
}

// IsClarifier reports whether an assistant message is exactly one of the
// canned clarifying questions: a known prefix of either level followed by a
// question from the same level's bank. A model reply that merely opens with
// a prefix does not count.
func (l *Library) IsClarifier(content string) bool {
	text := strings.TrimSpace(content)
	if text == "" {
		return false
	}
	for _, bank := range []ClarifierBank{l.Clarifiers.Level1, l.Clarifiers.Level2} {
		if bank.produced(text) {
			return true
		}
	}
	return false
}

func (c ClarifierBank) produced(text string) bool {
	for _, prefix := range c.Prefixes.All() {
		rest, ok := strings.CutPrefix(text, prefix+" ")
		if !ok {
			continue
		}
		for _, questions := range c.Questions {
			for _, q := range questions.All() {
				if rest == q {
					return true
				}
			}
		}
	}
	return false
}

func (l *Library) validate() error {
	lists := map[string]Bilingual{
		"clarifiers.level1.prefixes": l.Clarifiers.Level1.Prefixes,
		"clarifiers.level2.prefixes": l.Clarifiers.Level2.Prefixes,
		"deflection":                 l.Deflection,
		"relief_openers":             l.ReliefOpeners,
		"name_ask":                   l.NameAsk,
	}
	for level, bank := range map[string]ClarifierBank{"level1": l.Clarifiers.Level1, "level2": l.Clarifiers.Level2} {
		if _, ok := bank.Questions[genericBank]; !ok {
			return fmt.Errorf("library: clarifiers.%s has no generic bank", level)
		}
		for emotion, q := range bank.Questions {
			lists["clarifiers."+level+".questions."+emotion] = q
		}
	}
	for name, list := range lists {
		if len(list.English) == 0 || len(list.Hindi) == 0 {
			return fmt.Errorf("library: %s needs both english and hindi entries", name)
		}
	}
	if _, ok := l.Guidance[string(types.EmotionDefault)]; !ok {
		return fmt.Errorf("library: guidance has no default block")
	}
	if strings.TrimSpace(l.CrisisResources) == "" {
		return fmt.Errorf("library: crisis_resources is empty")
	}
	return nil
}
