package detector

import (
	"strings"
	"unicode/utf8"
)

// Result is the outcome of mode detection over one utterance.
type Result struct {
	DetectedMode  string
	Confidence    float64
	TriggerPhrase string
}

// Detector scores trigger phrases against free text. It is pure: all tables
// are injected at construction and nothing is mutated afterwards.
type Detector struct {
	modeOrder     []string
	phrases       map[string][]string
	helpPhrases   []string
	switchPhrases []string
	defaultMode   string
}

func New(modeOrder []string, phrases map[string][]string, helpPhrases, switchPhrases []string, defaultMode string) *Detector {
	return &Detector{
		modeOrder:     modeOrder,
		phrases:       phrases,
		helpPhrases:   helpPhrases,
		switchPhrases: switchPhrases,
		defaultMode:   defaultMode,
	}
}

// DetectMode scans every mode's phrase table in a fixed order and keeps the
// highest-scoring match; ties keep the first phrase encountered. When no
// phrase matches at all, the default mode is reported with confidence 1.0.
// That "no signal means full confidence" default mirrors the historical
// behavior callers depend on; confidence alone does not imply a match
// (Result.TriggerPhrase is empty in that case).
func (d *Detector) DetectMode(text string) Result {
	lower := strings.ToLower(text)

	maxConfidence := 0.0
	detectedMode := d.defaultMode
	triggerPhrase := ""

	for _, mode := range d.modeOrder {
		for _, phrase := range d.phrases[mode] {
			lowerPhrase := strings.ToLower(phrase)
			if !strings.Contains(lower, lowerPhrase) {
				continue
			}
			confidence := calculateConfidence(lowerPhrase, lower)
			if confidence > maxConfidence {
				maxConfidence = confidence
				detectedMode = mode
				triggerPhrase = phrase
			}
		}
	}

	if maxConfidence == 0 {
		maxConfidence = 1.0
	}

	return Result{
		DetectedMode:  detectedMode,
		Confidence:    maxConfidence,
		TriggerPhrase: triggerPhrase,
	}
}

// calculateConfidence: base 0.8, +0.2 when the phrase opens the message
// (+0.1 when it appears within the first 10 characters), +0.1 for phrases
// longer than 5 characters, capped at 1.0. Positions and lengths count
// characters, not bytes.
func calculateConfidence(phrase, message string) float64 {
	confidence := 0.8

	byteIndex := strings.Index(message, phrase)
	charIndex := utf8.RuneCountInString(message[:byteIndex])
	if charIndex == 0 {
		confidence += 0.2
	} else if charIndex <= 10 {
		confidence += 0.1
	}

	if utf8.RuneCountInString(phrase) > 5 {
		confidence += 0.1
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// IsHelpRequest reports whether the text asks for help. Help requests force
// the default guide persona ahead of any general detection signal.
func (d *Detector) IsHelpRequest(text string) bool {
	return containsAny(text, d.helpPhrases)
}

// IsModeSwitchRequest reports whether the text asks to change persona.
func (d *Detector) IsModeSwitchRequest(text string) bool {
	return containsAny(text, d.switchPhrases)
}

func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
