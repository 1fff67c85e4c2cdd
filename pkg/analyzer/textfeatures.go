package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

// TextFeatureNames is the fixed feature schema for message bodies.
var TextFeatureNames = []string{
	"char_count",
	"word_count",
	"sentence_count",
	"avg_word_length",
	"max_word_length",
	"avg_sentence_length",
	"uppercase_ratio",
	"digit_ratio",
	"special_char_ratio",
	"whitespace_ratio",
	"exclamation_count",
	"question_count",
	"ellipsis_count",
	"currency_symbol_count",
	"urgency_density",
	"credential_density",
	"threat_density",
	"reward_density",
	"url_count",
	"has_ip_url",
	"phone_count",
	"email_count",
	"has_greeting",
	"has_generic_greeting",
	"has_signature",
	"has_call_to_action",
	"text_entropy",
	"word_length_entropy",
	"vocab_richness",
	"is_sms",
	"is_email",
}

var (
	sentenceSplitRe   = regexp.MustCompile(`[.!?]+`)
	phoneRe           = regexp.MustCompile(`(\+?\d{3}[\s-]?\d{3}[\s-]?\d{3,6}|\b07\d{8}\b|\b01\d{8}\b)`)
	emailRe           = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	greetingRe        = regexp.MustCompile(`(?i)^(dear|hello|hi|greetings|good\s+(morning|afternoon|evening))\b`)
	genericGreetingRe = regexp.MustCompile(`(?i)(dear\s+(valued\s+)?(customer|user|member|client|account\s+holder)|(hello|hi)\s+(there|user|customer))`)
	signatureRe       = regexp.MustCompile(`(?i)(regards|sincerely|thank\s+you|best\s+wishes|yours\s+(faithfully|truly))`)
	callToActionRe    = regexp.MustCompile(`(?i)(click|tap|press|follow|visit|call|reply|dial)\s+(here|now|below|this|the|us)`)
	currencyRe        = regexp.MustCompile(`(?i)([$€£]|\bksh\b|\bkes\b|\busd\b)`)
	ipURLRe           = regexp.MustCompile(`https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
)

// ExtractTextFeatures computes the text feature vector for a message body.
// Pure function; zero vector (plus the content-kind flag) on empty input.
func ExtractTextFeatures(text string, contentType ContentType, lex *Lexicon) *FeatureVector {
	fv := newFeatureVector(TextFeatureNames)
	fv.setBool("is_sms", contentType == ContentTypeSMS)
	fv.setBool("is_email", contentType == ContentTypeEmail)
	if text == "" {
		return fv
	}

	runes := []rune(text)
	charCount := len(runes)
	words := strings.Fields(text)
	wordCount := len(words)

	fv.set("char_count", float64(charCount))
	fv.set("word_count", float64(wordCount))

	sentences := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	fv.set("sentence_count", float64(sentences))

	if wordCount > 0 {
		totalLen, maxLen := 0, 0
		for _, w := range words {
			l := len([]rune(w))
			totalLen += l
			if l > maxLen {
				maxLen = l
			}
		}
		fv.set("avg_word_length", float64(totalLen)/float64(wordCount))
		fv.set("max_word_length", float64(maxLen))
		if sentences > 0 {
			fv.set("avg_sentence_length", float64(wordCount)/float64(sentences))
		}
	}

	var upper, digit, special, space, letters int
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper++
			letters++
		case unicode.IsLower(r):
			letters++
		case unicode.IsDigit(r):
			digit++
		case unicode.IsSpace(r):
			space++
		case !unicode.IsLetter(r):
			special++
		}
	}
	n := float64(charCount)
	if letters > 0 {
		fv.set("uppercase_ratio", float64(upper)/float64(letters))
	}
	fv.set("digit_ratio", float64(digit)/n)
	fv.set("special_char_ratio", float64(special)/n)
	fv.set("whitespace_ratio", float64(space)/n)

	fv.set("exclamation_count", float64(strings.Count(text, "!")))
	fv.set("question_count", float64(strings.Count(text, "?")))
	fv.set("ellipsis_count", float64(strings.Count(text, "...")))
	fv.set("currency_symbol_count", float64(len(currencyRe.FindAllString(text, -1))))

	lower := strings.ToLower(text)
	if wordCount > 0 {
		fv.set("urgency_density", keywordDensity(lower, wordCount, lex.UrgencyKeywords))
		fv.set("credential_density", keywordDensity(lower, wordCount, lex.CredentialKeywords))
		fv.set("threat_density", keywordDensity(lower, wordCount, lex.ThreatKeywords))
		fv.set("reward_density", keywordDensity(lower, wordCount, lex.RewardKeywords))
	}

	urls := ExtractURLs(text)
	fv.set("url_count", float64(len(urls)))
	fv.setBool("has_ip_url", ipURLRe.MatchString(text))

	fv.set("phone_count", float64(len(phoneRe.FindAllString(text, -1))))
	fv.set("email_count", float64(len(emailRe.FindAllString(text, -1))))

	fv.setBool("has_greeting", greetingRe.MatchString(strings.TrimSpace(text)))
	fv.setBool("has_generic_greeting", genericGreetingRe.MatchString(text))
	fv.setBool("has_signature", signatureRe.MatchString(text))
	fv.setBool("has_call_to_action", callToActionRe.MatchString(text))

	fv.set("text_entropy", ShannonEntropy(text))
	fv.set("word_length_entropy", wordLengthEntropy(words))
	if wordCount > 0 {
		unique := make(map[string]struct{}, wordCount)
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		fv.set("vocab_richness", float64(len(unique))/float64(wordCount))
	}

	return fv
}

// keywordDensity counts whole-word lexicon hits per word of text.
func keywordDensity(lowerText string, wordCount int, keywords []string) float64 {
	hits := 0
	for _, kw := range keywords {
		hits += countWordOccurrences(lowerText, kw)
	}
	return float64(hits) / float64(wordCount)
}

func countWordOccurrences(lowerText, keyword string) int {
	count := 0
	start := 0
	for {
		i := strings.Index(lowerText[start:], keyword)
		if i < 0 {
			return count
		}
		pos := start + i
		end := pos + len(keyword)
		beforeOK := pos == 0 || !isWordRune(rune(lowerText[pos-1]))
		afterOK := end >= len(lowerText) || !isWordRune(rune(lowerText[end]))
		if beforeOK && afterOK {
			count++
		}
		start = end
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordLengthEntropy computes Shannon entropy over the distribution of
// word lengths. Uniform machine-generated text scores high.
func wordLengthEntropy(words []string) float64 {
	if len(words) == 0 {
		return 0
	}
	var b strings.Builder
	for _, w := range words {
		l := len([]rune(w))
		if l > 25 {
			l = 25
		}
		// Encode each length as one symbol so ShannonEntropy applies.
		b.WriteRune(rune('a' + l))
	}
	return ShannonEntropy(b.String())
}
