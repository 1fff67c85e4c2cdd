package analyzer

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the immutable keyword, brand and domain tables shared by
// every detection module. Built once at startup and passed by reference;
// modules never mutate it.
type Lexicon struct {
	UrgencyPhrases     map[Severity][]string
	CredentialPatterns map[Severity][]*regexp.Regexp
	ThreatPatterns     map[Severity][]*regexp.Regexp

	// Regional financial/telecom/government service names, grouped by sector.
	RegionalTargets map[string][]string

	SuspiciousTLDs    []string
	LegitimateDomains []string
	URLShorteners     []string

	// Lookalike character -> the latin character it imitates.
	HomographMap map[rune]rune

	// Monitored brands and their canonical domains.
	BrandTargets []string
	BrandDomains map[string]string

	SensitivePathKeywords []string

	// Flat keyword lists feeding the text feature densities.
	UrgencyKeywords    []string
	CredentialKeywords []string
	ThreatKeywords     []string
	RewardKeywords     []string
}

// DefaultLexicon returns the built-in tables. The regional defaults target
// the Kenyan financial ecosystem; override via LoadLexicon for other markets.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		UrgencyPhrases: map[Severity][]string{
			SeverityCritical: {
				"immediately", "right now", "within 1 hour", "urgent action required",
				"account will be closed", "permanent suspension", "final notice",
			},
			SeverityHigh: {
				"urgent", "act now", "expires today", "within 24 hours", "within 48 hours",
				"limited time", "last chance", "don't delay", "time sensitive",
				"respond immediately", "action needed", "verify now",
			},
			SeverityMedium: {
				"soon", "quickly", "asap", "important", "attention required",
				"please respond", "awaiting your response", "pending action",
			},
		},
		CredentialPatterns: compilePatternTiers(map[Severity][]string{
			SeverityCritical: {
				`enter\s+(your\s+)?pin`, `(verify|confirm)\s+(your\s+)?(m-?\s?pesa\s+)?pin`,
				`m-?\s?pesa\s+pin`, `atm\s+pin`, `secret\s+pin`,
				`enter\s+cvv`, `card\s+number`, `bank\s+account\s+number`,
				`(send|share|provide)\s+(your\s+)?(pin|password|otp)`,
				`social\s+security`, `id\s+number`, `passport\s+number`,
			},
			SeverityHigh: {
				`enter\s+(your\s+)?password`, `confirm\s+(your\s+)?password`,
				`login\s+credentials`, `banking\s+details`, `verification\s+code`,
				`one\s+time\s+password`, `\botp\b`, `secret\s+code`, `security\s+code`,
				`mother'?s?\s+maiden`, `date\s+of\s+birth`,
			},
			SeverityMedium: {
				`verify\s+(your\s+)?account`, `confirm\s+(your\s+)?identity`,
				`update\s+(your\s+)?(account|details|information)`,
				`personal\s+information`, `contact\s+details`,
			},
		}),
		ThreatPatterns: compilePatternTiers(map[Severity][]string{
			SeverityCritical: {
				`account\s+((will\s+be|has\s+been)\s+)?(permanently\s+)?(suspended|terminated|blocked|closed)`,
				`legal\s+action`, `(will\s+be\s+)?prosecuted`, `arrest\s+warrant`,
				`police\s+report`, `fraud\s+investigation`,
			},
			SeverityHigh: {
				`(will\s+be\s+)?(blocked|disabled|frozen|restricted)`,
				`(will\s+)?lose\s+access`, `funds?\s+(will\s+be\s+)?lost`,
				`service\s+(will\s+be\s+)?discontinued`, `\bpenalty\b`, `\bfine\b`,
			},
			SeverityMedium: {
				`unauthorized\s+access`, `suspicious\s+activity`, `security\s+breach`,
				`compromised`, `at\s+risk`,
			},
		}),
		RegionalTargets: map[string][]string{
			"mpesa":        {"mpesa", "m-pesa", "m pesa", "safaricom money", "lipa na mpesa", "paybill", "till number", "send money"},
			"banks":        {"equity bank", "kcb", "cooperative bank", "co-op bank", "ncba", "stanbic", "absa", "standard chartered", "family bank", "dtb", "i&m bank", "barclays", "diamond trust"},
			"telcos":       {"safaricom", "airtel", "telkom kenya", "faiba"},
			"government":   {"kra", "kenya revenue", "ntsa", "ecitizen", "huduma", "nhif", "nssf", "immigration"},
			"mobile_money": {"airtel money", "t-kash", "equitel", "mshwari", "fuliza", "kcb mpesa"},
		},
		SuspiciousTLDs: []string{
			".xyz", ".tk", ".ml", ".ga", ".cf", ".gq", ".top", ".club", ".work",
			".click", ".link", ".info", ".online", ".site", ".website", ".space",
			".pw", ".cc", ".ws", ".buzz", ".cam", ".icu", ".vip", ".loan",
		},
		LegitimateDomains: []string{
			// Global
			"google.com", "gmail.com", "microsoft.com", "outlook.com", "apple.com",
			"amazon.com", "facebook.com", "twitter.com", "linkedin.com", "github.com",
			"paypal.com", "stripe.com", "netflix.com", "spotify.com",
			// Kenya
			"safaricom.co.ke", "mpesa.co.ke", "equity.co.ke", "equitybankgroup.com",
			"kcbgroup.com", "co-opbank.co.ke", "standardchartered.co.ke", "stanbicbank.co.ke",
			"absa.co.ke", "ncbagroup.com", "familybank.co.ke", "dtbafrica.com",
			"imbank.com", "kra.go.ke", "ecitizen.go.ke", "ntsa.go.ke", "nhif.or.ke",
			"nssf.or.ke", "nation.africa", "standardmedia.co.ke", "citizen.digital",
		},
		URLShorteners: []string{
			"bit.ly", "tinyurl.com", "t.co", "goo.gl", "ow.ly", "is.gd", "buff.ly",
			"adf.ly", "shorte.st", "bc.vc", "j.mp", "v.gd", "rb.gy", "cutt.ly",
		},
		HomographMap: map[rune]rune{
			// Cyrillic lookalikes
			'а': 'a', 'е': 'e', 'о': 'o', 'р': 'p', 'с': 'c', 'х': 'x',
			'і': 'i', 'ѕ': 's', 'ј': 'j', 'һ': 'h', 'ԁ': 'd', 'ɡ': 'g',
			// Digits and symbols standing in for letters
			'0': 'o', '1': 'l', '3': 'e', '4': 'a', '5': 's', '8': 'b',
			'@': 'a', '$': 's', '!': 'i',
		},
		BrandTargets: []string{
			"safaricom", "mpesa", "equity", "kcb", "google", "facebook", "microsoft",
			"apple", "amazon", "paypal", "netflix", "whatsapp", "instagram", "twitter",
		},
		BrandDomains: map[string]string{
			"safaricom": "safaricom.co.ke",
			"mpesa":     "mpesa.co.ke",
			"equity":    "equitybankgroup.com",
			"kcb":       "kcbgroup.com",
			"google":    "google.com",
			"facebook":  "facebook.com",
			"microsoft": "microsoft.com",
			"apple":     "apple.com",
			"amazon":    "amazon.com",
			"paypal":    "paypal.com",
			"netflix":   "netflix.com",
			"whatsapp":  "whatsapp.com",
			"instagram": "instagram.com",
			"twitter":   "twitter.com",
		},
		SensitivePathKeywords: []string{
			"login", "verify", "secure", "account", "update", "confirm", "signin", "password",
		},
		UrgencyKeywords: []string{
			"urgent", "immediately", "now", "hurry", "quick", "expires", "deadline",
			"asap", "instant", "limited",
		},
		CredentialKeywords: []string{
			"password", "pin", "otp", "cvv", "credentials", "login", "verify",
			"passcode", "username",
		},
		ThreatKeywords: []string{
			"suspended", "blocked", "terminated", "closed", "frozen", "prosecuted",
			"penalty", "arrest", "legal",
		},
		RewardKeywords: []string{
			"won", "winner", "prize", "reward", "free", "bonus", "congratulations",
			"jackpot", "lottery", "gift",
		},
	}
}

// lexiconFile is the YAML override schema. Every field is optional; set
// fields replace the corresponding default table wholesale.
type lexiconFile struct {
	RegionalTargets       map[string][]string `yaml:"regional_targets"`
	SuspiciousTLDs        []string            `yaml:"suspicious_tlds"`
	LegitimateDomains     []string            `yaml:"legitimate_domains"`
	URLShorteners         []string            `yaml:"url_shorteners"`
	BrandTargets          []string            `yaml:"brand_targets"`
	BrandDomains          map[string]string   `yaml:"brand_domains"`
	SensitivePathKeywords []string            `yaml:"sensitive_path_keywords"`
	UrgencyKeywords       []string            `yaml:"urgency_keywords"`
	CredentialKeywords    []string            `yaml:"credential_keywords"`
	ThreatKeywords        []string            `yaml:"threat_keywords"`
	RewardKeywords        []string            `yaml:"reward_keywords"`
	UrgencyPhrases        map[string][]string `yaml:"urgency_phrases"`
	CredentialPatterns    map[string][]string `yaml:"credential_patterns"`
	ThreatPatterns        map[string][]string `yaml:"threat_patterns"`
}

// LoadLexicon reads a YAML override file and merges it over the defaults.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon file: %w", err)
	}

	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}

	lex := DefaultLexicon()
	if file.RegionalTargets != nil {
		lex.RegionalTargets = file.RegionalTargets
	}
	if file.SuspiciousTLDs != nil {
		lex.SuspiciousTLDs = file.SuspiciousTLDs
	}
	if file.LegitimateDomains != nil {
		lex.LegitimateDomains = file.LegitimateDomains
	}
	if file.URLShorteners != nil {
		lex.URLShorteners = file.URLShorteners
	}
	if file.BrandTargets != nil {
		lex.BrandTargets = file.BrandTargets
	}
	if file.BrandDomains != nil {
		lex.BrandDomains = file.BrandDomains
	}
	if file.SensitivePathKeywords != nil {
		lex.SensitivePathKeywords = file.SensitivePathKeywords
	}
	if file.UrgencyKeywords != nil {
		lex.UrgencyKeywords = file.UrgencyKeywords
	}
	if file.CredentialKeywords != nil {
		lex.CredentialKeywords = file.CredentialKeywords
	}
	if file.ThreatKeywords != nil {
		lex.ThreatKeywords = file.ThreatKeywords
	}
	if file.RewardKeywords != nil {
		lex.RewardKeywords = file.RewardKeywords
	}
	if file.UrgencyPhrases != nil {
		lex.UrgencyPhrases = phraseTiers(file.UrgencyPhrases)
	}
	if file.CredentialPatterns != nil {
		tiers, err := compileOverrideTiers(file.CredentialPatterns)
		if err != nil {
			return nil, fmt.Errorf("credential_patterns: %w", err)
		}
		lex.CredentialPatterns = tiers
	}
	if file.ThreatPatterns != nil {
		tiers, err := compileOverrideTiers(file.ThreatPatterns)
		if err != nil {
			return nil, fmt.Errorf("threat_patterns: %w", err)
		}
		lex.ThreatPatterns = tiers
	}
	return lex, nil
}

func compilePatternTiers(tiers map[Severity][]string) map[Severity][]*regexp.Regexp {
	out := make(map[Severity][]*regexp.Regexp, len(tiers))
	for sev, exprs := range tiers {
		compiled := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			compiled = append(compiled, regexp.MustCompile(expr))
		}
		out[sev] = compiled
	}
	return out
}

func compileOverrideTiers(tiers map[string][]string) (map[Severity][]*regexp.Regexp, error) {
	out := make(map[Severity][]*regexp.Regexp, len(tiers))
	for sev, exprs := range tiers {
		compiled := make([]*regexp.Regexp, 0, len(exprs))
		for _, expr := range exprs {
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compile %q: %w", expr, err)
			}
			compiled = append(compiled, re)
		}
		out[Severity(sev)] = compiled
	}
	return out, nil
}

func phraseTiers(tiers map[string][]string) map[Severity][]string {
	out := make(map[Severity][]string, len(tiers))
	for sev, phrases := range tiers {
		out[Severity(sev)] = phrases
	}
	return out
}
