package collectors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/pkg/httputil"
)

// DomainAge summarizes when a domain was registered.
type DomainAge struct {
	AgeDays          int    `json:"domain_age_days"`
	RegistrationDate string `json:"registration_date,omitempty"`
	Registrar        string `json:"registrar,omitempty"`
}

// RegistrationAgeLookup resolves the registration age of a domain.
type RegistrationAgeLookup interface {
	Lookup(ctx context.Context, domain string) (*DomainAge, error)
}

// RDAPLookup queries the public RDAP bootstrap service for registration
// events.
type RDAPLookup struct {
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewRDAPLookup returns a lookup against rdap.org with the shared fast
// HTTP client.
func NewRDAPLookup(timeout time.Duration, logger *zap.Logger) *RDAPLookup {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RDAPLookup{
		BaseURL: "https://rdap.org",
		Client:  httputil.FastClient(),
		Timeout: timeout,
		Logger:  logger,
	}
}

// rdapResponse is the subset of the RDAP domain schema we read.
type rdapResponse struct {
	Events []struct {
		EventAction string `json:"eventAction"`
		EventDate   string `json:"eventDate"`
	} `json:"events"`
	Entities []struct {
		Roles      []string        `json:"roles"`
		VCardArray json.RawMessage `json:"vcardArray"`
	} `json:"entities"`
}

// Lookup implements RegistrationAgeLookup.
func (r *RDAPLookup) Lookup(ctx context.Context, domain string) (*DomainAge, error) {
	reqCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, r.BaseURL+"/domain/"+domain, nil)
	if err != nil {
		return nil, fmt.Errorf("build rdap request: %w", err)
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := r.Client.Do(req)
	if err != nil {
		r.Logger.Debug("rdap lookup failed", zap.String("domain", domain), zap.Error(err))
		return nil, err
	}
	defer httputil.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		detail, _ := httputil.ReadErrorBody(resp.Body)
		if snippet := errorSnippet(detail); snippet != "" {
			return nil, fmt.Errorf("rdap lookup for %s: status %d: %s", domain, resp.StatusCode, snippet)
		}
		return nil, fmt.Errorf("rdap lookup for %s: status %d", domain, resp.StatusCode)
	}

	body, err := httputil.ReadResponseBody(resp.Body, 1*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("read rdap response: %w", err)
	}

	var parsed rdapResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse rdap response: %w", err)
	}

	return ageFromRDAP(&parsed, time.Now())
}

// errorSnippet trims an error response body to a single short line fit
// for inclusion in an error message.
func errorSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// ageFromRDAP extracts the registration event and optional registrar name.
func ageFromRDAP(parsed *rdapResponse, now time.Time) (*DomainAge, error) {
	var registered time.Time
	for _, ev := range parsed.Events {
		if ev.EventAction != "registration" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, ev.EventDate); err == nil {
			registered = t
			break
		}
	}
	if registered.IsZero() {
		return nil, fmt.Errorf("no registration event in rdap response")
	}

	age := &DomainAge{
		AgeDays:          int(now.Sub(registered).Hours() / 24),
		RegistrationDate: registered.Format("2006-01-02"),
	}
	for _, entity := range parsed.Entities {
		for _, role := range entity.Roles {
			if role == "registrar" {
				age.Registrar = registrarName(entity.VCardArray)
			}
		}
	}
	return age, nil
}

// registrarName digs the display name out of a jCard payload.
// Best effort: empty string when the structure is not as expected.
func registrarName(raw json.RawMessage) string {
	var card []json.RawMessage
	if err := json.Unmarshal(raw, &card); err != nil || len(card) < 2 {
		return ""
	}
	var props [][]json.RawMessage
	if err := json.Unmarshal(card[1], &props); err != nil {
		return ""
	}
	for _, prop := range props {
		if len(prop) < 4 {
			continue
		}
		var name string
		if err := json.Unmarshal(prop[0], &name); err != nil || name != "fn" {
			continue
		}
		var value string
		if err := json.Unmarshal(prop[3], &value); err == nil {
			return value
		}
	}
	return ""
}

// AgeRisk converts a registration age into a bounded risk contribution.
// Freshly registered domains are the classic phishing signature.
func AgeRisk(age *DomainAge) float64 {
	switch {
	case age == nil:
		return 0
	case age.AgeDays < 30:
		return 0.15
	case age.AgeDays < 90:
		return 0.10
	case age.AgeDays < 365:
		return 0.05
	default:
		return 0
	}
}
