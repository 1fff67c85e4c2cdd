package collectors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCertRisk(t *testing.T) {
	tests := []struct {
		name   string
		status *SSLStatus
		want   float64
	}{
		{"no data", nil, 0},
		{"no tls", &SSLStatus{HasSSL: false}, 0.10},
		{"invalid cert", &SSLStatus{HasSSL: true, Valid: false}, 0.08},
		{"expiring soon", &SSLStatus{HasSSL: true, Valid: true, ExpiryDays: 7}, 0.05},
		{"healthy", &SSLStatus{HasSSL: true, Valid: true, ExpiryDays: 120}, 0},
		{"already expired", &SSLStatus{HasSSL: true, Valid: true, ExpiryDays: -3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CertRisk(tt.status); got != tt.want {
				t.Errorf("CertRisk = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAgeRisk(t *testing.T) {
	tests := []struct {
		name string
		age  *DomainAge
		want float64
	}{
		{"no data", nil, 0},
		{"brand new", &DomainAge{AgeDays: 3}, 0.15},
		{"weeks old", &DomainAge{AgeDays: 29}, 0.15},
		{"months old", &DomainAge{AgeDays: 60}, 0.10},
		{"under a year", &DomainAge{AgeDays: 200}, 0.05},
		{"established", &DomainAge{AgeDays: 3650}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeRisk(tt.age); got != tt.want {
				t.Errorf("AgeRisk = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAgeFromRDAP(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	raw := `{
		"events": [
			{"eventAction": "last changed", "eventDate": "2025-01-01T00:00:00Z"},
			{"eventAction": "registration", "eventDate": "2025-05-02T00:00:00Z"}
		],
		"entities": [
			{
				"roles": ["registrar"],
				"vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Example Registrar Ltd"]]]
			}
		]
	}`
	var parsed rdapResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		t.Fatal(err)
	}

	age, err := ageFromRDAP(&parsed, now)
	if err != nil {
		t.Fatalf("ageFromRDAP: %v", err)
	}
	if age.AgeDays != 30 {
		t.Errorf("AgeDays = %d, want 30", age.AgeDays)
	}
	if age.RegistrationDate != "2025-05-02" {
		t.Errorf("RegistrationDate = %s", age.RegistrationDate)
	}
	if age.Registrar != "Example Registrar Ltd" {
		t.Errorf("Registrar = %q", age.Registrar)
	}
}

func TestAgeFromRDAPNoRegistration(t *testing.T) {
	var parsed rdapResponse
	if err := json.Unmarshal([]byte(`{"events": [{"eventAction": "expiration", "eventDate": "2030-01-01T00:00:00Z"}]}`), &parsed); err != nil {
		t.Fatal(err)
	}
	if _, err := ageFromRDAP(&parsed, time.Now()); err == nil {
		t.Error("response without a registration event accepted")
	}
}

func TestRegistrarName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"well formed", `["vcard", [["fn", {}, "text", "Acme Names Inc"]]]`, "Acme Names Inc"},
		{"no fn property", `["vcard", [["version", {}, "text", "4.0"]]]`, ""},
		{"not a jcard", `{"fn": "nope"}`, ""},
		{"truncated", `["vcard"]`, ""},
		{"short property", `["vcard", [["fn", {}]]]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := registrarName(json.RawMessage(tt.raw)); got != tt.want {
				t.Errorf("registrarName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("domain not found in registry\nsecond line ignored"))
	}))
	defer srv.Close()

	rdap := NewRDAPLookup(time.Second, nil)
	rdap.BaseURL = srv.URL

	_, err := rdap.Lookup(context.Background(), "nosuch.example")
	if err == nil {
		t.Fatal("non-200 response accepted")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error does not carry the status: %v", err)
	}
	if !strings.Contains(err.Error(), "domain not found in registry") {
		t.Errorf("error does not carry the response detail: %v", err)
	}
	if strings.Contains(err.Error(), "second line") {
		t.Errorf("error carries more than the first line: %v", err)
	}
}

func TestErrorSnippet(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain message", "not found", "not found"},
		{"surrounding whitespace", "  not found \n", "not found"},
		{"first line only", "line one\nline two", "line one"},
		{"empty body", "", ""},
		{"long body", strings.Repeat("z", 500), strings.Repeat("z", 200)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorSnippet([]byte(tt.body)); got != tt.want {
				t.Errorf("errorSnippet = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCollectorsDefaults(t *testing.T) {
	insp := NewTLSInspector(0, nil)
	if insp.Timeout != 4*time.Second {
		t.Errorf("inspector timeout = %v, want 4s default", insp.Timeout)
	}
	if insp.Logger == nil {
		t.Error("inspector logger not defaulted")
	}

	rdap := NewRDAPLookup(0, nil)
	if rdap.Timeout != 4*time.Second {
		t.Errorf("rdap timeout = %v, want 4s default", rdap.Timeout)
	}
	if rdap.BaseURL != "https://rdap.org" {
		t.Errorf("rdap base url = %s", rdap.BaseURL)
	}
}
