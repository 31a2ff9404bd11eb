package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
)

func TestProfileHandler_Me(t *testing.T) {
	e := newEcho()
	deps := newTestDeps()
	acc := deps.register(t, "t@y.com", "t", "Tutor", "Go, Rust")
	h := NewProfileHandler(deps.accounts)

	c, _ := newJSONContext(e, http.MethodGet, "/v1/me", "")
	if code := httpCode(h.Me(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", code)
	}

	c, rec := newJSONContext(e, http.MethodGet, "/v1/me", "")
	c.Set("identity", domain.IdentityOf(acc))
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp profileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Account.Username != "t" || len(resp.TutorProfiles) != 1 {
		t.Fatalf("unexpected profile: %+v", resp)
	}
	if got := resp.TutorProfiles[0].Skills; len(got) != 2 || got[1] != "Rust" {
		t.Fatalf("unexpected skills: %v", got)
	}
}

func TestProfileHandler_UpdateTutorProfile(t *testing.T) {
	e := newEcho()
	deps := newTestDeps()
	acc := deps.register(t, "t@y.com", "t", "Tutor", "Go")
	h := NewProfileHandler(deps.accounts)

	c, rec := newJSONContext(e, http.MethodPut, "/v1/me/tutor-profile", `{"skills":"Go, SQL","hourly_rate":42.5,"bio":"hi"}`)
	c.Set("identity", domain.IdentityOf(acc))
	if err := h.UpdateTutorProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp tutorProfileResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.HourlyRate == nil || *resp.HourlyRate != 42.5 || len(resp.Skills) != 2 {
		t.Fatalf("unexpected profile: %+v", resp)
	}

	c, _ = newJSONContext(e, http.MethodPut, "/v1/me/tutor-profile", `{"hourly_rate":-1}`)
	c.Set("identity", domain.IdentityOf(acc))
	if code := httpCode(h.UpdateTutorProfile(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}
