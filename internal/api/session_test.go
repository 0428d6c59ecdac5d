package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"promptlab/internal/model"
	"promptlab/internal/prompts"
	"promptlab/internal/session"
)

func TestSessionRoundTrip(t *testing.T) {
	s, _ := newTestServer(nil)

	rec := do(t, s, http.MethodPut, "/api/session/company", `{"name":"Acme","description":"d","url":"https://acme.test"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set company: status %d", rec.Code)
	}
	do(t, s, http.MethodPut, "/api/session/topics", `{"topics":[{"id":"t1","topic":"Prix","suggestions":"x"}]}`)
	do(t, s, http.MethodPut, "/api/session/prompts", `{"prompts":[{"id":"p1","prompt":"a","tag":"Prix","type":"brand-discovery"}]}`)
	do(t, s, http.MethodPost, "/api/session/prompts", `{"prompts":[{"id":"p2","prompt":"b","tag":"Avis","type":"organic-mention","topicId":"t1"}]}`)

	var st session.State
	decode(t, do(t, s, http.MethodGet, "/api/session", ""), &st)
	if st.Company == nil || st.Company.Name != "Acme" {
		t.Fatalf("unexpected company %+v", st.Company)
	}
	if len(st.Topics) != 1 || st.Topics[0].ID != "t1" {
		t.Fatalf("unexpected topics %+v", st.Topics)
	}
	if len(st.Prompts) != 2 || st.Prompts[0].ID != "p1" || st.Prompts[1].TopicID != "t1" {
		t.Fatalf("unexpected prompts %+v", st.Prompts)
	}
	if st.Prompts[1].Type != model.PromptOrganicMention {
		t.Fatalf("unexpected prompt type %q", st.Prompts[1].Type)
	}
}

func TestSessionTemplates(t *testing.T) {
	s, _ := newTestServer(nil)

	var st session.State
	decode(t, do(t, s, http.MethodPut, "/api/session/templates/brand-discovery", `{"text":"mine {count}"}`), &st)
	if st.BrandDiscoveryPrompt != "mine {count}" {
		t.Fatalf("template not updated: %q", st.BrandDiscoveryPrompt)
	}
	if st.OrganicMentionPrompt != prompts.DefaultOrganicMention {
		t.Fatalf("other template changed")
	}

	decode(t, do(t, s, http.MethodDelete, "/api/session/templates/brand-discovery", ""), &st)
	if st.BrandDiscoveryPrompt != prompts.DefaultBrandDiscovery {
		t.Fatalf("template not reset")
	}

	if rec := do(t, s, http.MethodPut, "/api/session/templates/nope", `{"text":"x"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 got %d", rec.Code)
	}
}

func TestSessionLLMSettingsPatch(t *testing.T) {
	s, _ := newTestServer(nil)

	var st session.State
	decode(t, do(t, s, http.MethodPatch, "/api/session/llm-settings", `{"reasoning":"high"}`), &st)
	want := model.DefaultLLMSettings()
	want.Reasoning = model.LevelHigh
	if st.LLMSettings != want {
		t.Fatalf("unexpected settings %+v", st.LLMSettings)
	}

	rec := do(t, s, http.MethodPatch, "/api/session/llm-settings", `{"model":"gpt-2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 got %d", rec.Code)
	}
}

func TestSessionReset(t *testing.T) {
	s, _ := newTestServer(nil)

	do(t, s, http.MethodPut, "/api/session/company", `{"name":"Acme","description":"d","url":"u"}`)
	do(t, s, http.MethodPatch, "/api/session/llm-settings", `{"model":"gpt-5"}`)

	var st session.State
	decode(t, do(t, s, http.MethodPost, "/api/session/reset", ""), &st)
	def := session.DefaultState()
	if st.Company != nil || len(st.Prompts) != 0 || st.LLMSettings != def.LLMSettings || st.CompanyPrompt != def.CompanyPrompt {
		t.Fatalf("reset did not restore defaults: %+v", st)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s, _ := newTestServer(nil)

	do(t, s, http.MethodPut, "/api/session/company", `{"name":"Acme","description":"d","url":"u"}`)

	get := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	get.Header.Set(SessionHeader, "bob")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, get)

	var st session.State
	decode(t, rec, &st)
	if st.Company != nil {
		t.Fatalf("session bob should not see default company: %+v", st.Company)
	}
}
