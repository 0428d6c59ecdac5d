package session

import (
	"fmt"
	"sync"
	"testing"

	"promptlab/internal/model"
	"promptlab/internal/prompts"
)

func TestNewStoreStartsFromDefaults(t *testing.T) {
	st := NewStore().Get()
	if st.Company != nil || len(st.Topics) != 0 || len(st.Prompts) != 0 {
		t.Fatalf("expected empty collections, got %+v", st)
	}
	if st.LLMSettings != model.DefaultLLMSettings() {
		t.Fatalf("unexpected settings %+v", st.LLMSettings)
	}
	if st.TopicsPrompt != prompts.DefaultTopics {
		t.Fatalf("topics template not defaulted")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	s := NewStore()
	s.SetCompany(model.Company{Name: "Acme", Description: "d", URL: "https://acme.test"})
	s.SetTopics([]model.Topic{{ID: "t1", Topic: "Enclumes"}})
	s.AddPrompts([]model.Prompt{{ID: "p1", Prompt: "x", Type: model.PromptBrandDiscovery}})
	s.UpdateCompanyPrompt("c")
	s.UpdateTopicsPrompt("t")
	s.UpdateBrandDiscoveryPrompt("b")
	s.UpdateOrganicMentionPrompt("o")
	s.UpdateLLMSettings(model.LLMSettings{Model: model.ModelGPT5, Verbosity: model.LevelHigh})

	st := s.Reset()
	def := DefaultState()
	if st.Company != nil || len(st.Topics) != 0 || len(st.Prompts) != 0 {
		t.Fatalf("collections not reset: %+v", st)
	}
	if st.CompanyPrompt != def.CompanyPrompt || st.TopicsPrompt != def.TopicsPrompt ||
		st.BrandDiscoveryPrompt != def.BrandDiscoveryPrompt || st.OrganicMentionPrompt != def.OrganicMentionPrompt {
		t.Fatalf("templates not reset")
	}
	if st.LLMSettings != def.LLMSettings {
		t.Fatalf("settings not reset: %+v", st.LLMSettings)
	}
}

func TestUpdateLLMSettingsIsPartial(t *testing.T) {
	s := NewStore()
	s.UpdateLLMSettings(model.LLMSettings{Model: model.ModelGPT5Nano, Verbosity: model.LevelMedium})
	st := s.UpdateLLMSettings(model.LLMSettings{Reasoning: model.LevelHigh})

	want := model.LLMSettings{
		Model:             model.ModelGPT5Nano,
		Reasoning:         model.LevelHigh,
		Verbosity:         model.LevelMedium,
		SearchContextSize: model.LevelLow,
	}
	if st.LLMSettings != want {
		t.Fatalf("unexpected settings %+v", st.LLMSettings)
	}
}

func TestAddPromptsAppendsAndSetPromptsReplaces(t *testing.T) {
	s := NewStore()
	s.AddPrompts([]model.Prompt{{ID: "p1"}})
	st := s.AddPrompts([]model.Prompt{{ID: "p2"}, {ID: "p3"}})
	if len(st.Prompts) != 3 || st.Prompts[0].ID != "p1" || st.Prompts[2].ID != "p3" {
		t.Fatalf("unexpected prompts after add: %+v", st.Prompts)
	}

	st = s.SetPrompts([]model.Prompt{{ID: "p9"}})
	if len(st.Prompts) != 1 || st.Prompts[0].ID != "p9" {
		t.Fatalf("unexpected prompts after set: %+v", st.Prompts)
	}
}

func TestSetCompanyReplacesPrevious(t *testing.T) {
	s := NewStore()
	s.SetCompany(model.Company{Name: "Old"})
	st := s.SetCompany(model.Company{Name: "New"})
	if st.Company == nil || st.Company.Name != "New" {
		t.Fatalf("unexpected company %+v", st.Company)
	}
}

func TestResetTemplate(t *testing.T) {
	s := NewStore()
	s.UpdateOrganicMentionPrompt("custom")
	s.UpdateTopicsPrompt("custom topics")
	st := s.ResetTemplate(prompts.KindOrganicMention)
	if st.OrganicMentionPrompt != prompts.DefaultOrganicMention {
		t.Fatalf("organic template not reset")
	}
	if st.TopicsPrompt != "custom topics" {
		t.Fatalf("other templates must be untouched")
	}
	if st.Template(prompts.KindTopics) != "custom topics" {
		t.Fatalf("Template accessor mismatch")
	}
}

func TestSubscribersSeeEveryUpdate(t *testing.T) {
	s := NewStore()
	var names []string
	unsubscribe := s.Subscribe(func(st State) {
		if st.Company == nil {
			names = append(names, "")
			return
		}
		names = append(names, st.Company.Name)
	})
	s.SetCompany(model.Company{Name: "A"})
	s.SetCompany(model.Company{Name: "B"})
	unsubscribe()
	s.SetCompany(model.Company{Name: "C"})

	if len(names) != 3 || names[0] != "" || names[1] != "A" || names[2] != "B" {
		t.Fatalf("unexpected notifications %v", names)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := NewStore()
	topics := []model.Topic{{ID: "t1", Topic: "a"}}
	s.SetTopics(topics)
	topics[0].Topic = "mutated by caller"

	got := s.Get()
	if got.Topics[0].Topic != "a" {
		t.Fatalf("store aliased caller slice")
	}
	got.Topics[0].Topic = "mutated by reader"
	if s.Get().Topics[0].Topic != "a" {
		t.Fatalf("store aliased snapshot slice")
	}
}

func TestConcurrentUpdatesNotifyInOrder(t *testing.T) {
	s := NewStore()
	var seen []int
	s.Subscribe(func(st State) {
		seen = append(seen, len(st.Prompts))
	})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.AddPrompts([]model.Prompt{{ID: fmt.Sprintf("p%d", i)}})
		}(i)
	}
	wg.Wait()

	if len(seen) != n+1 {
		t.Fatalf("expected %d notifications, got %d", n+1, len(seen))
	}
	for i, l := range seen {
		if l != i {
			t.Fatalf("notification %d saw %d prompts: %v", i, l, seen)
		}
	}
}
