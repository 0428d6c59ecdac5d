// Package session holds the working state of one user session: the inferred
// company, generated topics and prompts, the four editable templates and the
// LLM settings. State lives in memory only.
package session

import (
	"sync"

	"promptlab/internal/model"
	"promptlab/internal/prompts"
)

type State struct {
	Company *model.Company `json:"company"`
	Topics  []model.Topic  `json:"topics"`
	Prompts []model.Prompt `json:"prompts"`

	CompanyPrompt        string `json:"companyPrompt"`
	TopicsPrompt         string `json:"topicsPrompt"`
	BrandDiscoveryPrompt string `json:"brandDiscoveryPrompt"`
	OrganicMentionPrompt string `json:"organicMentionPrompt"`

	LLMSettings model.LLMSettings `json:"llmSettings"`
}

func DefaultState() State {
	return State{
		Topics:               []model.Topic{},
		Prompts:              []model.Prompt{},
		CompanyPrompt:        prompts.DefaultCompany,
		TopicsPrompt:         prompts.DefaultTopics,
		BrandDiscoveryPrompt: prompts.DefaultBrandDiscovery,
		OrganicMentionPrompt: prompts.DefaultOrganicMention,
		LLMSettings:          model.DefaultLLMSettings(),
	}
}

// Template returns the current text of the template of the given kind.
func (s State) Template(k prompts.Kind) string {
	switch k {
	case prompts.KindCompany:
		return s.CompanyPrompt
	case prompts.KindTopics:
		return s.TopicsPrompt
	case prompts.KindBrandDiscovery:
		return s.BrandDiscoveryPrompt
	case prompts.KindOrganicMention:
		return s.OrganicMentionPrompt
	default:
		return ""
	}
}

func (s State) withTemplate(k prompts.Kind, text string) State {
	switch k {
	case prompts.KindCompany:
		s.CompanyPrompt = text
	case prompts.KindTopics:
		s.TopicsPrompt = text
	case prompts.KindBrandDiscovery:
		s.BrandDiscoveryPrompt = text
	case prompts.KindOrganicMention:
		s.OrganicMentionPrompt = text
	}
	return s
}

func (s State) clone() State {
	out := s
	if s.Company != nil {
		c := *s.Company
		out.Company = &c
	}
	out.Topics = append([]model.Topic{}, s.Topics...)
	out.Prompts = append([]model.Prompt{}, s.Prompts...)
	return out
}

// Store is a state container with synchronous change notification. Inputs are
// stored as given; callers validate.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[int]func(State)
	nextSub int

	// notifyMu is held from an update until its subscribers have run, so
	// deliveries follow the order of updates.
	notifyMu sync.Mutex
}

func NewStore() *Store {
	return &Store{state: DefaultState(), subs: map[int]func(State){}}
}

func (s *Store) Get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Update replaces the state with fn(current) and notifies subscribers in
// subscription order. fn runs under the store lock and must not call back
// into the store. Subscribers may read the store but must not update it.
func (s *Store) Update(fn func(State) State) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.state = fn(s.state.clone()).clone()
	snap := s.state.clone()
	fns := s.subscribersLocked()
	s.mu.Unlock()

	for _, f := range fns {
		f(snap)
	}
	return snap
}

// Subscribe calls fn with the current state and after every update.
func (s *Store) Subscribe(fn func(State)) func() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	snap := s.state.clone()
	s.mu.Unlock()

	fn(snap)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) subscribersLocked() []func(State) {
	fns := make([]func(State), 0, len(s.subs))
	for id := 0; id < s.nextSub; id++ {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

func (s *Store) SetCompany(c model.Company) State {
	return s.Update(func(st State) State {
		st.Company = &c
		return st
	})
}

func (s *Store) SetTopics(topics []model.Topic) State {
	return s.Update(func(st State) State {
		st.Topics = topics
		return st
	})
}

func (s *Store) SetPrompts(ps []model.Prompt) State {
	return s.Update(func(st State) State {
		st.Prompts = ps
		return st
	})
}

func (s *Store) AddPrompts(ps []model.Prompt) State {
	return s.Update(func(st State) State {
		st.Prompts = append(st.Prompts, ps...)
		return st
	})
}

func (s *Store) UpdateTemplate(k prompts.Kind, text string) State {
	return s.Update(func(st State) State { return st.withTemplate(k, text) })
}

func (s *Store) UpdateCompanyPrompt(text string) State {
	return s.UpdateTemplate(prompts.KindCompany, text)
}

func (s *Store) UpdateTopicsPrompt(text string) State {
	return s.UpdateTemplate(prompts.KindTopics, text)
}

func (s *Store) UpdateBrandDiscoveryPrompt(text string) State {
	return s.UpdateTemplate(prompts.KindBrandDiscovery, text)
}

func (s *Store) UpdateOrganicMentionPrompt(text string) State {
	return s.UpdateTemplate(prompts.KindOrganicMention, text)
}

// ResetTemplate restores one template to its built-in default.
func (s *Store) ResetTemplate(k prompts.Kind) State {
	return s.UpdateTemplate(k, prompts.Default(k))
}

// UpdateLLMSettings merges the non-empty fields of patch into the current
// settings.
func (s *Store) UpdateLLMSettings(patch model.LLMSettings) State {
	return s.Update(func(st State) State {
		st.LLMSettings = st.LLMSettings.Merge(patch)
		return st
	})
}

func (s *Store) Reset() State {
	return s.Update(func(State) State { return DefaultState() })
}
