package services

import "sync/atomic"

// CriteriaStore holds the most recently extracted criteria list in a single
// process-wide slot. Each successful extraction replaces the slot wholesale;
// there is no merge and no versioning. Extraction and scoring requests are
// not otherwise coordinated, so a scoring request racing an extraction may
// observe either the old or the new list (single-process, single-tenant
// assumption).
type CriteriaStore struct {
	criteria atomic.Pointer[[]string]
}

func NewCriteriaStore() *CriteriaStore {
	return &CriteriaStore{}
}

// Replace swaps in a new criteria list, last write wins.
func (s *CriteriaStore) Replace(criteria []string) {
	copied := make([]string, len(criteria))
	copy(copied, criteria)
	s.criteria.Store(&copied)
}

// Get returns the stored criteria and whether any extraction has succeeded
// yet. The returned slice must not be mutated by callers.
func (s *CriteriaStore) Get() ([]string, bool) {
	p := s.criteria.Load()
	if p == nil || len(*p) == 0 {
		return nil, false
	}
	return *p, true
}
