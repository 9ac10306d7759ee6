package modules

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// MaxCountries bounds a country list.
const MaxCountries = 195

type countrySet struct {
	mu        sync.RWMutex
	countries map[domain.Country]struct{}
}

func newCountrySet(initial []domain.Country) (*countrySet, error) {
	s := &countrySet{countries: make(map[domain.Country]struct{})}
	if err := s.add(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// add inserts every country or none.
func (s *countrySet) add(countries []domain.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[domain.Country]struct{}, len(countries))
	for _, c := range countries {
		if !c.IsValid() {
			return dErrors.Newf(dErrors.CodeInvalidInput, "country code %d out of range", c)
		}
		if _, ok := s.countries[c]; ok {
			return dErrors.Newf(dErrors.CodeConflict, "country %d already listed", c)
		}
		if _, ok := seen[c]; ok {
			return dErrors.Newf(dErrors.CodeConflict, "country %d listed twice", c)
		}
		seen[c] = struct{}{}
	}
	if len(s.countries)+len(seen) > MaxCountries {
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot list more than %d countries", MaxCountries)
	}
	for c := range seen {
		s.countries[c] = struct{}{}
	}
	return nil
}

// remove deletes every country or none.
func (s *countrySet) remove(countries []domain.Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range countries {
		if _, ok := s.countries[c]; !ok {
			return dErrors.Newf(dErrors.CodeNotFound, "country %d is not listed", c)
		}
	}
	for _, c := range countries {
		delete(s.countries, c)
	}
	return nil
}

func (s *countrySet) has(c domain.Country) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.countries[c]
	return ok
}

func (s *countrySet) list() []domain.Country {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Country, 0, len(s.countries))
	for c := range s.countries {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// replace swaps the whole list after validating it.
func (s *countrySet) replace(countries []domain.Country) error {
	next, err := newCountrySet(countries)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.countries = next.countries
	s.mu.Unlock()
	return nil
}

type countryState struct {
	Countries []domain.Country `json:"countries"`
}

func (s *countrySet) marshal() ([]byte, error) {
	return json.Marshal(countryState{Countries: s.list()})
}

func (s *countrySet) unmarshal(data []byte) error {
	var st countryState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	return s.replace(st.Countries)
}

// CountryRestrict rejects transfers to holders of a listed country.
type CountryRestrict struct {
	*base
	set *countrySet
}

func NewCountryRestrict(name string, countries ...domain.Country) (*CountryRestrict, error) {
	b, err := newBase(name, KindCountryRestrict)
	if err != nil {
		return nil, err
	}
	set, err := newCountrySet(countries)
	if err != nil {
		return nil, err
	}
	return &CountryRestrict{base: b, set: set}, nil
}

func (m *CountryRestrict) AddCountryRestrictions(countries ...domain.Country) error {
	return m.set.add(countries)
}

func (m *CountryRestrict) RemoveCountryRestrictions(countries ...domain.Country) error {
	return m.set.remove(countries)
}

func (m *CountryRestrict) IsCountryRestricted(c domain.Country) bool {
	return m.set.has(c)
}

func (m *CountryRestrict) Countries() []domain.Country {
	return m.set.list()
}

func (m *CountryRestrict) MarshalState() ([]byte, error) { return m.set.marshal() }
func (m *CountryRestrict) UnmarshalState(data []byte) error { return m.set.unmarshal(data) }

func (m *CountryRestrict) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	return !m.set.has(t.To.Country)
}

// CountryAllow admits transfers only to holders of a listed country.
type CountryAllow struct {
	*base
	set *countrySet
}

func NewCountryAllow(name string, countries ...domain.Country) (*CountryAllow, error) {
	b, err := newBase(name, KindCountryAllow)
	if err != nil {
		return nil, err
	}
	set, err := newCountrySet(countries)
	if err != nil {
		return nil, err
	}
	return &CountryAllow{base: b, set: set}, nil
}

func (m *CountryAllow) AddAllowedCountries(countries ...domain.Country) error {
	return m.set.add(countries)
}

func (m *CountryAllow) RemoveAllowedCountries(countries ...domain.Country) error {
	return m.set.remove(countries)
}

func (m *CountryAllow) IsCountryAllowed(c domain.Country) bool {
	return m.set.has(c)
}

func (m *CountryAllow) Countries() []domain.Country {
	return m.set.list()
}

func (m *CountryAllow) MarshalState() ([]byte, error) { return m.set.marshal() }
func (m *CountryAllow) UnmarshalState(data []byte) error { return m.set.unmarshal(data) }

func (m *CountryAllow) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	return m.set.has(t.To.Country)
}
