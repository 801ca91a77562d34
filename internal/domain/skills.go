package domain

import (
	"strings"

	appErrors "github.com/coachdesk/coachdesk-api/pkg/errors"
)

// SkillSet is a case-insensitive string set. Entries keep the casing they
// were added with; lookups and uniqueness fold case.
type SkillSet struct {
	items []string
}

// NewSkillSet returns an empty skill set.
func NewSkillSet() *SkillSet {
	return &SkillSet{}
}

// Add inserts a skill, failing when it is already present in any casing.
func (s *SkillSet) Add(skill string) error {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Skill cannot be empty.")
	}
	if s.Contains(skill) {
		return appErrors.Clone(appErrors.ErrValidation, "Skill already added")
	}
	s.items = append(s.items, skill)
	return nil
}

// Remove drops a skill if present; removing an absent skill is a no-op.
func (s *SkillSet) Remove(skill string) {
	for i, item := range s.items {
		if strings.EqualFold(item, skill) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Replace swaps the whole set for the given skills, enforcing uniqueness.
func (s *SkillSet) Replace(skills []string) error {
	replacement := NewSkillSet()
	for _, skill := range skills {
		if err := replacement.Add(skill); err != nil {
			return err
		}
	}
	s.items = replacement.items
	return nil
}

// Contains reports case-insensitive membership.
func (s *SkillSet) Contains(skill string) bool {
	for _, item := range s.items {
		if strings.EqualFold(item, skill) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every given skill is present.
func (s *SkillSet) ContainsAll(skills []string) bool {
	for _, skill := range skills {
		if !s.Contains(skill) {
			return false
		}
	}
	return true
}

// Values returns a copy of the stored skills in insertion order.
func (s *SkillSet) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of skills in the set.
func (s *SkillSet) Len() int {
	return len(s.items)
}
