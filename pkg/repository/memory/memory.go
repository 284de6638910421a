package memory

import (
	"github.com/SamWylde/Grant-Tracker-sub000/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory backend used for development and tests
type Memory struct {
	grant *grantRepository
	org   *orgRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		grant: newGrantRepository(),
		org:   newOrgRepository(),
	}
}

func (m *Memory) Grant() interfaces.GrantRepository {
	return m.grant
}

func (m *Memory) Org() interfaces.OrgRepository {
	return m.org
}

func (m *Memory) Close() error {
	return nil
}
