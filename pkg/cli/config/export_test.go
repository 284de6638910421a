package config

// NewOrgsForTest creates an Orgs config for testing purposes
func NewOrgsForTest(path string) *Orgs {
	return &Orgs{path: path}
}
