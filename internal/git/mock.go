package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for testing.
// Each method is backed by a function field. If the function field is nil,
// the method returns sensible zero values.
type MockRepository struct {
	TagsFunc      func() ([]Tag, error)
	LatestTagFunc func() (Tag, bool, error)
}

func (m *MockRepository) Tags() ([]Tag, error) {
	if m.TagsFunc != nil {
		return m.TagsFunc()
	}
	return nil, nil
}

func (m *MockRepository) LatestTag() (Tag, bool, error) {
	if m.LatestTagFunc != nil {
		return m.LatestTagFunc()
	}
	return Tag{}, false, nil
}
