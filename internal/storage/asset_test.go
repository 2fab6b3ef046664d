package storage

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

// testSpec is a simple ValidatingSpec for testing
type testSpec struct {
	valid bool
}

func (s *testSpec) Validate() error {
	if !s.valid {
		return fmt.Errorf("spec is invalid")
	}
	return nil
}

func TestAsset_Validate(t *testing.T) {
	tests := map[string]struct {
		asset   Asset[*testSpec]
		expErrs []string
	}{
		"valid asset": {
			asset: Asset[*testSpec]{
				Version:    1,
				Identifier: "test-id",
				Spec:       &testSpec{valid: true},
			},
		},
		"version not set": {
			asset: Asset[*testSpec]{
				Identifier: "test-id",
				Spec:       &testSpec{valid: true},
			},
			expErrs: []string{"version must be set"},
		},
		"empty identifier": {
			asset: Asset[*testSpec]{
				Version: 1,
				Spec:    &testSpec{valid: true},
			},
			expErrs: []string{"id must be set"},
		},
		"identifier with underscore": {
			asset: Asset[*testSpec]{
				Version:    1,
				Identifier: "test_id",
				Spec:       &testSpec{valid: true},
			},
			expErrs: []string{"id must be alphanumeric"},
		},
		"mixed case identifier is valid": {
			asset: Asset[*testSpec]{
				Version:    1,
				Identifier: "Human",
				Spec:       &testSpec{valid: true},
			},
		},
		"nil spec": {
			asset: Asset[*testSpec]{
				Version:    1,
				Identifier: "test-id",
			},
			expErrs: []string{"spec must be set"},
		},
		"multiple errors": {
			asset: Asset[*testSpec]{
				Spec: &testSpec{valid: false},
			},
			expErrs: []string{
				"version must be set",
				"id must be set",
				"spec is invalid",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()

			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("expected errors %v, got nil", tt.expErrs)
			}

			for _, e := range tt.expErrs {
				if !strings.Contains(err.Error(), e) {
					t.Errorf("error %q does not contain %q", err.Error(), e)
				}
			}
		})
	}
}

type mockTestSpecStore struct {
	records map[Identifier]*testSpec
}

func (m *mockTestSpecStore) Save(id string, o *testSpec) error {
	m.records[Identifier(id)] = o
	return nil
}

func (m *mockTestSpecStore) Get(id string) *testSpec {
	return m.records[Identifier(id)]
}

func (m *mockTestSpecStore) GetAll() map[Identifier]*testSpec {
	return m.records
}

func TestSmartIdentifier_Resolve(t *testing.T) {
	store := &mockTestSpecStore{records: map[Identifier]*testSpec{
		"known": {valid: true},
	}}

	tests := map[string]struct {
		key    string
		expErr string
	}{
		"resolves known key": {
			key: "known",
		},
		"unknown key": {
			key:    "missing",
			expErr: `testSpec "missing" not found`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			id := NewSmartIdentifier[*testSpec](tt.key)
			err := id.Resolve(store)

			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id.Get() != store.records["known"] {
				t.Errorf("resolved: got %p, want %p", id.Get(), store.records["known"])
			}
			testutil.AssertEqual(t, "key", id.Key(), "known")
		})
	}
}

func TestSmartIdentifier_JSON(t *testing.T) {
	var id SmartIdentifier[*testSpec]
	if err := id.UnmarshalJSON([]byte(`"names-human-male"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "key", id.Key(), "names-human-male")

	b, err := id.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "json", string(b), `"names-human-male"`)

	testutil.AssertErrorContains(t, NewSmartIdentifier[*testSpec]("").Validate(), "testSpec identifier is required")
}
