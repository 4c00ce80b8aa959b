package meta_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/approver/service/meta"
)

type document struct {
	Name      string `yaml:"name"`
	Threshold int    `yaml:"threshold"`
}

func TestService_Load(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "clerk.yaml"), []byte("name: Clerk\nthreshold: ${env.CLERK_LIMIT}\n"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unterminated\n"), 0o644))
	t.Setenv("CLERK_LIMIT", "250")

	testCases := []struct {
		description string
		baseURL     string
		URL         string
		expect      *document
		expectErr   bool
	}{
		{
			description: "absolute path",
			URL:         filepath.Join(dir, "clerk.yaml"),
			expect:      &document{Name: "Clerk", Threshold: 250},
		},
		{
			description: "relative to base URL",
			baseURL:     dir,
			URL:         "clerk.yaml",
			expect:      &document{Name: "Clerk", Threshold: 250},
		},
		{
			description: "missing document",
			URL:         filepath.Join(dir, "missing.yaml"),
			expectErr:   true,
		},
		{
			description: "invalid yaml",
			URL:         filepath.Join(dir, "broken.yaml"),
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv := meta.New(afs.New(), testCase.baseURL)
			actual := &document{}
			err := srv.Load(context.Background(), testCase.URL, actual)
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.EqualValues(t, testCase.expect, actual)
		})
	}
}
