// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBareID(t *testing.T) {
	tests := []struct {
		name string
		eid  string
		want string
	}{
		{"scopus eid", "2-s2.0-12345", "12345"},
		{"long eid", "2-s2.0-85012345678", "85012345678"},
		{"last delimiter wins", "2-s2.0-0-777", "777"},
		{"delimiter inside digits", "2-s2.0-10-20", "20"},
		{"bare id passes through", "12345", "12345"},
		{"empty", "", ""},
		{"trailing delimiter", "2-s2.0-", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBareID(tt.eid)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, ExtractBareID(got), "extraction is idempotent")
		})
	}
}

func TestEIDFromBareID(t *testing.T) {
	assert.Equal(t, "2-s2.0-12345", EIDFromBareID("12345"))
	assert.Equal(t, "12345", ExtractBareID(EIDFromBareID("12345")))
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2-s2.0-222")

	eids := []string{"2-s2.0-111", "2-s2.0-222", "2-s2.0-333"}

	resolve := func(t *testing.T, eids []string, refresh bool, dir string) []string {
		t.Helper()
		got, err := Resolve(eids, refresh, dir)
		require.NoError(t, err)
		return got
	}

	t.Run("skips cached", func(t *testing.T) {
		assert.Equal(t, []string{"111", "333"}, resolve(t, eids, false, dir))
	})
	t.Run("refresh requests everything", func(t *testing.T) {
		assert.Equal(t, []string{"111", "222", "333"}, resolve(t, eids, true, dir))
	})
	t.Run("all cached resolves to nothing", func(t *testing.T) {
		got := resolve(t, []string{"2-s2.0-222"}, false, dir)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
	t.Run("missing cache dir", func(t *testing.T) {
		missing := filepath.Join(dir, "nope")
		assert.Equal(t, []string{"111", "222", "333"}, resolve(t, eids, false, missing))
	})
	t.Run("no input", func(t *testing.T) {
		assert.Empty(t, resolve(t, nil, false, dir))
	})
	t.Run("unreadable cache dir", func(t *testing.T) {
		notDir := filepath.Join(dir, "2-s2.0-222")
		_, err := Resolve(eids, false, notDir)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, fs.ErrNotExist)
	})
	t.Run("refresh does not check the cache", func(t *testing.T) {
		notDir := filepath.Join(dir, "2-s2.0-222")
		assert.Equal(t, []string{"111", "222", "333"}, resolve(t, eids, true, notDir))
	})
}

func TestIsCached(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2-s2.0-111")

	ok, err := IsCached(dir, "2-s2.0-111")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCached(dir, "2-s2.0-222")
	require.NoError(t, err)
	assert.False(t, ok)

	// A regular file used as the cache directory fails with ENOTDIR, which
	// is not the same as an absent entry.
	ok, err = IsCached(filepath.Join(dir, "2-s2.0-111"), "2-s2.0-222")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPartition(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "2-s2.0-111")

	missing, cached, err := partition([]string{"2-s2.0-111", "2-s2.0-222"}, false, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"222"}, missing)
	assert.Equal(t, []string{"2-s2.0-111"}, cached)

	missing, cached, err = partition([]string{"2-s2.0-111", "2-s2.0-222"}, true, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222"}, missing)
	assert.Empty(t, cached)
}

func TestDateRange(t *testing.T) {
	r := NewDateRange(2015, 2020)
	assert.Equal(t, "2015-2020", r.String())
	assert.NoError(t, r.Validate())

	assert.Equal(t, time.Now().Year(), NewDateRange(2015, 0).End)

	single := NewDateRange(2020, 2020)
	assert.Equal(t, "2020-2020", single.String())
	assert.NoError(t, single.Validate())

	assert.ErrorIs(t, NewDateRange(2021, 2020).Validate(), ErrInvalidRange)
	assert.ErrorIs(t, DateRange{}.Validate(), ErrInvalidRange)
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
}
