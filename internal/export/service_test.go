package export

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRecipe(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)

	lines := []string{"start", "digit", "end"}

	t.Run("writes lines with header", func(t *testing.T) {
		err := svc.SaveRecipe(lines, Options{Path: "/out/a.rex", Header: "saved by test"})
		require.NoError(t, err)

		data, err := afero.ReadFile(fs, "/out/a.rex")
		require.NoError(t, err)
		assert.Equal(t, "# saved by test\nstart\ndigit\nend\n", string(data))
	})

	t.Run("refuses to overwrite by default", func(t *testing.T) {
		err := svc.SaveRecipe(lines, Options{Path: "/out/a.rex"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("overwrites when asked", func(t *testing.T) {
		err := svc.SaveRecipe([]string{"digit"}, Options{Path: "/out/a.rex", Overwrite: true})
		require.NoError(t, err)

		data, err := afero.ReadFile(fs, "/out/a.rex")
		require.NoError(t, err)
		assert.Equal(t, "digit\n", string(data))
	})

	t.Run("requires a path", func(t *testing.T) {
		assert.Error(t, svc.SaveRecipe(lines, Options{}))
	})
}

func TestSavePattern(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs)

	err := svc.SavePattern(`^\d+$`, Options{Path: "/out/p.txt"})
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/out/p.txt")
	require.NoError(t, err)
	assert.Equal(t, "^\\d+$\n", string(data))

	assert.Error(t, svc.SavePattern("x", Options{Path: "/out/p.txt"}))
	assert.Error(t, svc.SavePattern("x", Options{}))
}
