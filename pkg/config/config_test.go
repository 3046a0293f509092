package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gitfarm/pkg/config"
	"github.com/arthur-debert/gitfarm/pkg/errors"
	"github.com/arthur-debert/gitfarm/pkg/testutil"
	"github.com/arthur-debert/gitfarm/pkg/types"
)

const sampleDoc = `
repos:
  shared:
    path: /home/user/src
    url: git@example.com:shared.git
categories:
  dev:
    flags: [fast]
    repos:
      gg:
        path: /home/user/.dots
        url: git@example.com:gg.git
        flags: [clone, push]
      shared:
    links:
      gg:
        tx: /home/user/.dots/gg
        rx: /home/user/.config/gg
  work:
    repos:
      shared:
      tools:
        path: /home/user/work
links:
  starship:
    tx: /home/user/.dots/starship.toml
    rx: /home/user/.config/starship.toml
`

func TestParseDocument(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	// The store holds each entry exactly once, however many categories
	// reference it
	assert.Equal(t, 3, cfg.Store.Len())

	gg, ok := cfg.Store.Get("gg")
	require.True(t, ok)
	assert.Equal(t, "/home/user/.dots", gg.Path)
	assert.Equal(t, "git@example.com:gg.git", gg.URL)
	assert.Equal(t, types.KindGit, gg.Kind)
	assert.Equal(t, types.FlagSet{types.FlagClone, types.FlagPush}, gg.Flags)

	// Categories come out in declaration order
	assert.Equal(t, []string{"dev", "work"}, cfg.CategoryNames)

	dev := cfg.Categories["dev"]
	assert.Equal(t, types.FlagSet{types.FlagFast}, dev.Flags)
	assert.Equal(t, []string{"gg", "shared"}, dev.RepoKeys)
	require.Len(t, dev.Links, 1)
	assert.Equal(t, "/home/user/.dots/gg", dev.Links[0].Source)
	assert.Equal(t, "/home/user/.config/gg", dev.Links[0].Target)

	work := cfg.Categories["work"]
	assert.Equal(t, []string{"shared", "tools"}, work.RepoKeys)

	require.Len(t, cfg.Links, 1)
	assert.Equal(t, "starship", cfg.Links[0].Name)
}

func TestParseResolvesSharedEntries(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	// "shared" is declared once in the store section and referenced with a
	// null body from both categories
	for _, catName := range []string{"dev", "work"} {
		entries, err := cfg.Store.Resolve(cfg.Categories[catName])
		require.NoError(t, err)
		var found bool
		for _, entry := range entries {
			if entry.Name == "shared" {
				found = true
				assert.Equal(t, "/home/user/src", entry.Path)
			}
		}
		assert.True(t, found, "category %s should resolve shared", catName)
	}
}

func TestParseDanglingReferenceIsFatal(t *testing.T) {
	doc := `
categories:
  dev:
    repos:
      missing:
`
	_, err := config.Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDanglingRef))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestParseDuplicateKeyIsFatal(t *testing.T) {
	doc := `
categories:
  dev:
    repos:
      gg:
        path: /a
      gg:
        path: /b
`
	_, err := config.Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateKey))
}

func TestParseUnknownFlagIsFatal(t *testing.T) {
	doc := `
categories:
  dev:
    repos:
      gg:
        path: /a
        flags: [warp]
`
	_, err := config.Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestParseMalformedDocument(t *testing.T) {
	_, err := config.Parse([]byte("categories: [not, a, mapping]"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestParseLinkNeedsBothEnds(t *testing.T) {
	doc := `
links:
  broken:
    tx: /only/source
`
	_, err := config.Parse([]byte(doc))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.Save(cfg, path))

	reloaded, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Store.All(), reloaded.Store.All())
	assert.Equal(t, cfg.CategoryNames, reloaded.CategoryNames)
	assert.Equal(t, cfg.Categories["dev"].RepoKeys, reloaded.Categories["dev"].RepoKeys)
	assert.Equal(t, cfg.Categories["dev"].Links, reloaded.Categories["dev"].Links)
	assert.Equal(t, cfg.Links, reloaded.Links)
}

func TestAddRepo(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	entry := types.RepoEntry{Name: "li", Path: "/home/user/src", URL: "git@example.com:li.git"}
	require.NoError(t, cfg.AddRepo("dev", entry))

	stored, ok := cfg.Store.Get("li")
	require.True(t, ok)
	assert.Equal(t, types.KindGit, stored.Kind)
	assert.Equal(t, []string{"gg", "shared", "li"}, cfg.Categories["dev"].RepoKeys)

	// Adding again does not duplicate the key
	require.NoError(t, cfg.AddRepo("dev", entry))
	assert.Equal(t, []string{"gg", "shared", "li"}, cfg.Categories["dev"].RepoKeys)

	err = cfg.AddRepo("nope", types.RepoEntry{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestAddLink(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	link := types.Link{Name: "vimrc", Source: "/dots/vimrc", Target: "/home/user/.vimrc"}
	require.NoError(t, cfg.AddLink("", link))
	assert.Len(t, cfg.Links, 2)

	require.NoError(t, cfg.AddLink("dev", link))
	assert.Len(t, cfg.Categories["dev"].Links, 2)

	err = cfg.AddLink("dev", types.Link{Name: "incomplete", Source: "/only"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSavedDocumentIsNormalized(t *testing.T) {
	cfg, err := config.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "out.yaml", "")
	require.NoError(t, config.Save(cfg, path))

	reloaded, err := config.Load(path)
	require.NoError(t, err)

	// Normalized form keeps every entry in the top-level store section;
	// resolution results are unchanged
	for _, name := range cfg.CategoryNames {
		want, err := cfg.Store.Resolve(cfg.Categories[name])
		require.NoError(t, err)
		got, err := reloaded.Store.Resolve(reloaded.Categories[name])
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
