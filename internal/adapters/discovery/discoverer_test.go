package discovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/discovery"
	"github.com/mrcacomacaco/zodkit-sub002/internal/adapters/fs"
)

func newDiscoverer() *discovery.Discoverer {
	return discovery.NewDiscoverer(fs.NewHasher(), fs.NewRegexScanner(), 0)
}

func writeSource(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscoverUnits_ExtractsNamesHashAndSize(t *testing.T) {
	root := t.TempDir()
	content := "export const UserSchema = z.object({ id: z.string() })\n"
	path := writeSource(t, root, "user.schema.ts", content)

	units, err := newDiscoverer().DiscoverUnits(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, units, 1)

	unit := units[0]
	assert.Equal(t, path, unit.Path)
	assert.Equal(t, []string{"UserSchema"}, unit.Names)
	assert.Equal(t, fs.NewHasher().HashBytes([]byte(content)), unit.Hash)
	assert.Equal(t, int64(len(content)), unit.Size)
	assert.False(t, unit.ModTime.IsZero())
	assert.Empty(t, unit.Imports)
}

func TestDiscoverUnits_ResolvesRelativeImports(t *testing.T) {
	root := t.TempDir()
	base := writeSource(t, root, "base.schema.ts", "export const Base = z.object({})\n")
	indexed := writeSource(t, root, "shared/index.ts", "export const Shared = z.object({})\n")
	jsAliased := writeSource(t, root, "util.ts", "export const Util = z.object({})\n")

	user := writeSource(t, root, "user.schema.ts", `
import { Base } from "./base.schema"
import { Shared } from "./shared"
import { Util } from "./util.js"
import { z } from "zod"
export const UserSchema = Base.extend({})
`)

	units, err := newDiscoverer().DiscoverUnits(context.Background(), []string{user})
	require.NoError(t, err)
	require.Len(t, units, 1)

	// Bare specifiers like "zod" never enter the graph.
	assert.ElementsMatch(t, []string{base, indexed, jsAliased}, units[0].Imports)
}

func TestDiscoverUnits_UnresolvableImportIsDropped(t *testing.T) {
	root := t.TempDir()
	user := writeSource(t, root, "user.schema.ts", `
import { Gone } from "./missing"
export const UserSchema = z.object({})
`)

	units, err := newDiscoverer().DiscoverUnits(context.Background(), []string{user})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Empty(t, units[0].Imports)
}

func TestDiscoverUnits_SkipsUnreadablePaths(t *testing.T) {
	root := t.TempDir()
	good := writeSource(t, root, "good.schema.ts", "export const Good = z.object({})\n")
	missing := filepath.Join(root, "missing.schema.ts")

	units, err := newDiscoverer().DiscoverUnits(context.Background(), []string{missing, good, root})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, good, units[0].Path)
}

func TestDiscoverUnits_ContextCancellation(t *testing.T) {
	root := t.TempDir()
	path := writeSource(t, root, "a.schema.ts", "export const A = z.object({})\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units, err := newDiscoverer().DiscoverUnits(ctx, []string{path})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, units)
}
