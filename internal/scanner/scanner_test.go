package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestScanner(root string) *Scanner {
	return New(Options{
		Root:             root,
		Extensions:       []string{".vue", ".ts"},
		SkipSegment:      "i18n/",
		Function:         "t",
		IndirectFiles:    []string{"composables/useRuleOptions.ts"},
		IndirectProperty: "labelKey",
	})
}

func TestScanDirectCalls(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "components", "Toolbar.vue"),
		"<script>\n"+
			"const a = t('common.save')\n"+
			"const b = t(\"common.cancel\", { count: 2 })\n"+
			"</script>\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.Equal(t, []Usage{{File: "components/Toolbar.vue", Line: 2}}, res.Direct["common.save"])
	assert.Equal(t, []Usage{{File: "components/Toolbar.vue", Line: 3}}, res.Direct["common.cancel"])
}

func TestScanMultiLineCall(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Feed.ts"),
		"const label = t(\n"+
			"  'feed.refresh',\n"+
			"  { count: total },\n"+
			")\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	require.Contains(t, res.Direct, "feed.refresh")
	assert.Equal(t, 1, res.Direct["feed.refresh"][0].Line)
}

func TestScanBoundaryExcludesLongerIdentifiers(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Render.ts"),
		"createElement('div')\n"+
			"formatText('hello')\n"+
			"emit('update')\n"+
			"i18n.t('menu.open')\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.Len(t, res.Direct, 1)
	assert.Contains(t, res.Direct, "menu.open")
}

func TestScanKeyCharsetExcludesExpressions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dyn.ts"),
		"t(keyVariable)\n"+
			"t('prefix.' + suffix)\n"+
			"t('real.key')\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.Len(t, res.Direct, 1)
	assert.Contains(t, res.Direct, "real.key")
}

func TestScanIgnoresComments(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Old.ts"),
		"// t('commented.line')\n"+
			"/*\n"+
			"t('commented.block')\n"+
			"*/\n"+
			"t('alive.key')\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.NotContains(t, res.Direct, "commented.line")
	assert.NotContains(t, res.Direct, "commented.block")
	assert.Equal(t, []Usage{{File: "Old.ts", Line: 5}}, res.Direct["alive.key"])
}

func TestScanSkipsDeclarationDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "i18n", "locales", "en.ts"), "t('declared.key')\n")
	writeFile(t, filepath.Join(root, "views", "Home.vue"), "t('used.key')\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.NotContains(t, res.Direct, "declared.key")
	assert.Contains(t, res.Direct, "used.key")
}

func TestScanIndirectProperties(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "composables", "useRuleOptions.ts"),
		"const options = [\n"+
			"  { value: 'title', labelKey: 'rules.byTitle' },\n"+
			"  { value: 'url', labelKey: \"rules.byUrl\" },\n"+
			"]\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	assert.Equal(t, []Usage{{File: "composables/useRuleOptions.ts", Line: 2}}, res.Indirect["rules.byTitle"])
	assert.Contains(t, res.Indirect, "rules.byUrl")

	keys := res.IndirectKeys()
	assert.Contains(t, keys, "rules.byTitle")
	assert.Contains(t, keys, "rules.byUrl")
}

func TestScanIndirectFileAbsent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Home.vue"), "t('home.title')\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)
	assert.Empty(t, res.Indirect)
}

func TestMergedCombinesBothIndexes(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Home.vue"), "t('shared.key')\n")
	writeFile(t, filepath.Join(root, "composables", "useRuleOptions.ts"),
		"labelKey: 'shared.key'\n")

	res, err := newTestScanner(root).Scan()
	require.NoError(t, err)

	merged := res.Merged()
	assert.Len(t, merged["shared.key"], 2)
}

func TestFindKeyMatchesGlobalScan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "One.vue"),
		"t('common.save')\nt('common.save', { n: 1 })\n")
	writeFile(t, filepath.Join(root, "b", "Two.ts"),
		"t(\n  'common.save',\n)\nt('other.key')\n")

	sc := newTestScanner(root)
	res, err := sc.Scan()
	require.NoError(t, err)

	keys := make([]string, 0, len(res.Direct))
	for key := range res.Direct {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		perKey, err := sc.FindKey(key)
		require.NoError(t, err)
		assert.Equal(t, res.Direct[key], perKey, "per-key scan diverged for %s", key)
	}
}

func TestFindKeyQuotesMetaCharacters(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Dot.ts"), "t('a.b')\nt('aXb')\n")

	usages, err := newTestScanner(root).FindKey("a.b")
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, 1, usages[0].Line)
}
