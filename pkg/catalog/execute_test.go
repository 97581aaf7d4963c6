package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runArgs(repo, out string) Arguments {
	args := DefaultArguments()
	args.Repo = repo
	args.Output = out
	return args
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func markers(catalog string) []string {
	var out []string
	for _, line := range strings.Split(catalog, "\n") {
		if strings.HasPrefix(line, "--- FILE: ") && strings.HasSuffix(line, " ---") {
			out = append(out, strings.TrimSuffix(strings.TrimPrefix(line, "--- FILE: "), " ---"))
		}
	}
	return out
}

func TestRun_TextAndBinaryScenario(t *testing.T) {
	content := "def main():\n    return 'catalog scenario texts'\n\n\n"
	require.Len(t, content, 50)
	repo := writeTree(t, map[string]string{
		"a.py":        content,
		"b.bin":       "\x00\x01\x02",
		".git/config": "[core]\n",
	})
	out := filepath.Join(t.TempDir(), "catalog.txt")

	result, err := Run(runArgs(repo, out), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, result.FileCount)

	got := readOutput(t, out)
	assert.Equal(t, []string{"a.py"}, markers(got))
	assert.Contains(t, got, "FILES: 1\n")
	assert.Contains(t, got, "\n--- FILE: a.py ---\n"+content+"\n")
}

func TestRun_TruncationScenario(t *testing.T) {
	repo := writeTree(t, map[string]string{"src/twenty.txt": "abcdefghijklmnopqrst"})
	out := filepath.Join(t.TempDir(), "catalog.txt")
	args := runArgs(repo, out)
	args.MaxBytes = 10

	result, err := Run(args, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Truncated)

	got := readOutput(t, out)
	assert.Contains(t, got, "\n--- FILE: src/twenty.txt ---\nabcdefghij\n\n[... TRUNCATED: file exceeds 10 bytes ...]\n")
}

func TestRun_IgnoredDirectoriesNeverAppear(t *testing.T) {
	repo := writeTree(t, map[string]string{
		"app/index.ts":                 "x",
		"app/node_modules/lib/main.js": "x",
		"app/sub/dist/bundle.js":       "x",
		"app/sub/coverage/report.html": "x",
		"app/sub/kept.md":              "x",
		"node_modules/top.js":          "x",
	})
	out := filepath.Join(t.TempDir(), "catalog.txt")
	args := runArgs(repo, out)
	args.ExtraIgnoreDirs = []string{"coverage"}

	_, err := Run(args, zap.NewNop())
	require.NoError(t, err)

	got := readOutput(t, out)
	assert.Equal(t, []string{"app/index.ts", "app/sub/kept.md"}, markers(got))
	assert.Contains(t, got, "INCLUDE: app\n")
}

func TestRun_IncludeRestrictsRoots(t *testing.T) {
	repo := writeTree(t, map[string]string{
		"root.md":       "x",
		"docs/guide.md": "x",
		"src/main.py":   "x",
		"tests/t.py":    "x",
	})
	out := filepath.Join(t.TempDir(), "catalog.txt")
	args := runArgs(repo, out)
	args.Include = []string{"src", "docs"}

	result, err := Run(args, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, result.FileCount)

	got := readOutput(t, out)
	assert.Equal(t, []string{"docs/guide.md", "src/main.py"}, markers(got))
	assert.Contains(t, got, "INCLUDE: src, docs\n")
}

func TestRun_OrderIndependentOfWorkers(t *testing.T) {
	files := map[string]string{}
	for _, rel := range []string{"z/last.txt", "a/first.txt", "m/n/o.txt", "a/b/c.txt", "a.txt", "B.txt"} {
		files[rel] = "content of " + rel
	}
	repo := writeTree(t, files)
	dir := t.TempDir()

	var outputs []string
	for _, workers := range []int{1, 3, 8} {
		out := filepath.Join(dir, "catalog.txt")
		args := runArgs(repo, out)
		args.Workers = workers
		_, err := Run(args, zap.NewNop())
		require.NoError(t, err)
		outputs = append(outputs, readOutput(t, out))
	}

	assert.Equal(t, []string{"B.txt", "a/b/c.txt", "a/first.txt", "a.txt", "m/n/o.txt", "z/last.txt"}, markers(outputs[0]))
	assert.Equal(t, outputs[0], outputs[1])
	assert.Equal(t, outputs[0], outputs[2])
}

func TestRun_IdempotentWithOutputInsideRepo(t *testing.T) {
	repo := writeTree(t, map[string]string{
		"app/main.py": "print('hi')\n",
		"README.md":   "# readme\n",
	})
	out := filepath.Join(repo, "lookup", "catalog.txt")

	_, err := Run(runArgs(repo, out), zap.NewNop())
	require.NoError(t, err)
	first := readOutput(t, out)

	_, err = Run(runArgs(repo, out), zap.NewNop())
	require.NoError(t, err)
	second := readOutput(t, out)

	assert.Equal(t, first, second)
	assert.Contains(t, second, "INCLUDE: app, lookup\n")
	assert.NotContains(t, markers(second), "lookup/catalog.txt")
}

func TestRun_ReadFailureIsRecorded(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	repo := writeTree(t, map[string]string{
		"app/ok.txt":     "fine",
		"app/secret.txt": "hidden",
	})
	secret := filepath.Join(repo, "app", "secret.txt")
	require.NoError(t, os.Chmod(secret, 0))
	t.Cleanup(func() { _ = os.Chmod(secret, 0644) })

	out := filepath.Join(t.TempDir(), "catalog.txt")
	result, err := Run(runArgs(repo, out), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, result.FileCount)
	assert.Equal(t, 1, result.ReadErrors)
	assert.Contains(t, readOutput(t, out), "\n--- FILE: app/secret.txt ---\n[Error reading file: ")
}

func TestRun_Errors(t *testing.T) {
	t.Run("repo is not a directory", func(t *testing.T) {
		repo := writeTree(t, map[string]string{"file.txt": "x"})
		out := filepath.Join(t.TempDir(), "catalog.txt")

		_, err := Run(runArgs(filepath.Join(repo, "file.txt"), out), zap.NewNop())
		assert.ErrorIs(t, err, ErrNotADirectory)
		assert.NoFileExists(t, out)
	})

	t.Run("output cannot be written", func(t *testing.T) {
		repo := writeTree(t, map[string]string{"app/x.txt": "x"})
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		_, err := Run(runArgs(repo, filepath.Join(blocker, "out.txt")), zap.NewNop())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotADirectory)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		args := runArgs(t.TempDir(), "out.txt")
		args.MaxBytes = 0
		_, err := Run(args, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max bytes must be positive")
	})
}
