// Copyright (c) 2025 The otuictl Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otui-dev/otuictl/internal/session"
)

// runApp runs the full CLI against args and returns captured output.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	argv := append([]string{"otuictl"}, args...)
	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf

	err = app.Run(context.Background(), argv)
	return buf.String(), err
}

func writeFile(t *testing.T, dir string, name string, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func TestClear_StripsRendered(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"messages":[{"text":"hi","rendered":"<p>hi</p>"}]}`)

	out, err := runApp(t, "clear", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Rendered cache cleared")

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[{"text":"hi"}]}`, string(got))
	assert.Contains(t, string(got), "  \"messages\"")
}

func TestClear_NoMessagesField(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.json", `{"other":1}`)

	out, err := runApp(t, "clear", "-d", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Rendered cache cleared")

	got, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"other":1}`, string(got))
}

func TestClear_EmptyDir(t *testing.T) {
	out, err := runApp(t, "clear", "-d", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Rendered cache cleared")
}

func TestClear_IgnoresNonRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "# not a session")
	sub := filepath.Join(dir, "archive")
	require.NoError(t, os.Mkdir(sub, 0o700))
	nested := writeFile(t, sub, "c.json", `{"messages":[{"rendered":"x"}]}`)

	_, err := runApp(t, "clear", "-d", dir)
	require.NoError(t, err)

	// Nested records are out of scope and must be untouched.
	got, err := os.ReadFile(nested)
	require.NoError(t, err)
	assert.Equal(t, `{"messages":[{"rendered":"x"}]}`, string(got))
}

func TestClear_Idempotent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json",
		`{"name":"s","messages":[{"text":"hi","rendered":"x"},{"text":"yo"}],"other":{"k":[1,2]}}`)

	_, err := runApp(t, "clear", "-d", dir)
	require.NoError(t, err)
	first, err := os.ReadFile(a)
	require.NoError(t, err)

	_, err = runApp(t, "clear", "-d", dir)
	require.NoError(t, err)
	second, err := os.ReadFile(a)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestClear_PreservesOrderAndSiblings(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json",
		`{"messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a","rendered":"<p>a</p>"}],"model":"llama3"}`)

	_, err := runApp(t, "clear", "-d", dir)
	require.NoError(t, err)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"messages":[{"role":"user","content":"q"},{"role":"assistant","content":"a"}],"model":"llama3"}`,
		string(got))

	// Key and entry order survive the rewrite (gjson/sjson never reshuffle).
	text := string(got)
	assert.Less(t, bytes.Index(got, []byte(`"user"`)), bytes.Index(got, []byte(`"assistant"`)))
	assert.Contains(t, text, `"model"`)
}

func TestClear_DryRun(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"messages":[{"text":"hi","rendered":"<p>hi</p>"}]}`)
	before, err := os.ReadFile(a)
	require.NoError(t, err)

	out, err := runApp(t, "clear", "-d", dir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "--- "+a)
	assert.Contains(t, out, "rendered")
	assert.Contains(t, out, "dry run")

	after, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "dry run must not write")
}

func TestClear_DryRunNoChanges(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"messages":[{"text":"hi"}]}`)

	out, err := runApp(t, "clear", "-d", dir, "-n")
	require.NoError(t, err)
	assert.NotContains(t, out, "--- ")
	assert.Contains(t, out, "dry run")
}

func TestClear_DirectoryNotFound(t *testing.T) {
	_, err := runApp(t, "clear", "-d", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, session.ErrDirectoryNotFound)
}

func TestClear_InvalidRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `{"messages": [`)

	_, err := runApp(t, "clear", "-d", dir)
	assert.ErrorIs(t, err, session.ErrInvalidRecordFormat)
}

func TestClear_MessagesNotASequence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "odd.json", `{"messages":"nope"}`)

	_, err := runApp(t, "clear", "-d", dir)
	assert.ErrorIs(t, err, session.ErrNotASequence)
}

func TestClear_SessionsDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"messages":[{"rendered":"x","text":"hi"}]}`)
	t.Setenv("OTUICTL_SESSIONS", dir)

	_, err := runApp(t, "clear")
	require.NoError(t, err)

	got, err := os.ReadFile(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":[{"text":"hi"}]}`, string(got))
}
