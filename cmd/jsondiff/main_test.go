package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	code = run(context.Background(), args, out, errOut)
	return code, out.String(), errOut.String()
}

func TestCompareText(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":1,"list":[1,2,3]}`)
	right := writeFile(t, dir, "right.json", `{"a":2,"list":[3,2,1]}`)

	code, stdout, stderr := runCLI(left, right)
	assert.Equal(t, exitSame, code, stderr)
	assert.Equal(t, "-------------------------CHG-------------------------\n\n"+
		"CHG | PATH  : a\n"+
		"CHG | LEFT  : 1\n"+
		"CHG | RIGHT : 2\n\n", stdout)
	assert.Empty(t, stderr)
}

func TestIdentical(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":[{"b":1},{"c":2}]}`)
	right := writeFile(t, dir, "right.json", `{"a":[{"c":2},{"b":1}]}`)

	code, stdout, _ := runCLI("--exit-code", left, right)
	assert.Equal(t, exitSame, code)
	assert.Empty(t, stdout)
}

func TestExitCode(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":1}`)
	right := writeFile(t, dir, "right.json", `{"a":1,"b":2}`)

	code, _, stderr := runCLI("--exit-code", "-o", "json", left, right)
	assert.Equal(t, exitDiffer, code)
	assert.Empty(t, stderr, "differences aren't errors")

	code, _, _ = runCLI("-o", "json", left, right)
	assert.Equal(t, exitSame, code)
}

func TestStrategies(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `[1,2,3]`)
	right := writeFile(t, dir, "right.json", `[3,2,1]`)

	cases := []struct {
		args   []string
		expect string
	}{
		{[]string{"-o", "json"}, "[]\n"},
		{[]string{"-o", "json", "--strategy", "positional"}, `[["CHG","0",1,3],["CHG","2",3,1]]` + "\n"},
		{[]string{"-o", "json", "--ignore-order=false"}, `[["CHG","0",1,3],["CHG","2",3,1]]` + "\n"},
		{[]string{"-o", "json", "-s", "lines"}, `[["CHG","1","    1,","    3,"],["CHG","3","    3","    1"]]` + "\n"},
	}

	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			code, stdout, stderr := runCLI(append(c.args, left, right)...)
			require.Equal(t, exitSame, code, stderr)
			assert.Equal(t, c.expect, stdout)
		})
	}
}

func TestReportRepetition(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `[1,1,2]`)
	right := writeFile(t, dir, "right.json", `[1,2]`)

	_, stdout, _ := runCLI("-o", "json", left, right)
	assert.Equal(t, `[["DEL","1",1,null]]`+"\n", stdout)

	_, stdout, _ = runCLI("-o", "json", "--report-repetition=false", left, right)
	assert.Equal(t, "[]\n", stdout)
}

func TestOutputs(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.yaml", "hostname: edge-1\nmtu: 1500\n")
	right := writeFile(t, dir, "right.yaml", "hostname: edge-1\nmtu: 9000\n")

	_, stdout, _ := runCLI("-o", "markdown", left, right)
	assert.Contains(t, stdout, "| CHG | `mtu` | `1500` | `9000` |")

	_, stdout, _ = runCLI("-o", "html", left, right)
	assert.Contains(t, stdout, "<td>CHG</td>")
	assert.Contains(t, stdout, "<h1>"+left+" vs "+right+"</h1>")

	_, stdout, _ = runCLI("-o", "unified", "--color", "never", left, right)
	assert.True(t, strings.HasPrefix(stdout, "--- "+left+"\n+++ "+right+"\n"), stdout)
	assert.Contains(t, stdout, "\n@@ CHG mtu @@\n")
	assert.Contains(t, stdout, "\n-1500\n")
	assert.Contains(t, stdout, "\n+9000\n")

	_, stdout, _ = runCLI("--stats", left, right)
	assert.True(t, strings.HasSuffix(stdout, "0 elements. 0 additions. 0 deletions. 1 change.\n"), stdout)

	_, stdout, _ = runCLI("--color", "always", left, right)
	assert.Contains(t, stdout, "\x1b[34mCHG | PATH  : mtu\x1b[0m")
}

func TestUnifiedFollowsStrategy(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `[1,2]`)
	right := writeFile(t, dir, "right.json", `[2,1]`)

	_, stdout, _ := runCLI("-o", "unified", left, right)
	assert.Empty(t, stdout, "reordering isn't a change")

	_, stdout, _ = runCLI("-o", "unified", "--ignore-order=false", left, right)
	assert.Contains(t, stdout, "@@ CHG 0 @@\n")
	assert.Contains(t, stdout, "@@ CHG 1 @@\n")
}

func TestXMLInput(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.cfg", `<config><iface name="eth0"/><iface name="eth1"/></config>`)
	right := writeFile(t, dir, "right.cfg", `<config><iface name="eth1"/><iface name="eth0"/></config>`)

	code, stdout, stderr := runCLI("-f", "xml", "-o", "json", left, right)
	require.Equal(t, exitSame, code, stderr)
	assert.Equal(t, "[]\n", stdout)
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{}`)
	bad := writeFile(t, dir, "bad.json", `{"a":`)

	cases := []struct {
		description string
		args        []string
		stderr      string
	}{
		{"one file", []string{good}, "Error: please supply two files to compare"},
		{"missing file", []string{good, filepath.Join(dir, "missing.json")}, "file not found"},
		{"invalid json", []string{good, bad}, "invalid json"},
		{"bad output", []string{"-o", "pdf", good, good}, "output format --output,-o must be"},
		{"bad strategy", []string{"-s", "magic", good, good}, "strategy --strategy,-s must be"},
		{"bad format", []string{"-f", "csv", good, good}, `unsupported format "csv"`},
		{"bad flag", []string{"--nope", good, good}, "unknown flag: --nope"},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			code, _, stderr := runCLI(c.args...)
			assert.Equal(t, exitError, code)
			assert.Contains(t, stderr, c.stderr)
		})
	}
}

func TestUsageOnUsageError(t *testing.T) {
	_, _, stderr := runCLI("only-one.json")
	assert.Contains(t, stderr, "Usage:")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `[1,2]`)
	right := writeFile(t, dir, "right.json", `[2,1]`)
	cfg := writeFile(t, dir, "jsondiff.yaml", "output: json\nignore_order: false\n")

	code, stdout, stderr := runCLI("--config", cfg, left, right)
	require.Equal(t, exitSame, code, stderr)
	assert.Equal(t, `[["CHG","0",1,2],["CHG","1",2,1]]`+"\n", stdout)

	// flags win over the file
	_, stdout, _ = runCLI("--config", cfg, "--ignore-order", left, right)
	assert.Equal(t, "[]\n", stdout)

	unknown := writeFile(t, dir, "unknown.yaml", "colour: always\n")
	code, _, stderr = runCLI("--config", unknown, left, right)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "parsing config")

	code, _, stderr = runCLI("--config", filepath.Join(dir, "nope.yaml"), left, right)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "reading config")
}

func TestVerbose(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":1}`)
	right := writeFile(t, dir, "right.json", `{"a":2}`)

	_, _, stderr := runCLI("-v", left, right)
	assert.Contains(t, stderr, "strategy=*jsondiff.Matcher")
	assert.Contains(t, stderr, "edits=1")
	assert.Contains(t, stderr, "ts=")
}

func TestDepthWarning(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `[{"a":{"x":1,"y":1}}]`)
	right := writeFile(t, dir, "right.json", `[{"a":{"x":1,"y":2}}]`)

	code, _, stderr := runCLI("--max-match-depth", "1", left, right)
	assert.Equal(t, exitSame, code)
	assert.Contains(t, stderr, "warning: match depth 1 exceeded")
}

// syncBuffer is written by the watch loop while the test reads it
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	left := writeFile(t, dir, "left.json", `{"a":1}`)
	right := writeFile(t, dir, "right.json", `{"a":2}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	done := make(chan int)
	go func() {
		done <- run(ctx, []string{"--watch", "-o", "json", left, right}, stdout, stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), `[["CHG","a",1,2]]`)
	}, 5*time.Second, 20*time.Millisecond)

	writeFile(t, dir, "right.json", `{"a":3}`)
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), `[["CHG","a",1,3]]`)
	}, 5*time.Second, 20*time.Millisecond, "stderr: %s", stderr.String())

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, exitSame, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch didn't stop after cancel")
	}
}
