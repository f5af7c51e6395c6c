package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redhat-nfvpe/xgetopt/getopt"
	"github.com/redhat-nfvpe/xgetopt/report"
)

func TestParseTOption(t *testing.T) {
	// test case1: parse "-t v"
	tok1, err1 := parseTOption("v")
	if err1 != nil {
		t.Fatalf("Parse error: %v", err1)
	}
	if tok1.Name != "v" || tok1.TakesValue {
		t.Fatalf("token Parse error %+v should be {v false}", tok1)
	}

	// test case2: parse "-t out:"
	tok2, err2 := parseTOption("out:")
	if err2 != nil {
		t.Fatalf("Parse error: %v", err2)
	}
	if tok2.Name != "out" || !tok2.TakesValue {
		t.Fatalf("token Parse error %+v should be {out true}", tok2)
	}

	// test case3: parse "-t ab:c"
	if _, err3 := parseTOption("ab:c"); err3 == nil {
		t.Fatal("ab:c should not be accepted")
	}

	// test case4: names are one to four characters
	for _, s := range []string{"", ":", "toolong", "fives:"} {
		if _, err4 := parseTOption(s); err4 == nil {
			t.Fatalf("%q should not be accepted", s)
		}
	}

	// test case5: four wide characters are fine
	tok5, err5 := parseTOption("日本語字:")
	if err5 != nil {
		t.Fatalf("Parse error: %v", err5)
	}
	if tok5.Name != "日本語字" {
		t.Fatalf("token Parse error %s should be 日本語字", tok5.Name)
	}

	// test case6: a leading prefix would collide with the terminator
	if _, err6 := parseTOption("-x"); err6 == nil {
		t.Fatal("-x should not be accepted")
	}
}

func TestParseCmdLine(t *testing.T) {
	opts, err := parseCmdLine([]string{"/usr/bin/xgetopt", "-wq", "-s", "ab:", "-tv", "-t", "out:", "-ojson", "--", "-a", "x"})
	require.NoError(t, err)
	require.Equal(t, "xgetopt", opts.name)
	require.True(t, opts.wide)
	require.True(t, opts.quiet)
	require.False(t, opts.lines)
	require.NotNil(t, opts.optstring)
	require.Equal(t, "ab:", *opts.optstring)
	require.Equal(t, []getopt.Token{{Name: "v"}, {Name: "out", TakesValue: true}}, opts.tokens)
	require.NotNil(t, opts.format)
	require.Equal(t, report.FormatJSON, *opts.format)
	require.Equal(t, []string{"-a", "x"}, opts.operands)

	_, err = parseCmdLine([]string{"xgetopt", "-Z"})
	require.EqualError(t, err, "invalid option -- 'Z'")

	_, err = parseCmdLine([]string{"xgetopt", "-s"})
	require.EqualError(t, err, "option requires an argument -- 's'")

	_, err = parseCmdLine([]string{"xgetopt", "-o", "xml"})
	require.Error(t, err)

	_, err = parseCmdLine([]string{"xgetopt", "-s", "-a"})
	require.EqualError(t, err, `optstring "-a" must not contain -`)
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := run(append([]string{"xgetopt"}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestRunShell(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	status, stdout, stderr := runCmd(t, "", "-s", "ab:c", "--", "-ac", "-b", "two words", "file")
	require.Equal(t, exitOK, status)
	require.Equal(t, "-a -c -b 'two words' -- file\n", stdout)
	require.Empty(t, stderr)
}

func TestRunUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	status, stdout, stderr := runCmd(t, "", "-n", "prog", "-s", "ab:", "--", "-za", "-b")
	require.Equal(t, exitUnknown, status)
	require.Equal(t, "-a --\n", stdout)
	require.Equal(t, "prog: invalid option -- 'z'\nprog: option requires an argument -- 'b'\n", stderr)

	status, _, stderr = runCmd(t, "", "-q", "-s", "a", "--", "-z")
	require.Equal(t, exitUnknown, status)
	require.Empty(t, stderr)
}

func TestRunTokensJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	status, stdout, _ := runCmd(t, "", "-w", "-o", "json", "-t", "v", "-t", "out:", "--", "-v", "-out", "ünï", "rest")
	require.Equal(t, exitOK, status)
	require.JSONEq(t, `{
		"options": [
			{"name": "v", "id": 118, "has_value": false},
			{"name": "out", "id": 7304564, "value": "ünï", "has_value": true}
		],
		"operands": ["rest"]
	}`, stdout)
}

func TestRunLines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	input := "# vectors\nprog -a x\nprog -z\nprog \"broken\n"
	status, stdout, stderr := runCmd(t, input, "-n", "prog", "-l", "-s", "a")
	require.Equal(t, exitUsage, status)
	require.Equal(t, "-a -- x\n--\n", stdout)
	require.Contains(t, stderr, "prog:3: invalid option -- 'z'\n")
	require.Contains(t, stderr, "prog:4: failed to split")
}

func TestRunConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "xgetopt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tokens: [\"v\", \"out:\"]\nformat: table\n"), 0o644))

	status, stdout, _ := runCmd(t, "", "-c", path, "--", "-out", "f")
	require.Equal(t, exitOK, status)
	require.Equal(t, "KIND    NAME  VALUE\noption  -out  f\n", stdout)

	// the command line wins over the config file
	status, stdout, _ = runCmd(t, "", "-c", path, "-s", "a", "-o", "shell", "--", "-a")
	require.Equal(t, exitOK, status)
	require.Equal(t, "-a --\n", stdout)

	status, _, stderr := runCmd(t, "", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Equal(t, exitUsage, status)
	require.Contains(t, stderr, "failed to read config")

	bad := filepath.Join(t.TempDir(), "xgetopt.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("optstring: \"-a\"\n"), 0o644))
	status, stdout, stderr = runCmd(t, "", "-c", bad, "--", "--a")
	require.Equal(t, exitUsage, status)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "must not contain -")
}

func TestRunHelpAndVersion(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	status, stdout, _ := runCmd(t, "", "-h")
	require.Equal(t, exitOK, status)
	require.Contains(t, stdout, "Usage:")

	status, stdout, _ = runCmd(t, "", "-V")
	require.Equal(t, exitOK, status)
	require.Equal(t, "xgetopt version: master@git\n", stdout)

	status, _, stderr := runCmd(t, "", "-x")
	require.Equal(t, exitUsage, status)
	require.Contains(t, stderr, "xgetopt: invalid option -- 'x'")
	require.Contains(t, stderr, "Usage:")
}
