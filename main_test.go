package main

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPrintRendersHighlightedLines(t *testing.T) {
	src := writeTemp(t, "main.rs", "fn main() {\n\tlet x = 5;\n}\n")
	cfgPath := writeTemp(t, "settings.json", `{"color_profile": "256"}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "--print", src})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "\x1b[38;5;")
	require.Equal(t, "fn main() {\n  let x = 5;\n}\n", ansi.Strip(out.String()))
}

func TestPrintWithoutColour(t *testing.T) {
	src := writeTemp(t, "notes.txt", "plain\ntext\n")
	cfgPath := writeTemp(t, "settings.json", `{"color_profile": "none"}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgPath, "-p", src})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "plain\ntext\n", out.String())
}

func TestPrintMarksSearchMatches(t *testing.T) {
	src := writeTemp(t, "notes.txt", "needle in haystack\n")
	cfgPath := writeTemp(t, "settings.json", `{"color_profile": "truecolor"}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgPath, "-p", "-s", "hay", src})
	require.NoError(t, cmd.Execute())

	// The match colour is #268bd2.
	require.True(t, strings.Contains(out.String(), "\x1b[38;2;38;139;210m"), "output %q", out.String())
}

func TestPrintMissingFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-c", filepath.Join(t.TempDir(), "none.json"), "-p", filepath.Join(t.TempDir(), "missing.rs")})
	require.Error(t, cmd.Execute())
}

func TestThemeFlagOverridesConfig(t *testing.T) {
	cfgPath := writeTemp(t, "settings.json", `{"theme": "nord", "log_file": "a.log"}`)
	cfg, err := loadConfig(options{configPath: cfgPath, theme: "gruvbox", logPath: "b.log"})
	require.NoError(t, err)
	require.Equal(t, "gruvbox", cfg.Theme)
	require.Equal(t, "b.log", cfg.LogFile)
}

func TestTooManyArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a", "b"})
	require.Error(t, cmd.Execute())
}

func TestSaveConfigWritesEffectiveSettings(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "rowedit", "settings.json")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"-c", cfgPath, "--theme", "nord", "--save-config"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), cfgPath)

	cfg, err := loadConfig(options{configPath: cfgPath})
	require.NoError(t, err)
	require.Equal(t, "nord", cfg.Theme)
}

func TestEditorClipboardWritesOSC52(t *testing.T) {
	var out bytes.Buffer
	clip := newClipboard(&out)
	require.True(t, clip.Copy("fn main() {}"))

	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("fn main() {}"))
	require.Contains(t, out.String(), want)
}
