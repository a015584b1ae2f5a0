package module

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"

	"github.com/hbjs97/promptline/internal/scan"
	"github.com/hbjs97/promptline/internal/workdir"
)

func nodejsModule() Module {
	return Module{
		Name:          "nodejs",
		Description:   "The Node.js version of a JavaScript project",
		DefaultSymbol: "⬢ ",
		DefaultPrefix: "via ",
		Include: []scan.Criteria{{
			Files:      []string{"package.json", ".node-version", ".nvmrc"},
			Extensions: []string{"js", "mjs", "cjs", "ts", "mts", "cts"},
			Folders:    []string{"node_modules"},
		}},
		Exclude: []scan.Criteria{{Folders: []string{"esy.lock"}}},
		detail:  nodeVersion,
	}
}

func golangModule() Module {
	return Module{
		Name:          "golang",
		Description:   "The Go version of a Go module",
		DefaultSymbol: "🐹 ",
		DefaultPrefix: "via ",
		Include: []scan.Criteria{{
			Files:      []string{"go.mod", "go.sum", "go.work", "glide.yaml", "Gopkg.yml", "Gopkg.lock", ".go-version"},
			Extensions: []string{"go"},
			Folders:    []string{"Godeps"},
		}},
		detail: goVersion,
	}
}

func rustModule() Module {
	return Module{
		Name:          "rust",
		Description:   "The Rust toolchain of a Cargo project",
		DefaultSymbol: "🦀 ",
		DefaultPrefix: "via ",
		Include: []scan.Criteria{{
			Files:      []string{"Cargo.toml", "rust-toolchain", "rust-toolchain.toml"},
			Extensions: []string{"rs"},
		}},
		detail: rustVersion,
	}
}

func pythonModule() Module {
	return Module{
		Name:          "python",
		Description:   "The Python version of a Python project",
		DefaultSymbol: "🐍 ",
		DefaultPrefix: "via ",
		Include: []scan.Criteria{{
			Files: []string{
				"requirements.txt", ".python-version", "pyproject.toml", "Pipfile",
				"tox.ini", "setup.py", "__init__.py",
			},
			Extensions: []string{"py"},
		}},
		detail: pythonVersion,
	}
}

func nodeVersion(wc *workdir.Context) string {
	for _, name := range []string{".node-version", ".nvmrc"} {
		if v := firstLine(wc, name); v != "" {
			return withV(v)
		}
	}
	data := readFile(wc, "package.json")
	if data == nil {
		return ""
	}
	var pkg struct {
		Engines struct {
			Node string `json:"node"`
		} `json:"engines"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	return withV(pkg.Engines.Node)
}

func goVersion(wc *workdir.Context) string {
	if data := readFile(wc, "go.mod"); data != nil {
		f, err := modfile.ParseLax("go.mod", data, nil)
		if err == nil && f.Go != nil {
			return withV(f.Go.Version)
		}
	}
	return withV(firstLine(wc, ".go-version"))
}

func rustVersion(wc *workdir.Context) string {
	for _, name := range []string{"rust-toolchain.toml", "rust-toolchain"} {
		data := readFile(wc, name)
		if data == nil {
			continue
		}
		var tc struct {
			Toolchain struct {
				Channel string `toml:"channel"`
			} `toml:"toolchain"`
		}
		if _, err := toml.Decode(string(data), &tc); err == nil && tc.Toolchain.Channel != "" {
			return withV(tc.Toolchain.Channel)
		}
		// The legacy file may hold a bare channel name.
		if v := firstLineOf(data); v != "" && !strings.ContainsAny(v, "[=") {
			return withV(v)
		}
	}
	return ""
}

func pythonVersion(wc *workdir.Context) string {
	return withV(firstLine(wc, ".python-version"))
}

// readFile reads name from the working directory when the cached listing
// shows a regular file by that name.
func readFile(wc *workdir.Context, name string) []byte {
	if !wc.Entries(wc.CurrentDir).HasFile(name) {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(wc.CurrentDir, name))
	if err != nil {
		return nil
	}
	return data
}

func firstLine(wc *workdir.Context, name string) string {
	return firstLineOf(readFile(wc, name))
}

func firstLineOf(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			return line
		}
	}
	return ""
}

// withV prefixes numeric versions with "v"; names such as "stable" or
// "lts/iron" are kept as written.
func withV(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if v[0] >= '0' && v[0] <= '9' {
		return "v" + v
	}
	return v
}
