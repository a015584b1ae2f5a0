// Package directory computes the displayed form of the working directory:
// literal substitutions, home abbreviation, truncation relative to the
// enclosing repository and fish-style contraction of the hidden part.
package directory

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/hbjs97/promptline/internal/repo"
)

// HomeSymbol replaces the home directory at the head of a path.
const HomeSymbol = "~"

const sep = "/"

// Substitution replaces every occurrence of From with To.
type Substitution struct {
	From string
	To   string
}

// Config shapes the rendered path.
type Config struct {
	// TruncationLength is the number of trailing segments kept; 0 keeps all.
	TruncationLength int
	// TruncateToRepo anchors the path at the enclosing repository root.
	TruncateToRepo bool
	// FishStyleLength contracts each hidden segment to this many graphemes;
	// 0 leaves the hidden part out entirely.
	FishStyleLength int
	// Prefix is written before the path by Render.
	Prefix string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		TruncationLength: 3,
		TruncateToRepo:   true,
		Prefix:           "in ",
	}
}

// Env is what the renderer needs from the working context.
type Env interface {
	// Home returns the home directory, or "" when it is unknown.
	Home() string
	// Locate returns the repository enclosing path.
	Locate(path string) repo.Info
}

// Render returns the directory segment text: prefix, path and a trailing
// space.
func Render(env Env, raw string, subs []Substitution, cfg Config) string {
	return cfg.Prefix + Path(env, raw, subs, cfg) + " "
}

// Path returns the display form of raw.
func Path(env Env, raw string, subs []Substitution, cfg Config) string {
	if raw == "" {
		return sep
	}
	literal := normalize(raw)
	if literal == sep {
		return sep
	}

	home := env.Home()
	if home != "" {
		home = normalize(home)
	}

	substituted := Substitute(literal, subs)
	if substituted == "" {
		return sep
	}
	full := contract(substituted, home, HomeSymbol)
	if cfg.TruncationLength <= 0 {
		return full
	}

	anchored := full
	if cfg.TruncateToRepo {
		if a, ok := repoAnchored(env, raw, literal, home, subs); ok {
			anchored = a
		}
	}

	tail := truncate(anchored, cfg.TruncationLength)
	if cfg.FishStyleLength <= 0 {
		return tail
	}

	hidden, ok := strings.CutSuffix(full, tail)
	if !ok || hidden == "" {
		return tail
	}
	return fishStyle(hidden, cfg.FishStyleLength) + tail
}

// Substitute applies subs in order as literal replacements. Each rule sees
// the output of the previous ones; no rule rescans its own replacement.
func Substitute(p string, subs []Substitution) string {
	for _, s := range subs {
		if s.From == "" {
			continue
		}
		p = strings.ReplaceAll(p, s.From, s.To)
	}
	return p
}

// Segments splits p on separators, ignoring the empty segment in front of
// an absolute path.
func Segments(p string) []string {
	segs := strings.Split(p, sep)
	if len(segs) > 0 && segs[0] == "" {
		segs = segs[1:]
	}
	return segs
}

// normalize converts p to forward slashes, collapses repeated separators
// and drops a trailing one. "." and ".." segments are kept as given.
func normalize(p string) string {
	p = filepath.ToSlash(p)
	abs := strings.HasPrefix(p, sep)
	segs := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	joined := strings.Join(segs, sep)
	if abs {
		return sep + joined
	}
	return joined
}

// repoAnchored rewrites the path relative to the parent of the repository
// root, so its first segment is the root's own name.
func repoAnchored(env Env, raw, literal, home string, subs []Substitution) (string, bool) {
	info := env.Locate(raw)
	if !info.Contains(raw) {
		return "", false
	}
	root := normalize(info.Root)
	if root == home {
		return "", false
	}

	subRoot := Substitute(root, subs)
	name := path.Base(subRoot)
	if name == sep || name == "." {
		return "", false
	}
	rest, ok := relative(Substitute(literal, subs), subRoot)
	if !ok {
		return "", false
	}
	if rest == "" {
		return name, true
	}
	return name + sep + rest, true
}

// contract replaces a leading top with replacement when p equals top or
// lies beneath it on a segment boundary.
func contract(p, top, replacement string) string {
	if top == "" || top == sep {
		return p
	}
	rest, ok := relative(p, top)
	if !ok {
		return p
	}
	if rest == "" {
		return replacement
	}
	return replacement + sep + rest
}

// relative returns the part of p below top.
func relative(p, top string) (string, bool) {
	if p == top {
		return "", true
	}
	prefix := strings.TrimSuffix(top, sep) + sep
	if rest, ok := strings.CutPrefix(p, prefix); ok {
		return rest, true
	}
	return "", false
}

// truncate keeps the last n segments of p. A path that already fits is
// returned unchanged, leading separator included.
func truncate(p string, n int) string {
	segs := Segments(p)
	if len(segs) <= n {
		return p
	}
	return strings.Join(segs[len(segs)-n:], sep)
}

// fishStyle contracts every segment of the hidden part of a path.
func fishStyle(hidden string, n int) string {
	segs := strings.Split(hidden, sep)
	for i, s := range segs {
		segs[i] = contractSegment(s, n)
	}
	return strings.Join(segs, sep)
}

// contractSegment keeps the first n graphemes of s, plus its leading dot
// for hidden directories.
func contractSegment(s string, n int) string {
	keep := n
	if strings.HasPrefix(s, ".") {
		keep++
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for count := 0; g.Next(); count++ {
		if count == keep {
			return b.String()
		}
		b.WriteString(g.Str())
	}
	return s
}
