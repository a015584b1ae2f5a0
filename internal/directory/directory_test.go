package directory_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/hbjs97/promptline/internal/directory"
	"github.com/hbjs97/promptline/internal/repo"
)

const home = "/home/astronaut"

// fakeEnv serves a fixed home directory and repository.
type fakeEnv struct {
	home string
	info repo.Info
}

func (f fakeEnv) Home() string { return f.home }

func (f fakeEnv) Locate(string) repo.Info { return f.info }

func cfg(length int, toRepo bool, fish int) directory.Config {
	return directory.Config{TruncationLength: length, TruncateToRepo: toRepo, FishStyleLength: fish, Prefix: "in "}
}

func TestPath(t *testing.T) {
	rocket := repo.Info{Found: true, Root: home + "/.tmpX1/above-repo/rocket-controls"}
	gauge := home + "/.tmpX1/above-repo/rocket-controls/src/meters/fuel-gauge"

	tests := []struct {
		name string
		env  fakeEnv
		raw  string
		subs []directory.Substitution
		cfg  directory.Config
		want string
	}{
		{name: "substituted and truncated",
			env: fakeEnv{home: home}, raw: "/some/long/network/path/workspace/a/b/c/dev",
			subs: []directory.Substitution{{From: "/some/long/network/path", To: "/some/net"}, {From: "a/b/c", To: "d"}},
			cfg:  cfg(4, true, 0), want: "net/workspace/d/dev"},
		{name: "strange substitution with unlimited length",
			env: fakeEnv{home: home}, raw: "/foo/bar/regular/path",
			subs: []directory.Substitution{{From: "regular", To: `/\/;,!`}},
			cfg:  cfg(0, true, 2), want: `/foo/bar//\/;,!/path`},
		{name: "root", env: fakeEnv{home: home}, raw: "/", cfg: cfg(3, true, 0), want: "/"},
		{name: "empty path", env: fakeEnv{home: home}, raw: "", cfg: cfg(3, true, 0), want: "/"},
		{name: "substituted to empty", env: fakeEnv{home: home}, raw: "/foo/bar",
			subs: []directory.Substitution{{From: "/foo/bar", To: ""}}, cfg: cfg(3, true, 0), want: "/"},
		{name: "substituted to empty unlimited", env: fakeEnv{home: home}, raw: "/foo/bar",
			subs: []directory.Substitution{{From: "/foo/bar", To: ""}}, cfg: cfg(0, true, 0), want: "/"},
		{name: "dot-dot kept literally", env: fakeEnv{home: home}, raw: "/a/b/../c", cfg: cfg(0, true, 0), want: "/a/b/../c"},
		{name: "dot-dot counts as a segment", env: fakeEnv{home: home}, raw: "/a/b/../c", cfg: cfg(2, true, 0), want: "../c"},
		{name: "repeated and trailing separators collapsed", env: fakeEnv{home: home}, raw: "//tmp///x/", cfg: cfg(3, true, 0), want: "/tmp/x"},
		{name: "dot-dot under home", env: fakeEnv{home: home}, raw: home + "/a/../b", cfg: cfg(0, true, 0), want: "~/a/../b"},
		{name: "home", env: fakeEnv{home: home}, raw: home, cfg: cfg(3, true, 0), want: "~"},
		{name: "directory in home", env: fakeEnv{home: home}, raw: home + "/spaceship/engine",
			cfg: cfg(3, true, 0), want: "~/spaceship/engine"},
		{name: "truncated directory in home", env: fakeEnv{home: home}, raw: home + "/spaceship/engine/schematics",
			cfg: cfg(3, true, 0), want: "spaceship/engine/schematics"},
		{name: "fish directory in home", env: fakeEnv{home: home}, raw: home + "/spaceship/engine/schematics",
			cfg: cfg(1, true, 2), want: "~/sp/en/schematics"},
		{name: "sibling of home is not abbreviated", env: fakeEnv{home: home}, raw: "/home/astronaut2/x",
			cfg: cfg(3, true, 0), want: "/home/astronaut2/x"},
		{name: "unknown home", env: fakeEnv{}, raw: home + "/x",
			cfg: cfg(5, true, 0), want: home + "/x"},
		{name: "trailing separator", env: fakeEnv{home: home}, raw: home + "/spaceship/",
			cfg: cfg(3, true, 0), want: "~/spaceship"},
		{name: "directory in root", env: fakeEnv{home: home}, raw: "/opt/spaceship",
			cfg: cfg(3, true, 0), want: "/opt/spaceship"},
		{name: "truncated directory in root", env: fakeEnv{home: home}, raw: "/opt/spaceship/thrusters/rocket",
			cfg: cfg(3, true, 0), want: "spaceship/thrusters/rocket"},
		{name: "large truncation length", env: fakeEnv{home: home}, raw: "/tmp/spaceship/thrusters/rocket",
			cfg: cfg(100, true, 0), want: "/tmp/spaceship/thrusters/rocket"},
		{name: "large fish length", env: fakeEnv{home: home}, raw: "/tmp/spaceship/thrusters/rocket",
			cfg: cfg(1, true, 100), want: "/tmp/spaceship/thrusters/rocket"},
		{name: "small truncation length", env: fakeEnv{home: home}, raw: "/tmp/spaceship/thrusters/rocket",
			cfg: cfg(2, true, 0), want: "thrusters/rocket"},
		{name: "small fish length", env: fakeEnv{home: home}, raw: "/tmp/spaceship/thrusters/rocket",
			cfg: cfg(2, true, 1), want: "/t/s/thrusters/rocket"},
		{name: "substitution feeds home abbreviation", env: fakeEnv{home: home}, raw: "/net/mount/home/astronaut/x",
			subs: []directory.Substitution{{From: "/net/mount", To: ""}},
			cfg:  cfg(3, true, 0), want: "~/x"},
		{name: "repo root", env: fakeEnv{home: home, info: rocket}, raw: rocket.Root,
			cfg: cfg(3, true, 0), want: "rocket-controls"},
		{name: "directory in repo", env: fakeEnv{home: home, info: rocket}, raw: rocket.Root + "/src",
			cfg: cfg(3, true, 0), want: "rocket-controls/src"},
		{name: "repo anchored, all kept", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(5, true, 0), want: "rocket-controls/src/meters/fuel-gauge"},
		{name: "repo anchored, repo name dropped", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(3, true, 0), want: "src/meters/fuel-gauge"},
		{name: "truncate_to_repo off", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(5, false, 0), want: "above-repo/rocket-controls/src/meters/fuel-gauge"},
		{name: "fish with truncate_to_repo off", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(5, false, 1), want: "~/.t/above-repo/rocket-controls/src/meters/fuel-gauge"},
		{name: "fish with truncate_to_repo on", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(5, true, 1), want: "~/.t/a/rocket-controls/src/meters/fuel-gauge"},
		{name: "unlimited length ignores repo and fish", env: fakeEnv{home: home, info: rocket}, raw: gauge,
			cfg: cfg(0, true, 1), want: "~/.tmpX1/above-repo/rocket-controls/src/meters/fuel-gauge"},
		{name: "repo at home uses home anchor",
			env: fakeEnv{home: home, info: repo.Info{Found: true, Root: home}}, raw: home + "/src/meters/fuel-gauge",
			cfg: cfg(5, true, 0), want: "~/src/meters/fuel-gauge"},
		{name: "repo outside the literal path is ignored",
			env: fakeEnv{home: "/tmp", info: repo.Info{Found: true, Root: "/tmp/above-repo/rocket-controls"}},
			raw: "/tmp/fuel-gauge", cfg: cfg(3, true, 0), want: "~/fuel-gauge"},
		{name: "substitution renames repo",
			env: fakeEnv{home: home, info: repo.Info{Found: true, Root: "/work/rocket-controls"}},
			raw: "/work/rocket-controls/src", subs: []directory.Substitution{{From: "rocket-controls", To: "rc"}},
			cfg: cfg(3, true, 0), want: "rc/src"},
		{name: "substitution across repo boundary falls back to full path",
			env: fakeEnv{home: home, info: repo.Info{Found: true, Root: "/work/rocket-controls"}},
			raw: "/work/rocket-controls/src", subs: []directory.Substitution{{From: "controls/src", To: "x"}},
			cfg: cfg(3, true, 0), want: "/work/rocket-x"},
		{name: "grapheme aware contraction", env: fakeEnv{home: home},
			raw: "/tmp/école/日本語/x/y", cfg: cfg(2, true, 1), want: "/t/é/日/x/y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := directory.Path(tt.env, tt.raw, tt.subs, tt.cfg)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Path(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestRender_PrefixAndTrailingSpace(t *testing.T) {
	env := fakeEnv{home: home}

	assert.Equal(t, "in / ", directory.Render(env, "/", nil, directory.DefaultConfig()))
	assert.Equal(t, "in / ", directory.Render(env, "/foo/bar",
		[]directory.Substitution{{From: "/foo/bar", To: ""}}, directory.DefaultConfig()))

	c := directory.DefaultConfig()
	c.Prefix = "sample "
	assert.Equal(t, "sample ~/spaceship ", directory.Render(env, home+"/spaceship", nil, c))
}

func TestSubstitute_LeftToRightSinglePass(t *testing.T) {
	tests := []struct {
		name string
		in   string
		subs []directory.Substitution
		want string
	}{
		{"chained rules", "/a", []directory.Substitution{{From: "a", To: "b"}, {From: "b", To: "c"}}, "/c"},
		{"rule not reapplied to own output", "/a/a", []directory.Substitution{{From: "a", To: "aa"}}, "/aa/aa"},
		{"order matters", "/a", []directory.Substitution{{From: "b", To: "c"}, {From: "a", To: "b"}}, "/b"},
		{"empty from is skipped", "/a", []directory.Substitution{{From: "", To: "x"}}, "/a"},
		{"no rules", "/a/b", nil, "/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, directory.Substitute(tt.in, tt.subs))
		})
	}
}

func TestSegments(t *testing.T) {
	assert.Equal(t, []string{"tmp", "a"}, directory.Segments("/tmp/a"))
	assert.Equal(t, []string{"~", "a"}, directory.Segments("~/a"))
	assert.Equal(t, []string{"repo"}, directory.Segments("repo"))
}

func TestPath_NoHomeMarkerOutsideHome(t *testing.T) {
	env := fakeEnv{home: home}
	for _, raw := range []string{"/", "/tmp", "/home", "/home/astronautics/a/b/c/d", "/var/lib/docker/overlay"} {
		for _, c := range []directory.Config{cfg(0, true, 0), cfg(1, true, 2), cfg(3, false, 1)} {
			assert.NotContains(t, directory.Path(env, raw, nil, c), directory.HomeSymbol, "path %s", raw)
		}
	}
}

func TestPath_TruncationKeepsTrailingSegments(t *testing.T) {
	env := fakeEnv{}
	raws := []string{"/a", "/a/b", "/a/b/c", "/a/b/c/d/e/f/g", "/usr/local/share/man/man1"}
	for _, raw := range raws {
		count := len(directory.Segments(raw))
		for n := 1; n <= 8; n++ {
			t.Run(fmt.Sprintf("%s/%d", raw, n), func(t *testing.T) {
				got := directory.Path(env, raw, nil, cfg(n, true, 0))
				assert.Len(t, directory.Segments(got), min(count, n))
				assert.True(t, strings.HasSuffix(raw, got))
			})
		}
	}
}

func TestPath_FishNeverShortensTail(t *testing.T) {
	env := fakeEnv{home: home}
	raw := home + "/.config/nvim/lua/plugins/completion"

	got := directory.Path(env, raw, nil, cfg(2, true, 1))

	assert.Equal(t, "~/.c/n/l/plugins/completion", got)
	assert.True(t, strings.HasSuffix(got, "/plugins/completion"))
}
