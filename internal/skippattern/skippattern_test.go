package skippattern

import "testing"

func matchPath(t *testing.T, tree *Tree, path ...string) (last *Tree, excluded bool) {
	t.Helper()
	cur := tree
	for _, seg := range path {
		next, all := cur.Match(seg)
		if all {
			return nil, true
		}
		cur = next
	}
	return cur, false
}

func TestCompileAndMatch(t *testing.T) {
	t.Run("terminal literal excludes subtree", func(t *testing.T) {
		tree := Compile([]string{"address.country"})
		if _, all := matchPath(t, tree, "address", "country"); !all {
			t.Fatal("address.country should be excluded entirely")
		}
		if _, all := matchPath(t, tree, "address", "city"); all {
			t.Fatal("address.city should be kept")
		}
	})

	t.Run("trailing wildcard equals bare terminal", func(t *testing.T) {
		plain := Compile([]string{"address.country"})
		star := Compile([]string{"address.country.*"})
		for _, path := range [][]string{
			{"address", "country"},
			{"address", "city"},
			{"other"},
		} {
			_, a := matchPath(t, plain, path...)
			_, b := matchPath(t, star, path...)
			if a != b {
				t.Fatalf("path %v: plain=%v star=%v", path, a, b)
			}
		}
	})

	t.Run("deep pattern prunes single leaf", func(t *testing.T) {
		tree := Compile([]string{"a.b.c"})
		scope, all := tree.Match("a")
		if all || scope == nil {
			t.Fatalf("a should descend with narrowed scope, all=%v", all)
		}
		scope, all = scope.Match("b")
		if all || scope == nil {
			t.Fatalf("b should descend with narrowed scope, all=%v", all)
		}
		if _, all = scope.Match("c"); !all {
			t.Fatal("c should be excluded")
		}
		if _, all = scope.Match("d"); all {
			t.Fatal("d should be kept")
		}
	})

	t.Run("wildcard segment matches substring", func(t *testing.T) {
		tree := Compile([]string{"*Name"})
		for _, name := range []string{"firstName", "lastName", "Name"} {
			if _, all := tree.Match(name); !all {
				t.Fatalf("%s should be excluded", name)
			}
		}
		if _, all := tree.Match("email"); all {
			t.Fatal("email should be kept")
		}
	})

	t.Run("non-terminal wildcard descends", func(t *testing.T) {
		tree := Compile([]string{"*.secret"})
		scope, all := tree.Match("profile")
		if all {
			t.Fatal("profile itself should be kept")
		}
		if scope == nil {
			t.Fatal("wildcard should narrow scope for children")
		}
		if _, all := scope.Match("secret"); !all {
			t.Fatal("profile.secret should be excluded")
		}
	})

	t.Run("bare wildcard excludes everything", func(t *testing.T) {
		tree := Compile([]string{"*"})
		if _, all := tree.Match("anything"); !all {
			t.Fatal("bare * should exclude any field")
		}
	})

	t.Run("exclude-all wins over nested wildcard rules", func(t *testing.T) {
		tree := Compile([]string{"*x.child", "a*"})
		if _, all := tree.Match("ax"); !all {
			t.Fatal("a* exclusion should win immediately")
		}
	})

	t.Run("whole-subtree pattern supersedes narrower one", func(t *testing.T) {
		tree := Compile([]string{"a.b", "a.*"})
		if _, all := tree.Match("a"); !all {
			t.Fatal("a.* should exclude a entirely")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if tree := Compile(nil); tree != nil {
			t.Fatal("no patterns should compile to nil tree")
		}
		if tree := Compile([]string{""}); tree != nil {
			t.Fatal("empty pattern should be ignored")
		}
		var tree *Tree
		if next, all := tree.Match("x"); next != nil || all {
			t.Fatal("nil tree should never match")
		}
	})
}
