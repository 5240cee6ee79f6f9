package fieldslist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFieldsMask(t *testing.T) {
	t.Run("leaf paths in traversal order", func(t *testing.T) {
		mask := FieldsMask(infoFor(t, nestedQuery, nil))
		if diff := cmp.Diff([]string{"a", "b.c", "b.e", "b.f"}, mask.GetPaths()); diff != "" {
			t.Fatalf("mask mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("branch paths never included", func(t *testing.T) {
		mask := FieldsMask(infoFor(t, nestedQuery, nil), WithKeepParentField())
		if diff := cmp.Diff([]string{"a", "b.c", "b.e", "b.f"}, mask.GetPaths()); diff != "" {
			t.Fatalf("mask mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("transform maps onto proto paths", func(t *testing.T) {
		mask := FieldsMask(infoFor(t, nestedQuery, nil),
			WithTransform(map[string]string{"b.c": "b.c_col"}))
		if diff := cmp.Diff([]string{"a", "b.c_col", "b.e", "b.f"}, mask.GetPaths()); diff != "" {
			t.Fatalf("mask mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("skip and path apply", func(t *testing.T) {
		mask := FieldsMask(infoFor(t, nestedQuery, nil), WithPath("b"), WithSkip("b.e"))
		if diff := cmp.Diff([]string{"c", "f"}, mask.GetPaths()); diff != "" {
			t.Fatalf("mask mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty input yields empty mask", func(t *testing.T) {
		require.Empty(t, FieldsMask(nil).GetPaths())
	})
}
