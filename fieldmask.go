package fieldslist

import "google.golang.org/protobuf/types/known/fieldmaskpb"

// FieldsMask renders the requested leaf fields as a protobuf FieldMask,
// ready to hand to a gRPC-backed data source. Paths appear in traversal
// order; a transform table maps field names onto proto field paths.
// Since a mask path already covers its whole subtree, branch paths are
// never included regardless of WithKeepParentField.
func FieldsMask(info *ResolveInfo, opts ...Option) *fieldmaskpb.FieldMask {
	o := newOptions(opts)
	entries := flatten(extract(info, o), o)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.leaf {
			paths = append(paths, e.path)
		}
	}
	return &fieldmaskpb.FieldMask{Paths: paths}
}
