// Package fieldslist extracts, from one node of an executing GraphQL
// query, the set of sub-fields the caller actually requested, so a
// backing data source can be asked for only those fields.
//
// The input is the AST slice a resolver already holds: the field nodes
// of the current selection set, the document's named fragments, and the
// operation's variable values, bundled as a ResolveInfo. From there the
// package resolves fragment spreads and inline fragments, evaluates
// @skip/@include against the variables, applies wildcard-capable
// exclusion patterns, and merges everything into one canonical field
// tree.
//
// Four read views are derived from that tree:
//
//   - FieldsMap: the nested tree itself.
//   - FieldsList: the immediate child names, in selection order.
//   - FieldsProjection: flat dot paths, e.g. for column selection.
//   - FieldsMask: a protobuf FieldMask for gRPC backends.
//
// All entry points share one options surface (WithPath, WithSkip,
// WithTransform, WithDirectives, WithKeepParentField) and degrade to
// empty results on absent or malformed input rather than returning
// errors: "no fields requested" is a normal outcome for callers.
//
// Extraction is a pure in-memory walk. Nothing is cached across calls
// and no shared state exists, so concurrent callers never interfere.
package fieldslist
