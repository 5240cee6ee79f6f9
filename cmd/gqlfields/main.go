package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	fieldslist "github.com/Mikhus/graphql-fields-list"
	"github.com/Mikhus/graphql-fields-list/internal/eventbus"
	"github.com/Mikhus/graphql-fields-list/internal/language"
	"github.com/Mikhus/graphql-fields-list/internal/otel"
	"github.com/Mikhus/graphql-fields-list/internal/server"
)

const rootUsage = `gqlfields — extract requested fields from GraphQL queries

USAGE:
  gqlfields <command> [flags] [query-file]

COMMANDS:
  map              Print the nested field tree of a query
  list             Print the top-level field names of a query
  projection       Print the flattened dot-path projection of a query
  mask             Print the field paths as a protobuf FieldMask
  serve            Run the HTTP extraction service
  help             Show help for any command

The query is read from the given file, or from stdin when the file is
omitted or is "-".
`

const extractUsage = `map|list|projection|mask FLAGS:
  -field <name>            Root field to extract under (default: first field)
  -operation <name>        Operation to use when the document has several
  -vars <json>             Variable values as a JSON object
  -path <dot.path>         Navigate into the tree before producing output
  -skip <pattern>          Exclusion pattern, e.g. 'a.b.*'. Repeatable
  -transform <from=to>     Rename a field (list) or path (projection). Repeatable
  -no-directives           Ignore @skip/@include directives
  -keep-parent-field       Projection only: also emit branch paths
  -pretty                  Pretty-print JSON output
`

const serveUsage = `serve FLAGS:
  -server.addr <addr>      HTTP listen address (default: :8080)
  -server.pretty           Pretty-print JSON responses
  -server.timeout <dur>    Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <n>     Max request body size in bytes (default: 1048576)
  -server.cors-origin <o>  Allowed CORS origin. Repeatable
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: gqlfields)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlfields", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "map", "list", "projection", "mask":
		return cmdExtract(cmd, cmdArgs)
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "map", "list", "projection", "mask":
		fmt.Print(extractUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type transformFlag struct {
	m map[string]string
}

func (t *transformFlag) String() string { return "" }

func (t *transformFlag) Set(v string) error {
	parts := strings.SplitN(v, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid transform %q", v)
	}
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])
	if from == "" || to == "" {
		return fmt.Errorf("invalid transform %q", v)
	}
	if t.m == nil {
		t.m = map[string]string{}
	}
	t.m[from] = to
	return nil
}

func cmdExtract(view string, args []string) error {
	field := ""
	operation := ""
	varsJSON := ""
	path := ""
	noDirectives := false
	keepParentField := false
	pretty := false
	var skip stringListFlag
	var transform transformFlag

	fs := flag.NewFlagSet(view, flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&field, "field", field, "Root field to extract under")
	fs.StringVar(&operation, "operation", operation, "Operation name")
	fs.StringVar(&varsJSON, "vars", varsJSON, "Variable values as JSON")
	fs.StringVar(&path, "path", path, "Navigate into the tree first")
	fs.Var(&skip, "skip", "Exclusion pattern")
	fs.Var(&transform, "transform", "Rename a field or path")
	fs.BoolVar(&noDirectives, "no-directives", noDirectives, "Ignore @skip/@include")
	fs.BoolVar(&keepParentField, "keep-parent-field", keepParentField, "Also emit branch paths")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print JSON output")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, extractUsage)
		return err
	}

	source, err := readQuery(fs.Args())
	if err != nil {
		return err
	}
	doc, err := language.ParseQuery(source)
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	vars := map[string]any{}
	if varsJSON != "" {
		if err := json.Unmarshal([]byte(varsJSON), &vars); err != nil {
			return fmt.Errorf("parse -vars: %w", err)
		}
	}

	info := fieldslist.ResolveInfoFromQuery(doc, operation, field, vars)
	opts := []fieldslist.Option{
		fieldslist.WithPath(path),
		fieldslist.WithSkip(skip...),
		fieldslist.WithTransform(transform.m),
		fieldslist.WithDirectives(!noDirectives),
	}
	if keepParentField {
		opts = append(opts, fieldslist.WithKeepParentField())
	}

	var out any
	switch view {
	case "map":
		out = fieldslist.FieldsMap(info, opts...)
	case "list":
		names := fieldslist.FieldsList(info, opts...)
		if names == nil {
			names = []string{}
		}
		out = names
	case "projection":
		out = fieldslist.FieldsProjection(info, opts...)
	case "mask":
		paths := fieldslist.FieldsMask(info, opts...).GetPaths()
		if paths == nil {
			paths = []string{}
		}
		out = paths
	}

	enc := json.NewEncoder(os.Stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

func readQuery(args []string) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected at most one query file, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func cmdServe(args []string) error {
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	maxBody := int64(1 << 20)
	otelEndpoint := ""
	otelService := "gqlfields"
	var corsOrigins stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size in bytes")
	fs.Var(&corsOrigins, "server.cors-origin", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}

	mux := http.NewServeMux()
	mux.Handle("/extract", server.New(sopts...))

	log.Printf("extraction server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
