package handlers_test

import (
	"bufio"
	"encoding/json"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/SscSPs/user_account_service/cmd/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	responseAnnotation = regexp.MustCompile(`^// @(?:Success|Failure) (\d{3}) \{object\} dto\.APIResponse(?:\{data=([\w.]+)\})?`)
	routerAnnotation   = regexp.MustCompile(`^// @Router (\S+) \[(\w+)\]`)
)

type annotatedRoute struct {
	path, method string
	// status code -> data schema ("" when the envelope carries no typed data)
	responses map[string]string
}

func readAnnotatedRoutes(t *testing.T, file string) []annotatedRoute {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()

	var routes []annotatedRoute
	current := map[string]string{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := responseAnnotation.FindStringSubmatch(line); m != nil {
			current[m[1]] = m[2]
			continue
		}
		if m := routerAnnotation.FindStringSubmatch(line); m != nil {
			routes = append(routes, annotatedRoute{path: m[1], method: m[2], responses: current})
			current = map[string]string{}
		}
	}
	require.NoError(t, sc.Err())
	return routes
}

type swaggerSchema struct {
	Ref   string          `json:"$ref"`
	AllOf []swaggerSchema `json:"allOf"`
	Props map[string]struct {
		Ref string `json:"$ref"`
	} `json:"properties"`
}

type swaggerDoc struct {
	Paths map[string]map[string]struct {
		Responses map[string]struct {
			Schema swaggerSchema `json:"schema"`
		} `json:"responses"`
	} `json:"paths"`
	Definitions map[string]json.RawMessage `json:"definitions"`
}

func dataSchema(s swaggerSchema) string {
	for _, part := range s.AllOf {
		if p, ok := part.Props["data"]; ok {
			return strings.TrimPrefix(p.Ref, "#/definitions/")
		}
	}
	return ""
}

func TestSwaggerDocMatchesHandlerAnnotations(t *testing.T) {
	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	routes := readAnnotatedRoutes(t, "handler_auth.go")
	require.NotEmpty(t, routes)

	for _, route := range routes {
		ops, ok := doc.Paths[route.path]
		require.True(t, ok, "path %s missing from docs", route.path)
		op, ok := ops[route.method]
		require.True(t, ok, "%s %s missing from docs", route.method, route.path)

		assert.Len(t, op.Responses, len(route.responses), "%s %s response codes", route.method, route.path)
		for code, wantData := range route.responses {
			resp, ok := op.Responses[code]
			if !assert.True(t, ok, "%s %s lacks %s", route.method, route.path, code) {
				continue
			}
			assert.Equal(t, wantData, dataSchema(resp.Schema), "%s %s %s data schema", route.method, route.path, code)
			if wantData != "" {
				assert.Contains(t, doc.Definitions, wantData)
			}
		}
	}
}
