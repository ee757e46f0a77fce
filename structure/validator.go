// Copyright 2023 Princess B33f Heavy Industries / Dave Shanley
// SPDX-License-Identifier: MIT

// Package structure implements the structural validator: a single pass over
// a pre-resolution document tree that collects every structural defect it
// can find (missing required fields, malformed version strings, illegal
// parameter locations, unknown security scheme types, malformed identifiers,
// invalid status codes) without ever aborting on the first one.
//
// It never touches $ref: it is meant to run before the reference resolver,
// the same way the teacher's index/validation layers never assume a fully
// dereferenced tree.
package structure

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/pb33f/libopenapi/utils"
	"gopkg.in/yaml.v3"
)

var (
	versionPattern     = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	urlPattern         = regexp.MustCompile(`^https?://.*`)
	operationIDPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	schemaNamePattern  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)
	statusCodePattern  = regexp.MustCompile(`^\d{3}$`)
)

var recognizedMethods = []string{"get", "post", "put", "delete", "patch", "head", "options", "trace"}

var validParamLocations = map[string]bool{"query": true, "header": true, "path": true, "cookie": true}

var validSecuritySchemeTypes = map[string]bool{"apiKey": true, "http": true, "oauth2": true, "openIdConnect": true}

// Defect is a single structural issue found in the document.
type Defect struct {
	Path    string
	Message string
	Line    int
	Column  int
}

func (d *Defect) Error() string {
	return fmt.Sprintf("%s: %s [%d:%d]", d.Path, d.Message, d.Line, d.Column)
}

// Validate walks root (the document's mapping node, pre-resolution) and
// returns every structural defect found. A nil/empty result means the
// document is structurally sound; it says nothing about semantic validity.
func Validate(root *yaml.Node) []*Defect {
	v := &validator{}
	v.validateRoot(root)
	return v.defects
}

type validator struct {
	defects []*Defect
}

func (v *validator) fail(path string, node *yaml.Node, format string, args ...interface{}) {
	line, col := 0, 0
	if node != nil {
		line, col = node.Line, node.Column
	}
	v.defects = append(v.defects, &Defect{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  col,
	})
}

func (v *validator) validateRoot(root *yaml.Node) {
	if root == nil {
		v.fail("$", nil, "document is empty")
		return
	}
	mapping := root
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		mapping = root.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		v.fail("$", mapping, "document root is not a mapping")
		return
	}

	_, openapiNode := utils.FindKeyNodeTop("openapi", mapping.Content)
	_, swaggerNode := utils.FindKeyNodeTop("swagger", mapping.Content)
	if openapiNode == nil && swaggerNode == nil {
		v.fail("$", mapping, "root must contain 'openapi' or 'swagger'")
	}

	_, infoNode := utils.FindKeyNodeTop("info", mapping.Content)
	if infoNode == nil {
		v.fail("$.info", mapping, "'info' is required")
	} else {
		v.validateInfo(infoNode)
	}

	_, pathsNode := utils.FindKeyNodeTop("paths", mapping.Content)
	if pathsNode == nil {
		v.fail("$.paths", mapping, "'paths' is required")
	} else {
		v.validatePaths(pathsNode)
	}

	_, componentsNode := utils.FindKeyNodeTop("components", mapping.Content)
	if componentsNode != nil {
		v.validateComponents(componentsNode)
	}

	_, securityNode := utils.FindKeyNodeTop("security", mapping.Content)
	if securityNode != nil {
		v.validateTopLevelSecurity(securityNode, componentsNode)
	}
}

func (v *validator) validateInfo(info *yaml.Node) {
	if info.Kind != yaml.MappingNode {
		v.fail("$.info", info, "'info' must be a mapping")
		return
	}
	_, title := utils.FindKeyNodeTop("title", info.Content)
	if title == nil || title.Value == "" {
		v.fail("$.info.title", info, "'title' is required")
	}
	_, version := utils.FindKeyNodeTop("version", info.Content)
	if version == nil || version.Value == "" {
		v.fail("$.info.version", info, "'version' is required")
	} else if !versionPattern.MatchString(version.Value) {
		v.fail("$.info.version", version, "version %q must match ^\\d+\\.\\d+\\.\\d+$", version.Value)
	}

	_, contact := utils.FindKeyNodeTop("contact", info.Content)
	if contact != nil && contact.Kind == yaml.MappingNode {
		_, email := utils.FindKeyNodeTop("email", contact.Content)
		if email != nil && email.Value != "" && !emailPattern.MatchString(email.Value) {
			v.fail("$.info.contact.email", email, "email %q is malformed", email.Value)
		}
		_, curl := utils.FindKeyNodeTop("url", contact.Content)
		if curl != nil && curl.Value != "" && !urlPattern.MatchString(curl.Value) {
			v.fail("$.info.contact.url", curl, "url %q must start with http:// or https://", curl.Value)
		}
	}

	_, license := utils.FindKeyNodeTop("license", info.Content)
	if license != nil && license.Kind == yaml.MappingNode {
		_, lname := utils.FindKeyNodeTop("name", license.Content)
		if lname == nil || lname.Value == "" {
			v.fail("$.info.license.name", license, "'name' is required when license is present")
		}
		_, lurl := utils.FindKeyNodeTop("url", license.Content)
		if lurl != nil && lurl.Value != "" && !urlPattern.MatchString(lurl.Value) {
			v.fail("$.info.license.url", lurl, "url %q must start with http:// or https://", lurl.Value)
		}
	}
}

func (v *validator) validatePaths(paths *yaml.Node) {
	if paths.Kind != yaml.MappingNode {
		v.fail("$.paths", paths, "'paths' must be a mapping")
		return
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		pathKey := paths.Content[i].Value
		pathItem := paths.Content[i+1]
		if pathItem.Kind != yaml.MappingNode {
			continue
		}
		for _, method := range recognizedMethods {
			_, opNode := utils.FindKeyNodeTop(method, pathItem.Content)
			if opNode == nil {
				continue
			}
			v.validateOperation(fmt.Sprintf("$.paths['%s'].%s", pathKey, method), opNode)
		}
	}
}

func (v *validator) validateOperation(path string, op *yaml.Node) {
	if op.Kind != yaml.MappingNode {
		v.fail(path, op, "operation must be a mapping")
		return
	}
	_, opID := utils.FindKeyNodeTop("operationId", op.Content)
	if opID != nil && opID.Value != "" && !operationIDPattern.MatchString(opID.Value) {
		v.fail(path+".operationId", opID, "operationId %q is malformed", opID.Value)
	}

	_, responses := utils.FindKeyNodeTop("responses", op.Content)
	if responses == nil || responses.Kind != yaml.MappingNode || len(responses.Content) == 0 {
		v.fail(path+".responses", op, "'responses' must be present and non-empty")
	} else {
		for i := 0; i+1 < len(responses.Content); i += 2 {
			code := responses.Content[i].Value
			if code == "default" {
				continue
			}
			if !statusCodePattern.MatchString(code) {
				v.fail(path+".responses", responses.Content[i], "response key %q must be 'default' or a 3-digit status code", code)
				continue
			}
			n := 0
			fmt.Sscanf(code, "%d", &n)
			if n < 100 || n > 599 {
				v.fail(path+".responses", responses.Content[i], "response status %q must be in [100,599]", code)
			}
		}
	}

	_, params := utils.FindKeyNodeTop("parameters", op.Content)
	if params != nil && params.Kind == yaml.SequenceNode {
		for idx, p := range params.Content {
			v.validateParameter(fmt.Sprintf("%s.parameters[%d]", path, idx), p)
		}
	}
}

func (v *validator) validateParameter(path string, p *yaml.Node) {
	if p.Kind != yaml.MappingNode {
		return
	}
	if _, refNode := utils.FindKeyNodeTop("$ref", p.Content); refNode != nil && len(p.Content) == 2 {
		// a pure $ref parameter is validated once it's resolved; skip here.
		return
	}
	_, name := utils.FindKeyNodeTop("name", p.Content)
	if name == nil || name.Value == "" {
		v.fail(path+".name", p, "'name' is required")
	}
	_, in := utils.FindKeyNodeTop("in", p.Content)
	if in == nil || in.Value == "" {
		v.fail(path+".in", p, "'in' is required")
	} else if !validParamLocations[in.Value] {
		v.fail(path+".in", in, "'in' value %q is not one of query/header/path/cookie", in.Value)
	}
}

func (v *validator) validateComponents(components *yaml.Node) {
	if components.Kind != yaml.MappingNode {
		v.fail("$.components", components, "'components' must be a mapping")
		return
	}
	_, schemas := utils.FindKeyNodeTop("schemas", components.Content)
	if schemas != nil && schemas.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(schemas.Content); i += 2 {
			name := schemas.Content[i]
			if !schemaNamePattern.MatchString(name.Value) {
				v.fail("$.components.schemas", name, "schema name %q is malformed", name.Value)
			}
		}
	}

	_, schemes := utils.FindKeyNodeTop("securitySchemes", components.Content)
	if schemes != nil && schemes.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(schemes.Content); i += 2 {
			schemeName := schemes.Content[i].Value
			scheme := schemes.Content[i+1]
			if scheme.Kind != yaml.MappingNode {
				continue
			}
			_, typeNode := utils.FindKeyNodeTop("type", scheme.Content)
			if typeNode == nil || !validSecuritySchemeTypes[typeNode.Value] {
				v.fail(fmt.Sprintf("$.components.securitySchemes['%s'].type", schemeName), scheme, "security scheme type must be one of apiKey/http/oauth2/openIdConnect")
			}
		}
	}
}

func (v *validator) validateTopLevelSecurity(security *yaml.Node, components *yaml.Node) {
	if security.Kind != yaml.SequenceNode {
		return
	}
	known := map[string]bool{}
	if components != nil && components.Kind == yaml.MappingNode {
		_, schemes := utils.FindKeyNodeTop("securitySchemes", components.Content)
		if schemes != nil && schemes.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(schemes.Content); i += 2 {
				known[schemes.Content[i].Value] = true
			}
		}
	}
	for _, entry := range security.Content {
		if entry.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(entry.Content); i += 2 {
			schemeName := entry.Content[i].Value
			if !known[schemeName] {
				v.fail("$.security", entry.Content[i], "security requirement %q has no matching components.securitySchemes entry", schemeName)
			}
		}
	}
}

// Messages returns the defects as plain sorted strings, for callers that
// just want a simple report rather than structured Defect values.
func Messages(defects []*Defect) []string {
	out := make([]string, 0, len(defects))
	for _, d := range defects {
		out = append(out, d.Error())
	}
	sort.Strings(out)
	return out
}
