package javasrc

import (
	"regexp"
	"strings"

	"github.com/archlens/archlens/schema"
)

var (
	packageRe    = regexp.MustCompile(`^\s*package\s+([\w.]+)\s*;`)
	importRe     = regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+(?:\.\*)?)\s*;`)
	annotationRe = regexp.MustCompile(`@(\w+)`)
	typeDeclRe   = regexp.MustCompile(`(?:^|\s)(class|interface|enum|record)\s+(\w+)`)
	methodRe     = regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final|synchronized|abstract|default)\s+)*(?:<[^>]*>\s*)?[\w.]+(?:<[^>]*>)?(?:\[\])?\s+(\w+)\s*\(([^)]*)\)`)
	ctorRe       = regexp.MustCompile(`^\s*(?:public|protected|private)\s+(\w+)\s*\(([^)]*)\)`)
	fieldRe      = regexp.MustCompile(`^\s*(?:private|protected|public)\s+(?:final\s+)?(?:static\s+)?([A-Z]\w*)(?:<[^>]*>)?\s+(\w+)\s*(?:;|=)`)
	callRe       = regexp.MustCompile(`(\w+)\.(\w+)\s*\(`)
	newExprRe    = regexp.MustCompile(`\bnew\s+([A-Z]\w*)(?:<[^>]*>)?\s*\(`)
)

// controlKeywords are identifiers that look like method names to the line
// scanner but are flow control.
var controlKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "switch": {}, "catch": {},
	"return": {}, "new": {}, "super": {}, "this": {}, "else": {},
}

// parseUnit scans one Java file. The scanner is deliberately tolerant:
// anything it cannot make sense of is ignored rather than reported, matching
// the policy that malformed units degrade results instead of aborting them.
func parseUnit(path, content string) schema.SourceUnit {
	unit := schema.SourceUnit{Path: path}

	lines := strings.Split(content, "\n")
	unit.LineCount = len(lines)

	var (
		pendingAnnotations []string
		currentClass       *schema.SourceClass
		currentMethod      *schema.SourceMethod
		varTypes           = map[string]string{} // identifier -> declared type
		inBlockComment     bool
	)

	flushMethod := func() {
		if currentClass != nil && currentMethod != nil {
			currentClass.Methods = append(currentClass.Methods, *currentMethod)
		}
		currentMethod = nil
	}
	flushClass := func() {
		flushMethod()
		if currentClass != nil {
			unit.Classes = append(unit.Classes, *currentClass)
		}
		currentClass = nil
	}

	for _, raw := range lines {
		line, stillInComment := stripComments(raw, inBlockComment)
		inBlockComment = stillInComment
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Construction expressions can sit anywhere: field initializers,
		// method bodies, static blocks. Collected unit-wide.
		for _, m := range newExprRe.FindAllStringSubmatch(line, -1) {
			unit.Constructs = append(unit.Constructs, m[1])
		}

		if m := packageRe.FindStringSubmatch(line); m != nil {
			unit.Package = m[1]
			continue
		}
		if m := importRe.FindStringSubmatch(line); m != nil {
			unit.Imports = append(unit.Imports, strings.TrimSuffix(m[1], ".*"))
			continue
		}

		// Annotations accumulate until the next declaration consumes them.
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			for _, m := range annotationRe.FindAllStringSubmatch(line, -1) {
				pendingAnnotations = append(pendingAnnotations, m[1])
			}
			continue
		}

		if m := typeDeclRe.FindStringSubmatch(line); m != nil {
			flushClass()
			currentClass = &schema.SourceClass{
				Name:        m[2],
				IsInterface: m[1] == "interface",
				Annotations: pendingAnnotations,
			}
			pendingAnnotations = nil
			continue
		}

		if currentClass == nil {
			pendingAnnotations = nil
			continue
		}

		if m := fieldRe.FindStringSubmatch(line); m != nil {
			varTypes[m[2]] = m[1]
			pendingAnnotations = nil
			continue
		}

		if m := ctorRe.FindStringSubmatch(line); m != nil && m[1] == currentClass.Name {
			collectParamTypes(m[2], varTypes)
			pendingAnnotations = nil
			continue
		}

		if m := methodRe.FindStringSubmatch(line); m != nil {
			if _, ctrl := controlKeywords[m[1]]; !ctrl {
				flushMethod()
				currentMethod = &schema.SourceMethod{
					Name:        m[1],
					Annotations: pendingAnnotations,
				}
				pendingAnnotations = nil
				collectParamTypes(m[2], varTypes)
				continue
			}
		}
		pendingAnnotations = nil

		if currentMethod != nil {
			for _, m := range callRe.FindAllStringSubmatch(line, -1) {
				receiver, method := m[1], m[2]
				if _, ctrl := controlKeywords[receiver]; ctrl {
					continue
				}
				currentMethod.Calls = append(currentMethod.Calls, schema.SourceCall{
					Receiver: receiver,
					Method:   method,
					Target:   resolveTarget(receiver, varTypes),
				})
			}
		}
	}
	flushClass()

	return unit
}

// resolveTarget maps a receiver identifier to its declared type. Receivers
// that are already capitalized are treated as static calls to that class.
func resolveTarget(receiver string, varTypes map[string]string) string {
	if t, ok := varTypes[receiver]; ok {
		return t
	}
	if receiver != "" && receiver[0] >= 'A' && receiver[0] <= 'Z' {
		return receiver
	}
	return ""
}

// collectParamTypes records `Type name` pairs from a parameter list.
func collectParamTypes(params string, varTypes map[string]string) {
	for part := range strings.SplitSeq(params, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			continue
		}
		typ := fields[len(fields)-2]
		name := fields[len(fields)-1]
		// Strip generics so OrderRepository<Long> resolves as OrderRepository.
		if i := strings.IndexByte(typ, '<'); i > 0 {
			typ = typ[:i]
		}
		if typ == "" || typ[0] < 'A' || typ[0] > 'Z' {
			continue
		}
		varTypes[name] = typ
	}
}

// stripComments removes line comments and tracks block comment state.
func stripComments(line string, inBlock bool) (string, bool) {
	var b strings.Builder
	i := 0
	for i < len(line) {
		if inBlock {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return b.String(), true
			}
			i += end + 2
			inBlock = false
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			return b.String(), false
		}
		if strings.HasPrefix(line[i:], "/*") {
			inBlock = true
			i += 2
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String(), inBlock
}
