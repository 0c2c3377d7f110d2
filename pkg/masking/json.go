package masking

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// MaskJSON applies the JSONPath rules configured under key in the json
// section to a serialized JSON document and returns the re-serialized
// result. Unknown keys log a warning and pass the document through
// unchanged. All rules of a key run against the same document instance;
// values are replaced in place, never inserted or removed, so array
// indices stay valid across rules.
//
// A document that cannot be parsed is fully masked rather than passed
// through: an unreadable payload may still carry the secrets the rules
// were written for.
func (s *Service) MaskJSON(input, key string) string {
	rules, ok := s.cfg.JSON[key]
	if !ok {
		slog.Warn("Mask configuration does not contain the json key", "key", key)
		return input
	}

	doc, err := oj.ParseString(input)
	if err != nil {
		slog.Error("Failed to parse document for json masking, masking whole input",
			"key", key, "error", err)
		return maskAll(input, MaskChar)
	}

	for _, rule := range rules {
		s.applyJSONRule(doc, rule.Path, rule.Pattern)
	}

	return oj.JSON(doc)
}

// applyJSONRule resolves path against doc and masks the value(s) found
// there in place. A path that resolves to nothing is skipped. A resolved
// array expands into one concrete sub-path per element, each masked
// independently.
func (s *Service) applyJSONRule(doc any, path, pattern string) {
	expr, err := jp.ParseString(path)
	if err != nil {
		slog.Warn("Invalid json path in masking rule, skipping", "path", path, "error", err)
		return
	}

	locations := expr.Locate(doc, 0)
	if len(locations) == 0 {
		slog.Warn("Json path could not be found", "path", path)
		return
	}

	for _, loc := range locations {
		if list, ok := loc.First(doc).([]any); ok {
			for i := range list {
				s.maskScalarAt(doc, childPath(loc, i), pattern)
			}
			continue
		}
		s.maskScalarAt(doc, loc, pattern)
	}
}

// maskScalarAt masks the scalar at path and writes the result back in
// place. Values that are neither strings nor integers (objects, booleans,
// null, floats) are left unmasked with an error log — composite values are
// not recursively masked.
func (s *Service) maskScalarAt(doc any, path jp.Expr, pattern string) {
	value := path.First(doc)
	str, ok := scalarString(value)
	if !ok {
		slog.Error("The value specified by path cannot be masked",
			"path", path.String(), "type", fmt.Sprintf("%T", value))
		return
	}
	if err := path.Set(doc, s.maskGroups(str, MaskChar, pattern)); err != nil {
		slog.Error("Failed to write masked value back", "path", path.String(), "error", err)
	}
}

// scalarString converts a maskable scalar to its string form. Only strings
// and integers are maskable.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// childPath returns path extended with array index i, without aliasing the
// parent's backing array.
func childPath(path jp.Expr, i int) jp.Expr {
	child := make(jp.Expr, len(path), len(path)+1)
	copy(child, path)
	return append(child, jp.Nth(i))
}
