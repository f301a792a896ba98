package codec

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lazypower/memoria/internal/memory"
)

type fieldRule struct {
	name     string
	required bool
	check    func(gjson.Result) bool
}

func isString(r gjson.Result) bool { return r.Type == gjson.String }

func isBool(r gjson.Result) bool { return r.IsBool() }

func isStringOrNull(r gjson.Result) bool { return r.Type == gjson.String || r.Type == gjson.Null }

func isInteger(r gjson.Result) bool {
	if r.Type != gjson.Number {
		return false
	}
	_, err := strconv.ParseInt(r.Raw, 10, 64)
	return err == nil
}

func isTheme(r gjson.Result) bool {
	return r.Type == gjson.String && memory.Theme(r.Str).Valid()
}

var recordShape = []fieldRule{
	{"title", true, isString},
	{"message", true, isString},
	{"theme", true, isTheme},
	{"createdAt", true, isInteger},
	{"isPrivate", true, isBool},
	{"autoPlayMusic", true, isBool},
	{"image", false, isStringOrNull},
	{"music", false, isStringOrNull},
	{"password", false, isStringOrNull},
}

// checkShape verifies raw is a JSON object carrying every record field with
// the right type before it is unmarshalled. Extra fields are ignored.
func checkShape(raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fail(StructureDecodeFailure, "payload is not JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return fail(StructureDecodeFailure, "payload is not an object")
	}
	if err := checkKeys(root); err != nil {
		return err
	}

	for _, rule := range recordShape {
		v := root.Get(rule.name)
		if !v.Exists() {
			if rule.required {
				return fail(StructureDecodeFailure, "missing field %q", rule.name)
			}
			continue
		}
		if !rule.check(v) {
			return fail(StructureDecodeFailure, "field %q has the wrong type", rule.name)
		}
	}
	return nil
}

// checkKeys rejects objects whose record fields are ambiguous. gjson reads
// the first copy of a key with exact case, encoding/json the last copy
// with case folded, so a repeated or re-cased field would be validated in
// one form and decoded in another.
func checkKeys(root gjson.Result) error {
	seen := make(map[string]bool, len(recordShape))
	var err error
	root.ForEach(func(key, _ gjson.Result) bool {
		name := key.String()
		field, ok := recordFieldFold(name)
		switch {
		case !ok:
			return true
		case name != field:
			err = fail(StructureDecodeFailure, "field %q differs from %q only in case", name, field)
		case seen[field]:
			err = fail(StructureDecodeFailure, "duplicate field %q", field)
		default:
			seen[field] = true
			return true
		}
		return false
	})
	return err
}

func recordFieldFold(name string) (string, bool) {
	for _, rule := range recordShape {
		if strings.EqualFold(name, rule.name) {
			return rule.name, true
		}
	}
	return "", false
}
