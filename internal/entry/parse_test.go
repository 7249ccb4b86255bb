package entry

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_Entry(t *testing.T) {
	line := RawLine{Number: 7, Text: `{"timestamp":"2024-03-15T12:34:56.042Z","level":"info","message":"This is a log message","user_id":42,"session_id":"abc123"}`}

	out := Parse(line)
	if out.Kind != KindEntry {
		t.Fatalf("Kind = %v, want entry (err=%v)", out.Kind, out.Err)
	}
	if out.Line != 7 {
		t.Fatalf("Line = %d, want 7", out.Line)
	}
	e := out.Entry
	if e.Timestamp != "2024-03-15T12:34:56.042Z" || e.Level != "info" || e.Message != "This is a log message" {
		t.Fatalf("required fields = %q %q %q", e.Timestamp, e.Level, e.Message)
	}
	if len(e.Extras) != 2 {
		t.Fatalf("len(Extras) = %d, want 2", len(e.Extras))
	}
	if e.Extras[0].Key != "user_id" || e.Extras[0].Value.Number != "42" {
		t.Fatalf("Extras[0] = %#v, want user_id=42", e.Extras[0])
	}
	if e.Extras[1].Key != "session_id" || e.Extras[1].Value.Str != "abc123" {
		t.Fatalf("Extras[1] = %#v, want session_id=abc123", e.Extras[1])
	}
}

func TestParse_ExtrasKeepSourceOrder(t *testing.T) {
	line := RawLine{Number: 1, Text: `{"zeta":1,"timestamp":"t","alpha":2,"level":"info","mid":3,"message":"m","beta":4}`}

	out := Parse(line)
	if out.Kind != KindEntry {
		t.Fatalf("Kind = %v, want entry (err=%v)", out.Kind, out.Err)
	}
	var keys []string
	for _, m := range out.Entry.Extras {
		keys = append(keys, m.Key)
	}
	if got := strings.Join(keys, ","); got != "zeta,alpha,mid,beta" {
		t.Fatalf("extras order = %s, want zeta,alpha,mid,beta", got)
	}
}

func TestParse_NumbersKeepLiteralForm(t *testing.T) {
	line := RawLine{Number: 1, Text: `{"timestamp":"t","level":"info","message":"m","int":8080,"float":1.50,"exp":1e3,"neg":-0}`}

	out := Parse(line)
	if out.Kind != KindEntry {
		t.Fatalf("Kind = %v, want entry (err=%v)", out.Kind, out.Err)
	}
	want := map[string]string{"int": "8080", "float": "1.50", "exp": "1e3", "neg": "-0"}
	for _, m := range out.Entry.Extras {
		if m.Value.Type != TypeNumber {
			t.Fatalf("%s type = %v, want number", m.Key, m.Value.Type)
		}
		if string(m.Value.Number) != want[m.Key] {
			t.Fatalf("%s = %q, want %q", m.Key, m.Value.Number, want[m.Key])
		}
	}
}

func TestParse_NestedObjectsKeepOrder(t *testing.T) {
	line := RawLine{Number: 1, Text: `{"timestamp":"t","level":"info","message":"m","req":{"z":1,"a":[true,null,"x"]}}`}

	out := Parse(line)
	if out.Kind != KindEntry {
		t.Fatalf("Kind = %v, want entry (err=%v)", out.Kind, out.Err)
	}
	req := out.Entry.Extras[0].Value
	if req.Type != TypeObject || len(req.Members) != 2 {
		t.Fatalf("req = %#v, want object with 2 members", req)
	}
	if req.Members[0].Key != "z" || req.Members[1].Key != "a" {
		t.Fatalf("nested order = %s,%s, want z,a", req.Members[0].Key, req.Members[1].Key)
	}
	arr := req.Members[1].Value
	if arr.Type != TypeArray || len(arr.Items) != 3 {
		t.Fatalf("a = %#v, want 3 items", arr)
	}
	if arr.Items[0].Type != TypeBool || !arr.Items[0].Bool || arr.Items[1].Type != TypeNull || arr.Items[2].Str != "x" {
		t.Fatalf("a items = %#v", arr.Items)
	}
}

func TestParse_DuplicateKeysFirstWins(t *testing.T) {
	line := RawLine{Number: 1, Text: `{"timestamp":"t","level":"info","message":"first","message":"second","k":1,"k":2}`}

	out := Parse(line)
	if out.Kind != KindEntry {
		t.Fatalf("Kind = %v, want entry (err=%v)", out.Kind, out.Err)
	}
	if out.Entry.Message != "first" {
		t.Fatalf("Message = %q, want first", out.Entry.Message)
	}
	if len(out.Entry.Extras) != 1 || out.Entry.Extras[0].Value.Number != "1" {
		t.Fatalf("Extras = %#v, want only k=1", out.Entry.Extras)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\t \t"} {
		out := Parse(RawLine{Number: 4, Text: text})
		if out.Kind != KindEmpty {
			t.Fatalf("Parse(%q).Kind = %v, want empty", text, out.Kind)
		}
		if out.Line != 4 {
			t.Fatalf("Parse(%q).Line = %d, want 4", text, out.Line)
		}
	}
}

func TestParse_Failures(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		reason   Reason
		sentinel error
		contains string
	}{
		{"not json", "not json", ReasonSyntax, ErrSyntax, "invalid JSON syntax"},
		{"truncated", `{"timestamp":"t"`, ReasonSyntax, ErrSyntax, "invalid JSON syntax"},
		{"bad key", `{bad}`, ReasonSyntax, ErrSyntax, "invalid JSON syntax"},
		{"trailing comma", `{"a":1,}`, ReasonSyntax, ErrSyntax, "invalid JSON syntax"},
		{"trailing data", `{"timestamp":"t","level":"l","message":"m"} x`, ReasonSyntax, ErrSyntax, "invalid JSON syntax"},
		{"two objects", `{"timestamp":"t","level":"l","message":"m"}{}`, ReasonSyntax, ErrSyntax, "after top-level value"},
		{"array", `[1,2]`, ReasonNotObject, ErrSchema, "not a JSON object: got array"},
		{"string", `"hello"`, ReasonNotObject, ErrSchema, "got string"},
		{"missing level", `{"timestamp":"t","message":"m"}`, ReasonMissingField, ErrSchema, `missing required field "level"`},
		{"missing all", `{}`, ReasonMissingField, ErrSchema, `missing required field "timestamp"`},
		{"numeric message", `{"timestamp":"t","level":"info","message":42}`, ReasonWrongType, ErrSchema, `wrong type for field "message": expected string, got number`},
		{"null level", `{"timestamp":"t","level":null,"message":"m"}`, ReasonWrongType, ErrSchema, "got null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Parse(RawLine{Number: 3, Text: tt.text})
			if out.Kind != KindParseError {
				t.Fatalf("Kind = %v, want parse error", out.Kind)
			}
			var pe *ParseError
			if !errors.As(out.Err, &pe) {
				t.Fatalf("Err = %T, want *ParseError", out.Err)
			}
			if pe.Reason != tt.reason {
				t.Fatalf("Reason = %v, want %v", pe.Reason, tt.reason)
			}
			if pe.Line != 3 || pe.Raw != tt.text {
				t.Fatalf("Line/Raw = %d/%q, want 3/%q", pe.Line, pe.Raw, tt.text)
			}
			if !errors.Is(out.Err, tt.sentinel) {
				t.Fatalf("errors.Is(%v, %v) = false", out.Err, tt.sentinel)
			}
			if !strings.Contains(out.Err.Error(), tt.contains) {
				t.Fatalf("Error() = %q, want it to contain %q", out.Err.Error(), tt.contains)
			}
		})
	}
}

func TestParseError_SyntaxAndSchemaAreDistinct(t *testing.T) {
	syntax := Parse(RawLine{Number: 1, Text: "{"}).Err
	schema := Parse(RawLine{Number: 2, Text: "{}"}).Err
	if errors.Is(syntax, ErrSchema) {
		t.Fatalf("syntax error matched ErrSchema")
	}
	if errors.Is(schema, ErrSyntax) {
		t.Fatalf("schema error matched ErrSyntax")
	}
}
