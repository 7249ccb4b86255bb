package entry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	fieldTimestamp = "timestamp"
	fieldLevel     = "level"
	fieldMessage   = "message"
)

var requiredFields = [...]string{fieldTimestamp, fieldLevel, fieldMessage}

// Parse turns one raw line into an Outcome. It never panics on malformed
// input: blank lines yield KindEmpty and everything that is not a log record
// yields KindParseError.
func Parse(line RawLine) Outcome {
	if strings.TrimSpace(line.Text) == "" {
		return Outcome{Kind: KindEmpty, Line: line.Number}
	}

	fail := func(pe *ParseError) Outcome {
		pe.Line = line.Number
		pe.Raw = line.Text
		return Outcome{Kind: KindParseError, Line: line.Number, Err: pe}
	}

	dec := json.NewDecoder(strings.NewReader(line.Text))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return fail(&ParseError{Reason: ReasonSyntax, Cause: err})
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return fail(&ParseError{Reason: ReasonSyntax, Cause: err})
	}
	if root.Type != TypeObject {
		return fail(&ParseError{Reason: ReasonNotObject, Got: root.Type})
	}

	var required [len(requiredFields)]string
	for i, name := range requiredFields {
		v, ok := Lookup(root.Members, name)
		if !ok {
			return fail(&ParseError{Reason: ReasonMissingField, Field: name})
		}
		if v.Type != TypeString {
			return fail(&ParseError{Reason: ReasonWrongType, Field: name, Got: v.Type})
		}
		required[i] = v.Str
	}

	var extras []Member
	for _, m := range root.Members {
		if m.Key == fieldTimestamp || m.Key == fieldLevel || m.Key == fieldMessage {
			continue
		}
		extras = append(extras, m)
	}

	return Outcome{
		Kind: KindEntry,
		Line: line.Number,
		Entry: LogEntry{
			Timestamp: required[0],
			Level:     required[1],
			Message:   required[2],
			Extras:    extras,
		},
	}
}

// decodeValue reads one complete JSON value from the token stream. Object
// members keep their source order; a repeated key keeps its first value.
func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		return Value{Type: TypeNumber, Number: t}, nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	obj := Value{Type: TypeObject}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		obj.Members = append(obj.Members, Member{Key: key, Value: val})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return Value{}, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (Value, error) {
	arr := Value{Type: TypeArray}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		arr.Items = append(arr.Items, val)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return Value{}, err
	}
	return arr, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}
