package stream

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type rec struct {
	Ev    EventType
	Path  string
	Field string
	Index int
	Value string
}

func readAll(t *testing.T, in string, opts ...StreamOption) []rec {
	t.Helper()
	r := NewReader(strings.NewReader(in), opts...)
	var res []rec
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return res
		}
		if err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		x := rec{Ev: ev, Path: r.Path().String(), Field: r.FieldName(), Index: r.ArrayIndex()}
		if ev.IsScalar() {
			v, err := r.Value()
			if err != nil {
				t.Fatal(err)
			}
			x.Value = fmt.Sprint(v)
		}
		res = append(res, x)
	}
}

func TestReaderEvents(t *testing.T) {
	got := readAll(t, `{"a":1,"b":[true,null,"x"],"c":{"d":{"$numberLong":5}},"e":{}}`)
	want := []rec{
		{EventStartMap, "", "", -1, ""},
		{EventDouble, "a", "a", -1, "1"},
		{EventStartArray, "b", "b", -1, ""},
		{EventBoolean, "b[0]", "", 0, "true"},
		{EventNull, "b[1]", "", 1, "null"},
		{EventString, "b[2]", "", 2, "x"},
		{EventEndArray, "b", "b", -1, ""},
		{EventStartMap, "c", "c", -1, ""},
		{EventLong, "c.d", "d", -1, "5"},
		{EventEndMap, "c", "c", -1, ""},
		{EventStartMap, "e", "e", -1, ""},
		{EventEndMap, "e", "e", -1, ""},
		{EventEndMap, "", "", -1, ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestReaderTagCollapse(t *testing.T) {
	tests := []struct {
		in    string
		ev    EventType
		value string
	}{
		{`{"$numberByte":5}`, EventByte, "5"},
		{`{"$numberShort":"300"}`, EventShort, "300"},
		{`{"$numberInt":7}`, EventInt, "7"},
		{`{"$numberLong":"9007199254740993"}`, EventLong, "9007199254740993"},
		{`{"$numberLong":2.0}`, EventLong, "2"},
		{`{"$numberFloat":1.5}`, EventFloat, "1.5"},
		{`{"$decimal":"1.50"}`, EventDecimal, "1.50"},
		{`{"$dateDay":"2015-01-21"}`, EventDate, "2015-01-21"},
		{`{"$time":"10:11:12.5"}`, EventTime, "10:11:12.500"},
		{`{"$date":"2015-01-21T10:11:12.123Z"}`, EventTimestamp, "2015-01-21T10:11:12.123Z"},
		{`{"$date":1000}`, EventTimestamp, "1970-01-01T00:00:01.000Z"},
		{`{"$interval":86400000}`, EventInterval, "86400000"},
		{`{"$binary":"AAEC"}`, EventBinary, "AAEC"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got := readAll(t, `{"v":`+tc.in+`}`)
			want := []rec{
				{EventStartMap, "", "", -1, ""},
				{tc.ev, "v", "v", -1, tc.value},
				{EventEndMap, "", "", -1, ""},
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestReaderNoCollapse(t *testing.T) {
	tests := []struct {
		in   string
		want []EventType
	}{
		{
			in:   `{"x":{"$numberLong":1,"y":2}}`,
			want: []EventType{EventStartMap, EventStartMap, EventDouble, EventDouble, EventEndMap, EventEndMap},
		},
		{
			in:   `{"x":{"$numberLong":{"a":1}}}`,
			want: []EventType{EventStartMap, EventStartMap, EventStartMap, EventDouble, EventEndMap, EventEndMap, EventEndMap},
		},
		{
			in:   `{"x":{"other":1}}`,
			want: []EventType{EventStartMap, EventStartMap, EventDouble, EventEndMap, EventEndMap},
		},
		{
			// the document map is never a tagged value
			in:   `{"$numberLong":1}`,
			want: []EventType{EventStartMap, EventDouble, EventEndMap},
		},
	}
	for _, tc := range tests {
		var got []EventType
		for _, x := range readAll(t, tc.in) {
			got = append(got, x.Ev)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestReaderPushedBackPath(t *testing.T) {
	got := readAll(t, `{"x":{"$numberLong":1,"y":2}}`)
	if got[2].Path != "x.$numberLong" || got[2].Field != "$numberLong" {
		t.Errorf("got %+v", got[2])
	}
	if got[3].Path != "x.y" {
		t.Errorf("got %+v", got[3])
	}
}

func TestReaderErrors(t *testing.T) {
	tests := []string{
		`[1]`,
		`"x"`,
		`{"a":`,
		`{"a":1,}`,
		`{"a":{"$numberByte":300}}`,
		`{"a":{"$dateDay":5}}`,
		`{"a":{"$binary":"***"}}`,
		`{"a":{"$numberInt":"x"}}`,
		`{"a":[1,2}`,
	}
	for _, in := range tests {
		r := NewReader(strings.NewReader(in))
		var err error
		for err == nil {
			_, err = r.Next()
		}
		if err == io.EOF {
			t.Errorf("%s: no error", in)
			continue
		}
		if !errors.Is(err, ErrDecoding) {
			t.Errorf("%s: got %v, want a decoding error", in, err)
		}
		if _, again := r.Next(); again != err {
			t.Errorf("%s: error is not sticky: %v", in, again)
		}
	}
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader(strings.NewReader(`{"a":[1,`))
	var err error
	for err == nil {
		_, err = r.Next()
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("got %v", err)
	}
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader("  "))
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestReaderSkipChildren(t *testing.T) {
	tests := []struct {
		in   string
		skip int
		want []EventType
	}{
		{
			in:   `{"a":{"b":[1,{"c":2}],"d":3},"e":4}`,
			skip: 1,
			want: []EventType{EventStartMap, EventEndMap, EventDouble, EventEndMap},
		},
		{
			// skipping a map whose first member was looked ahead at
			in:   `{"x":{"$numberLong":1,"y":[1,2]},"z":true}`,
			skip: 1,
			want: []EventType{EventStartMap, EventEndMap, EventBoolean, EventEndMap},
		},
		{
			in:   `{"a":[[1],[2]],"b":null}`,
			skip: 1,
			want: []EventType{EventStartMap, EventEndArray, EventNull, EventEndMap},
		},
		{
			in:   `{"a":[],"b":null}`,
			skip: 1,
			want: []EventType{EventStartMap, EventEndArray, EventNull, EventEndMap},
		},
		{
			// skipping the document
			in:   `{"a":[],"b":null}`,
			skip: 0,
			want: []EventType{EventEndMap},
		},
	}
	for _, tc := range tests {
		r := NewReader(strings.NewReader(tc.in))
		var got []EventType
		n := 0
		for {
			ev, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("%s: %v", tc.in, err)
			}
			if ev.IsStart() && n == tc.skip {
				n++
				if err := r.SkipChildren(); err != nil {
					t.Fatalf("%s: %v", tc.in, err)
				}
				ev = r.Event()
			} else if ev.IsStart() {
				n++
			}
			got = append(got, ev)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestReaderSkipKeepsPosition(t *testing.T) {
	r := NewReader(strings.NewReader(`{"a":{"b":1},"c":2}`))
	r.Next()
	r.Next()
	if err := r.SkipChildren(); err != nil {
		t.Fatal(err)
	}
	if r.Event() != EventEndMap || r.FieldName() != "a" || r.Depth() != 1 {
		t.Errorf("after skip: %s %q depth %d", r.Event(), r.FieldName(), r.Depth())
	}
	// no-op on a scalar
	r.Next()
	if err := r.SkipChildren(); err != nil {
		t.Fatal(err)
	}
	if r.Event() != EventDouble || r.FieldName() != "c" {
		t.Errorf("after scalar skip: %s %q", r.Event(), r.FieldName())
	}
}

func TestReaderGetters(t *testing.T) {
	r := NewReader(strings.NewReader(
		`{"b":{"$numberByte":12},"big":300,"f":1.5,"s":"x","l":{"$numberLong":40000}}`))
	mustNext := func(want EventType) {
		t.Helper()
		ev, err := r.Next()
		if err != nil {
			t.Fatal(err)
		}
		if ev != want {
			t.Fatalf("got %s, want %s", ev, want)
		}
	}
	mismatch := func(err error) {
		t.Helper()
		if !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("got %v, want a type mismatch", err)
		}
	}

	mustNext(EventStartMap)
	_, err := r.Value()
	mismatch(err)

	mustNext(EventByte)
	if n, err := r.Byte(); err != nil || n != 12 {
		t.Errorf("byte: %d %v", n, err)
	}
	if n, err := r.Long(); err != nil || n != 12 {
		t.Errorf("long: %d %v", n, err)
	}
	if f, err := r.Double(); err != nil || f != 12 {
		t.Errorf("double: %v %v", f, err)
	}
	_, err = r.String()
	mismatch(err)

	mustNext(EventDouble)
	if n, err := r.Int(); err != nil || n != 300 {
		t.Errorf("int: %d %v", n, err)
	}
	_, err = r.Byte()
	mismatch(err)

	mustNext(EventDouble)
	_, err = r.Long()
	mismatch(err)
	if f, err := r.Float(); err != nil || f != 1.5 {
		t.Errorf("float: %v %v", f, err)
	}
	if d, err := r.Decimal(); err != nil || d.String() != "1.5" {
		t.Errorf("decimal: %v %v", d, err)
	}

	mustNext(EventString)
	if s, err := r.String(); err != nil || s != "x" {
		t.Errorf("string: %q %v", s, err)
	}
	_, err = r.Bool()
	mismatch(err)
	_, err = r.Date()
	mismatch(err)

	mustNext(EventLong)
	_, err = r.Short()
	mismatch(err)
	if n, err := r.Int(); err != nil || n != 40000 {
		t.Errorf("int: %d %v", n, err)
	}
}

func TestReaderClose(t *testing.T) {
	r := NewReader(strings.NewReader(`{"a":1}`))
	r.Next()
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if _, err := r.Next(); !errors.Is(err, ErrIllegalReaderState) {
		t.Errorf("next after close: %v", err)
	}
}
